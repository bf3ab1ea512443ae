// Package notify provides cross-platform desktop notifications for SheetMV.
// It uses github.com/gen2brain/beeep for cross-platform notification support.
package notify

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/sheetmv/sheetmv/internal/logging"
)

// Notifier handles desktop notifications.
type Notifier struct {
	logger       *logging.Logger
	enabled      bool
	showComplete bool
	showFailed   bool
	mu           sync.RWMutex
}

// Config holds notification configuration.
type Config struct {
	// Enabled determines if notifications are sent.
	Enabled bool

	// ShowRunComplete shows a notification when a live rename pass finishes.
	ShowRunComplete bool

	// ShowRunFailed shows a notification when a run aborts with an error.
	ShowRunFailed bool
}

// DefaultConfig returns the default notification configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		ShowRunComplete: true,
		ShowRunFailed:   true,
	}
}

// NewNotifier creates a new notifier with the given configuration.
func NewNotifier(cfg *Config, logger *logging.Logger) *Notifier {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Notifier{
		logger:       logger,
		enabled:      cfg.Enabled,
		showComplete: cfg.ShowRunComplete,
		showFailed:   cfg.ShowRunFailed,
	}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled
}

// RunComplete sends a notification when a live rename pass finishes.
func (n *Notifier) RunComplete(targetFolder string, renamed, errCount, skipped int) {
	if !n.IsEnabled() || !n.showComplete {
		return
	}

	title := "Rename Complete"
	message := fmt.Sprintf("Renamed %d file(s) in:\n%s", renamed, shortenPath(targetFolder))
	if errCount > 0 || skipped > 0 {
		message += fmt.Sprintf("\n%d error(s), %d skipped", errCount, skipped)
	}

	if err := n.send(title, message); err != nil && n.logger != nil {
		n.logger.Warn().Err(err).Str("folder", targetFolder).Msg("Failed to send run complete notification")
	}
}

// RunFailed sends a notification when a rename run aborts.
func (n *Notifier) RunFailed(targetFolder string, errorMsg string) {
	if !n.IsEnabled() || !n.showFailed {
		return
	}

	title := "Rename Failed"
	message := fmt.Sprintf("Run in \"%s\" failed:\n%s", truncate(filepath.Base(targetFolder), 40), truncate(errorMsg, 100))

	if err := n.send(title, message); err != nil && n.logger != nil {
		n.logger.Warn().Err(err).Str("folder", targetFolder).Msg("Failed to send run failed notification")
	}
}

// send is the internal method that actually sends the notification.
func (n *Notifier) send(title, message string) error {
	// beeep.Notify is cross-platform:
	// - Windows: Uses toast notifications
	// - macOS: Uses NSUserNotificationCenter
	// - Linux: Uses D-Bus notifications
	return beeep.Notify(title, message, "")
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// shortenPath abbreviates a long path for display in notifications.
func shortenPath(path string) string {
	const maxLen = 60

	if len(path) <= maxLen {
		return path
	}

	// Try to show drive/root + ... + last 2 path components
	_, file := filepath.Split(path)
	parentDir := filepath.Base(filepath.Dir(path))

	// Build shortened path
	short := filepath.Join("...", parentDir, file)

	// Add volume/drive if there's room
	vol := filepath.VolumeName(path)
	if vol != "" && len(vol)+len(short)+1 <= maxLen {
		short = vol + string(filepath.Separator) + short
	}

	// If still too long, just truncate
	if len(short) > maxLen {
		return "..." + path[len(path)-(maxLen-3):]
	}

	return short
}
