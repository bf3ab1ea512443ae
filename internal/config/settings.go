package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"
)

// Settings is the persisted configuration for sheetmv. It is loaded once at
// command start; commands derive an immutable per-run configuration from it
// plus their flags, so nothing reads mutable state mid-pass.
//
// Config file location:
//   - Windows: %USERPROFILE%\.config\sheetmv\config
//   - Unix: ~/.config/sheetmv/config
//
// INI format:
//
//	[paths]
//	sheet_path = /data/scans/sheet-index-20260812.xlsx
//	target_folder = /data/scans
//
//	[rename]
//	extension = .pdf
//	mode = prefix
//	delimiter = -
//	recursive = false
//	backup = true
//	auto_pull = true
//	collision_case = auto
//
//	[filter]
//	include =
//	exclude =
//
//	[notify]
//	enabled = true
//	show_run_complete = true
//	show_run_failed = true
type Settings struct {
	Paths  PathsConfig
	Rename RenameConfig
	Filter FilterConfig
	Notify NotifyConfig
}

// PathsConfig remembers the last used mapping sheet and target folder.
type PathsConfig struct {
	// SheetPath is the mapping spreadsheet (.xlsx or .csv). Empty means
	// auto-pull from the target folder when auto_pull is enabled.
	SheetPath string `ini:"sheet_path"`

	// TargetFolder is the folder whose files are renamed.
	TargetFolder string `ini:"target_folder"`
}

// RenameConfig holds the rename-pass options.
type RenameConfig struct {
	// Extension selects candidate files by case-sensitive suffix match.
	// Must start with ".". Default: ".pdf"
	Extension string `ini:"extension"`

	// Mode is "prefix" or "replace". Default: "prefix"
	Mode string `ini:"mode"`

	// Delimiter joins prefix and base name in prefix mode. The empty
	// string is a valid value (direct concatenation), distinct from the
	// key being absent. Default: "-"
	Delimiter string `ini:"delimiter"`

	// Recursive lists the target folder tree instead of the top level.
	// Default: false
	Recursive bool `ini:"recursive"`

	// Backup copies all matched files into a timestamped directory
	// before a live run. Default: true
	Backup bool `ini:"backup"`

	// AutoPull locates the newest template workbook in the target folder
	// when no sheet path is set. Default: true
	AutoPull bool `ini:"auto_pull"`

	// CollisionCase controls name comparison for collision detection:
	// "auto" (case-insensitive on windows/darwin), "sensitive" or
	// "insensitive". Default: "auto"
	CollisionCase string `ini:"collision_case"`
}

// FilterConfig optionally narrows the candidate listing.
type FilterConfig struct {
	// Include is a comma-separated list of glob patterns; when non-empty,
	// only matching names are listed.
	Include string `ini:"include"`

	// Exclude is a comma-separated list of glob patterns; matching names
	// are dropped from the listing.
	Exclude string `ini:"exclude"`
}

// NotifyConfig contains settings for desktop notifications.
type NotifyConfig struct {
	// Enabled indicates whether notifications are shown. Default: true
	Enabled bool `ini:"enabled"`

	// ShowRunComplete shows a notification when a live run finishes.
	// Default: true
	ShowRunComplete bool `ini:"show_run_complete"`

	// ShowRunFailed shows a notification when a run aborts. Default: true
	ShowRunFailed bool `ini:"show_run_failed"`
}

// Mode values accepted in [rename] mode.
const (
	ModePrefix  = "prefix"
	ModeReplace = "replace"
)

// CollisionCase values accepted in [rename] collision_case.
const (
	CaseAuto        = "auto"
	CaseSensitive   = "sensitive"
	CaseInsensitive = "insensitive"
)

// Validation errors
var (
	ErrInvalidMode          = errors.New(`mode must be "prefix" or "replace"`)
	ErrInvalidExtension     = errors.New(`extension must start with ".", e.g. ".pdf"`)
	ErrInvalidCollisionCase = errors.New(`collision_case must be "auto", "sensitive" or "insensitive"`)
	ErrMissingTargetFolder  = errors.New("target folder is required")
)

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Rename: RenameConfig{
			Extension:     ".pdf",
			Mode:          ModePrefix,
			Delimiter:     "-",
			Recursive:     false,
			Backup:        true,
			AutoPull:      true,
			CollisionCase: CaseAuto,
		},
		Notify: NotifyConfig{
			Enabled:         true,
			ShowRunComplete: true,
			ShowRunFailed:   true,
		},
	}
}

// LoadSettings loads configuration from an INI file.
// If the file doesn't exist, returns defaults and no error.
// If the file exists but cannot be parsed, returns an error.
func LoadSettings(path string) (*Settings, error) {
	cfg := NewSettings()

	// If no path provided, use default
	if path == "" {
		var err error
		path, err = DefaultSettingsPath()
		if err != nil {
			return cfg, nil // Return defaults if we can't determine path
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // Return defaults if config doesn't exist
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	pathsSection := iniFile.Section("paths")
	cfg.Paths.SheetPath = pathsSection.Key("sheet_path").String()
	cfg.Paths.TargetFolder = pathsSection.Key("target_folder").String()

	renameSection := iniFile.Section("rename")
	cfg.Rename.Extension = renameSection.Key("extension").MustString(cfg.Rename.Extension)
	cfg.Rename.Mode = strings.ToLower(renameSection.Key("mode").MustString(cfg.Rename.Mode))
	// MustString treats "" as unset, but an empty delimiter is a valid
	// configuration (direct concatenation). Only fall back when the key
	// is genuinely absent.
	if renameSection.HasKey("delimiter") {
		cfg.Rename.Delimiter = renameSection.Key("delimiter").String()
	}
	cfg.Rename.Recursive = renameSection.Key("recursive").MustBool(cfg.Rename.Recursive)
	cfg.Rename.Backup = renameSection.Key("backup").MustBool(cfg.Rename.Backup)
	cfg.Rename.AutoPull = renameSection.Key("auto_pull").MustBool(cfg.Rename.AutoPull)
	cfg.Rename.CollisionCase = strings.ToLower(renameSection.Key("collision_case").MustString(cfg.Rename.CollisionCase))

	filterSection := iniFile.Section("filter")
	cfg.Filter.Include = filterSection.Key("include").String()
	cfg.Filter.Exclude = filterSection.Key("exclude").String()

	notifySection := iniFile.Section("notify")
	cfg.Notify.Enabled = notifySection.Key("enabled").MustBool(true)
	cfg.Notify.ShowRunComplete = notifySection.Key("show_run_complete").MustBool(true)
	cfg.Notify.ShowRunFailed = notifySection.Key("show_run_failed").MustBool(true)

	return cfg, nil
}

// SaveSettings saves configuration to an INI file.
// Creates parent directories if they don't exist. Writes are atomic
// (temporary file + rename) so a crash never leaves a half-written config.
func SaveSettings(cfg *Settings, path string) error {
	// If no path provided, use default
	if path == "" {
		var err error
		path, err = DefaultSettingsPath()
		if err != nil {
			return fmt.Errorf("failed to determine settings path: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()

	pathsSection, err := iniFile.NewSection("paths")
	if err != nil {
		return fmt.Errorf("failed to create paths section: %w", err)
	}
	pathsSection.Key("sheet_path").SetValue(cfg.Paths.SheetPath)
	pathsSection.Key("target_folder").SetValue(cfg.Paths.TargetFolder)

	renameSection, err := iniFile.NewSection("rename")
	if err != nil {
		return fmt.Errorf("failed to create rename section: %w", err)
	}
	renameSection.Key("extension").SetValue(cfg.Rename.Extension)
	renameSection.Key("mode").SetValue(cfg.Rename.Mode)
	renameSection.Key("delimiter").SetValue(cfg.Rename.Delimiter)
	renameSection.Key("recursive").SetValue(fmt.Sprintf("%t", cfg.Rename.Recursive))
	renameSection.Key("backup").SetValue(fmt.Sprintf("%t", cfg.Rename.Backup))
	renameSection.Key("auto_pull").SetValue(fmt.Sprintf("%t", cfg.Rename.AutoPull))
	renameSection.Key("collision_case").SetValue(cfg.Rename.CollisionCase)

	filterSection, err := iniFile.NewSection("filter")
	if err != nil {
		return fmt.Errorf("failed to create filter section: %w", err)
	}
	filterSection.Key("include").SetValue(cfg.Filter.Include)
	filterSection.Key("exclude").SetValue(cfg.Filter.Exclude)

	notifySection, err := iniFile.NewSection("notify")
	if err != nil {
		return fmt.Errorf("failed to create notify section: %w", err)
	}
	notifySection.Key("enabled").SetValue(fmt.Sprintf("%t", cfg.Notify.Enabled))
	notifySection.Key("show_run_complete").SetValue(fmt.Sprintf("%t", cfg.Notify.ShowRunComplete))
	notifySection.Key("show_run_failed").SetValue(fmt.Sprintf("%t", cfg.Notify.ShowRunFailed))

	// Temporary file + rename for atomicity
	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0600); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("failed to set settings permissions: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// Validate checks that the rename options are usable.
// Returns nil if valid, or an error describing what's wrong.
func (cfg *Settings) Validate() error {
	if !strings.HasPrefix(cfg.Rename.Extension, ".") {
		return ErrInvalidExtension
	}
	switch cfg.Rename.Mode {
	case ModePrefix, ModeReplace:
	default:
		return ErrInvalidMode
	}
	switch cfg.Rename.CollisionCase {
	case CaseAuto, CaseSensitive, CaseInsensitive:
	default:
		return ErrInvalidCollisionCase
	}
	return nil
}

// ValidateForRun additionally requires a target folder, which run-type
// commands cannot proceed without.
func (cfg *Settings) ValidateForRun() error {
	if strings.TrimSpace(cfg.Paths.TargetFolder) == "" {
		return ErrMissingTargetFolder
	}
	return cfg.Validate()
}
