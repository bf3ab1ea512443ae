// Package config provides configuration management for sheetmv.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sheetmv/sheetmv/internal/constants"
)

// DefaultSettingsPath returns the default path for the settings file.
//   - Windows: %USERPROFILE%\.config\sheetmv\config
//   - Unix: ~/.config/sheetmv/config
func DefaultSettingsPath() (string, error) {
	var configDir string

	if runtime.GOOS == "windows" {
		// On Windows, use %USERPROFILE%\.config\sheetmv
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", errors.New("USERPROFILE environment variable not set")
		}
		configDir = filepath.Join(userProfile, ".config", constants.ConfigDirName)
	} else {
		// On Unix, use ~/.config/sheetmv
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config", constants.ConfigDirName)
	}

	return filepath.Join(configDir, constants.ConfigFileName), nil
}
