// Package validation provides input validation utilities for sheetmv.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// reservedNames are Windows device names that cannot be used as filenames,
// with or without an extension. Checked on every platform so templates
// stay portable between machines.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// ValidateNewName validates a generated filename (not a full path) before
// it is planned as a rename target. Spreadsheet cells are user input, so
// this is strict.
//
// Returns an error if the name:
//   - Is empty
//   - Contains null bytes
//   - Contains path separators (/ or \)
//   - Is "." or ".."
//   - Contains characters invalid on common filesystems (< > : " | ? *)
//   - Is a reserved device name (CON, PRN, NUL, COM1..9, LPT1..9)
//   - Ends with a space or a dot
func ValidateNewName(name string) error {
	if name == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("filename contains null byte: %s", name)
	}

	// Reject path separators (both Unix and Windows style); a rename
	// target must stay in its source's directory.
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, '\\') {
		return fmt.Errorf("filename cannot contain path separators: %s", name)
	}

	if name == "." || name == ".." {
		return fmt.Errorf("filename cannot be %q", name)
	}

	if strings.ContainsAny(name, `<>:"|?*`) {
		return fmt.Errorf("filename contains invalid characters: %s", name)
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if reservedNames[strings.ToUpper(stem)] {
		return fmt.Errorf("filename is a reserved device name: %s", name)
	}

	if strings.HasSuffix(name, " ") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("filename cannot end with a space or dot: %q", name)
	}

	return nil
}

// ValidateLocalPath ensures a user-supplied path is local and not
// attempting directory traversal. Network (UNC) paths are rejected
// because the tool only operates on local filesystems.
func ValidateLocalPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//") {
		return fmt.Errorf("network paths are not supported: %s", path)
	}

	normalized := filepath.Clean(path)
	for _, part := range strings.Split(normalized, string(filepath.Separator)) {
		if part == ".." {
			return fmt.Errorf("path must not contain '..': %s", path)
		}
	}

	return nil
}
