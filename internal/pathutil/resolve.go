// Package pathutil provides path resolution for user-supplied paths.
// The CLI resolves the target folder and the mapping sheet through the
// same function so a path saved in settings means the same file later,
// regardless of the working directory it was first typed in.
package pathutil

import (
	"os"
	"path/filepath"
)

// ResolveAbsolutePath converts a user-supplied path to an absolute one.
// A leading ~ expands to the home directory. Symlinks and junctions are
// resolved in the existing portion of the path, then any non-existent
// components are appended. This handles the case where a parent folder
// (like Downloads on Windows) is a junction point but the requested
// subdirectory does not exist yet.
func ResolveAbsolutePath(path string) (string, error) {
	if path == "" {
		return os.Getwd()
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = home + path[1:]
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	// Fast path: the whole path exists.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		return resolved, nil
	}

	// Find the deepest existing ancestor, resolve links there, then
	// append the rest.
	current := absPath
	var remainder []string

	for {
		if _, err := os.Stat(current); err == nil {
			resolved, err := filepath.EvalSymlinks(current)
			if err != nil {
				resolved = current
			}
			for i := len(remainder) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, remainder[i])
			}
			return resolved, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return absPath, nil
		}
		remainder = append(remainder, filepath.Base(current))
		current = parent
	}
}
