//go:build !windows

package diskspace

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// CheckAvailableSpace checks if there is sufficient disk space for a copy
// onto targetPath's filesystem. safetyMargin is a multiplier applied to
// requiredBytes (e.g. 1.1 for a 10% buffer).
//
// Returns an InsufficientSpaceError if there is not enough space. A stat
// failure is not an error: network and virtual filesystems often cannot
// report usable numbers, and the copy will fail on its own if space runs
// out.
func CheckAvailableSpace(targetPath string, requiredBytes int64, safetyMargin float64) error {
	availableBytes := GetAvailableSpace(targetPath)
	if availableBytes == 0 {
		return nil
	}
	return compareSpace(targetPath, requiredBytes, availableBytes, safetyMargin)
}

// GetAvailableSpace returns the available space in bytes for the filesystem
// containing the given path. Returns 0 if unable to determine.
func GetAvailableSpace(path string) int64 {
	dir := filepath.Dir(path)

	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0
	}

	// Bavail is the block count available to unprivileged users.
	return int64(stat.Bavail) * int64(stat.Bsize)
}
