//go:build windows

package diskspace

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

// CheckAvailableSpace checks if there is sufficient disk space for a copy
// onto targetPath's volume. safetyMargin is a multiplier applied to
// requiredBytes (e.g. 1.1 for a 10% buffer).
//
// Returns an InsufficientSpaceError if there is not enough space. A query
// failure is not an error: the copy will fail on its own if space runs out.
func CheckAvailableSpace(targetPath string, requiredBytes int64, safetyMargin float64) error {
	availableBytes := GetAvailableSpace(targetPath)
	if availableBytes == 0 {
		return nil
	}
	return compareSpace(targetPath, requiredBytes, availableBytes, safetyMargin)
}

// GetAvailableSpace returns the available space in bytes for the volume
// containing the given path. Returns 0 if unable to determine.
func GetAvailableSpace(path string) int64 {
	dir := filepath.Dir(path)

	dirPtr, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0
	}

	var freeBytesAvailable, totalBytes, totalFreeBytes uint64
	if err := windows.GetDiskFreeSpaceEx(dirPtr, &freeBytesAvailable, &totalBytes, &totalFreeBytes); err != nil {
		return 0
	}

	return int64(freeBytesAvailable)
}
