package diskspace

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckAvailableSpace(t *testing.T) {
	probe := filepath.Join(t.TempDir(), "probe.bin")

	t.Run("SmallFile", func(t *testing.T) {
		err := CheckAvailableSpace(probe, 1024, 1.1) // 1KB
		if err != nil {
			t.Errorf("Expected no error for small file, got: %v", err)
		}
	})

	t.Run("VeryLargeFile", func(t *testing.T) {
		// 100TB - should exceed available space on most systems
		err := CheckAvailableSpace(probe, 100*1024*1024*1024*1024, 1.1)
		if err == nil {
			t.Log("Warning: 100TB file check passed - system has extraordinary disk space")
		} else if !IsInsufficientSpaceError(err) {
			t.Errorf("Expected InsufficientSpaceError, got: %T", err)
		}
	})

	t.Run("SafetyMargin", func(t *testing.T) {
		available := GetAvailableSpace(probe)
		if available == 0 {
			t.Skip("Could not determine available space")
		}

		// Half the available space plus margin always fits.
		err := CheckAvailableSpace(probe, available/2, 1.1)
		if err != nil {
			t.Errorf("Expected to have space for half available (%d bytes), got error: %v", available/2, err)
		}

		// 99% of available with a 10% margin must not fit.
		err = CheckAvailableSpace(probe, (available*99)/100, 1.1)
		if err == nil {
			t.Error("Expected margin to push 99% of available over the limit")
		} else if !IsInsufficientSpaceError(err) {
			t.Errorf("Expected InsufficientSpaceError, got: %T", err)
		}
	})
}

func TestGetAvailableSpace(t *testing.T) {
	available := GetAvailableSpace(filepath.Join(t.TempDir(), "probe.bin"))
	if available == 0 {
		t.Error("Expected non-zero available space for temp dir")
	}

	t.Logf("Available space: %.2f GB", float64(available)/(1024*1024*1024))
}

func TestIsInsufficientSpaceError(t *testing.T) {
	err := &InsufficientSpaceError{
		Path:           "/tmp/test.txt",
		RequiredBytes:  1000,
		AvailableBytes: 500,
	}

	if !IsInsufficientSpaceError(err) {
		t.Error("Expected IsInsufficientSpaceError to return true")
	}

	wrapped := fmt.Errorf("backup preflight: %w", err)
	if !IsInsufficientSpaceError(wrapped) {
		t.Error("Expected IsInsufficientSpaceError to unwrap wrapped errors")
	}

	otherErr := fmt.Errorf("some other error")
	if IsInsufficientSpaceError(otherErr) {
		t.Error("Expected IsInsufficientSpaceError to return false for non-disk-space error")
	}

	if IsInsufficientSpaceError(nil) {
		t.Error("Expected IsInsufficientSpaceError to return false for nil")
	}
}

func TestInsufficientSpaceErrorMessage(t *testing.T) {
	err := &InsufficientSpaceError{
		Path:           "/tmp/test.txt",
		RequiredBytes:  1024 * 1024 * 100, // 100MB
		AvailableBytes: 1024 * 1024 * 50,  // 50MB
	}

	msg := err.Error()
	if !strings.Contains(msg, "/tmp/test.txt") {
		t.Error("Error message should contain path")
	}
	if !strings.Contains(msg, "100.00") {
		t.Error("Error message should contain required space in MB")
	}
	if !strings.Contains(msg, "50.00") {
		t.Error("Error message should contain available space in MB")
	}
}
