// Package audit writes the durable per-run rename log. The log is the only
// record of what a run did, so it is written for dry runs too and its line
// shapes stay stable across releases: scripts and humans both read it.
package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/rename"
)

const rule = 70

// Params identifies the run being logged.
type Params struct {
	SheetPath    string
	TargetFolder string
	Mode         string
	Delimiter    string
	Extension    string
	DryRun       bool
	BackupDir    string // empty when no backup was made
}

// LogPath returns the log file path for a run starting at now, inside the
// target folder.
func LogPath(targetFolder string, now time.Time) string {
	name := constants.LogPrefix + now.Format(constants.TimestampFormat) + ".txt"
	return filepath.Join(targetFolder, name)
}

// Writer streams one log entry per operation as the run progresses, so an
// interrupted run still leaves a record of everything it completed.
//
// Write failures are sticky: recording continues silently and the first
// failure is reported by Finish.
type Writer struct {
	file *os.File
	buf  *bufio.Writer
	err  error
}

// NewWriter creates the log file and writes the run header.
func NewWriter(path string, p Params) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	w := &Writer{file: file, buf: bufio.NewWriter(file)}
	w.writeHeader(p, time.Now())
	return w, nil
}

func (w *Writer) writeHeader(p Params, now time.Time) {
	w.printf("%s - Rename Log\n", constants.AppName)
	w.printf("%s\n", strings.Repeat("=", rule))
	w.printf("Timestamp: %s\n\n", now.Format("2006-01-02 15:04:05"))
	w.printf("Sheet: %s\n", p.SheetPath)
	w.printf("Target: %s\n", p.TargetFolder)
	w.printf("Mode: %s | Delimiter: '%s' | Extension: %s\n", titleMode(p.Mode), p.Delimiter, p.Extension)
	w.printf("Matching: Strict Current_Filename (Column B) matching\n")
	if p.DryRun {
		w.printf("Dry run: PREVIEW ONLY (no files were modified)\n")
	}
	if p.BackupDir != "" {
		w.printf("Backup: %s\n", p.BackupDir)
	}
	w.printf("\n%s\n\n", strings.Repeat("=", rule))
}

// Record writes one operation outcome. It implements rename.Recorder.
func (w *Writer) Record(op rename.Operation, execErr error) {
	switch op.Status {
	case rename.StatusSkipEmptyKey:
		w.printf("⚠ Row %d: Empty Current_Filename (skipped)\n", op.Row)
	case rename.StatusSkipNotFound:
		w.printf("⚠ Row %d: File not found: '%s' (skipped)\n", op.Row, op.OldName)
	case rename.StatusNoChange:
		w.printf("◯ %s (no change)\n", op.OldName)
	case rename.StatusCollision:
		w.printf("✗ %s\n", op.OldName)
		w.printf("  ERROR: Target exists: %s\n\n", op.NewName)
	case rename.StatusRename:
		if execErr != nil {
			w.printf("✗ %s\n", op.OldName)
			w.printf("  ERROR: %v\n\n", execErr)
			return
		}
		w.printf("✓ %s\n", op.OldName)
		w.printf("  → %s\n", op.NewName)
		if op.Note != "" {
			w.printf("  User Note: %s\n", op.Note)
		}
		w.printf("\n")
	}
}

// Finish writes the summary block and closes the file. It reports the
// first error encountered at any point of writing.
func (w *Writer) Finish(result *rename.Result) error {
	w.printf("\n%s\n", strings.Repeat("=", rule))
	w.printf("SUMMARY\n")
	w.printf("%s\n", strings.Repeat("=", rule))
	if result.DryRun {
		w.printf("Planned renames: %d | Errors: %d | Skipped: %d\n",
			result.Planned, result.Errors, result.Skipped)
	} else {
		w.printf("Renamed: %d | Errors: %d | Skipped: %d\n",
			result.Renamed, result.Errors, result.Skipped)
	}
	w.printf("Total processed: %d\n", result.Total())

	if err := w.buf.Flush(); err != nil && w.err == nil {
		w.err = err
	}
	if err := w.file.Close(); err != nil && w.err == nil {
		w.err = err
	}
	if w.err != nil {
		return fmt.Errorf("failed to write log: %w", w.err)
	}
	return nil
}

func (w *Writer) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(w.buf, format, args...); err != nil && w.err == nil {
		w.err = err
	}
}

// titleMode spells the mode the way the log contract does: Prefix, Replace.
func titleMode(mode string) string {
	if mode == "" {
		return mode
	}
	return strings.ToUpper(mode[:1]) + mode[1:]
}
