// Package mapping reads rename intents from a spreadsheet file.
//
// Reads are stateless: every call opens the file, reads it fully, and
// releases it, so the sheet can be edited in Excel between runs without
// restarting the tool. Nothing in this package holds a file handle or a
// cache across calls.
package mapping

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat indicates the mapping file extension is not
	// one of .xlsx, .xlsm or .csv.
	ErrUnsupportedFormat = errors.New("unsupported mapping file format")

	// ErrMissingSheet indicates the workbook has no "Rename Index" sheet.
	ErrMissingSheet = errors.New("workbook has no 'Rename Index' sheet")

	// ErrMissingColumn indicates a required column is absent from the header row.
	ErrMissingColumn = errors.New("missing required column")

	// ErrSourceLocked indicates the mapping file is open in another
	// program (typically Excel) and cannot be read safely.
	ErrSourceLocked = errors.New("mapping file is locked")

	// ErrNoTemplate indicates auto-pull found no usable template in the
	// target folder.
	ErrNoTemplate = errors.New("no template found")
)

// ReadRows reads all rename intents from the mapping file at path. The
// format is chosen by extension. The file is opened fresh and closed
// before returning.
func ReadRows(path string) ([]Row, error) {
	if err := CheckAvailable(path); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// CheckAvailable reports whether the mapping file exists and is not held
// open by another program. Excel leaves an owner file (~$name.xlsx) next
// to an open workbook and takes an exclusive handle on Windows; both are
// probed here so the failure surfaces before planning starts.
func CheckAvailable(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot access mapping file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" || ext == ".xlsm" {
		owner := filepath.Join(filepath.Dir(path), "~$"+filepath.Base(path))
		if _, err := os.Stat(owner); err == nil {
			return fmt.Errorf("%w: %s is open in Excel (close it and try again)",
				ErrSourceLocked, filepath.Base(path))
		}
	}

	// The file exists, so a failed read-write open means another process
	// holds it (or it is read-only, which blocks template rewrites too).
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: %s is open in another program (close it and try again)",
			ErrSourceLocked, filepath.Base(path))
	}
	f.Close()

	return nil
}

// headerIndex maps lowercased, trimmed column names to their positions.
func headerIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return m
}

// cell returns the record value for the named column, or "" when the
// column is absent or the record is short.
func cell(record []string, index map[string]int, column string) string {
	if idx, ok := index[strings.ToLower(column)]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}

func hasColumn(index map[string]int, column string) bool {
	_, ok := index[strings.ToLower(column)]
	return ok
}
