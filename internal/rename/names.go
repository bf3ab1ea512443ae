// Package rename holds the planning and execution core: pairing spreadsheet
// rows to files, computing proposed names, detecting collisions, and applying
// the resulting plan.
package rename

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sheetmv/sheetmv/internal/mapping"
)

// Mode selects how a proposed name is built from a row.
type Mode string

const (
	// ModePrefix builds "<prefix><delimiter><base>" where base is the
	// row's New_Filename or, when empty, the file's current stem.
	ModePrefix Mode = "prefix"

	// ModeReplace uses the row's New_Filename as the whole stem, keeping
	// the current stem when the cell is empty.
	ModeReplace Mode = "replace"
)

// CaseMode controls whether collision detection treats names that differ
// only by letter case as the same name.
type CaseMode string

const (
	CaseSensitive   CaseMode = "sensitive"
	CaseInsensitive CaseMode = "insensitive"
)

// DefaultCaseMode returns the collision case policy matching the platform's
// conventional filesystem: insensitive on Windows and macOS, sensitive
// elsewhere.
func DefaultCaseMode() CaseMode {
	switch runtime.GOOS {
	case "windows", "darwin":
		return CaseInsensitive
	default:
		return CaseSensitive
	}
}

// NewName computes the proposed filename for a matched row. It is a pure
// function of its inputs.
//
// In prefix mode with a non-empty prefix, the result stem is
// prefix + delimiter + base, where base is the row's NewBase or the matched
// file's stem when NewBase is empty. With an empty prefix (or in replace
// mode) the stem is NewBase or the current stem. The extension is appended
// unless the stem already ends with it.
func NewName(row mapping.Row, matchedName string, mode Mode, extension, delimiter string) string {
	stem := strings.TrimSuffix(matchedName, filepath.Ext(matchedName))

	var newStem string
	if mode == ModePrefix && row.Prefix != "" {
		base := row.NewBase
		if base == "" {
			base = stem
		}
		newStem = row.Prefix + delimiter + base
	} else {
		newStem = row.NewBase
		if newStem == "" {
			newStem = stem
		}
	}

	if !strings.HasSuffix(newStem, extension) {
		return newStem + extension
	}
	return newStem
}
