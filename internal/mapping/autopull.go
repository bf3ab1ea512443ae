package mapping

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/localfs"
)

// FindLatestTemplate locates the newest usable mapping workbook in folder.
// It prefers files matching sheet-index-*.xlsx, falling back to any .xlsx,
// newest modification time first, and returns the first one containing the
// "Rename Index" sheet. Hidden and unreadable candidates are passed over.
//
// Returns ErrNoTemplate when nothing qualifies.
func FindLatestTemplate(folder string) (string, error) {
	candidates, err := filepath.Glob(filepath.Join(folder, constants.TemplatePattern))
	if err != nil || len(candidates) == 0 {
		candidates, _ = filepath.Glob(filepath.Join(folder, "*.xlsx"))
	}
	if len(candidates) == 0 {
		return "", ErrNoTemplate
	}

	type candidate struct {
		path    string
		modTime int64
	}
	stats := make([]candidate, 0, len(candidates))
	for _, path := range candidates {
		// Glob matches dot-files; a hidden workbook (editor droppings,
		// macOS ._ forks) must never win the auto-pull.
		if localfs.IsHidden(path) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		stats = append(stats, candidate{path: path, modTime: info.ModTime().UnixNano()})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].modTime > stats[j].modTime })

	for _, c := range stats {
		if hasRenameSheet(c.path) {
			return c.path, nil
		}
	}
	return "", ErrNoTemplate
}

func hasRenameSheet(path string) bool {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return false
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(constants.SheetName)
	return err == nil && idx != -1
}
