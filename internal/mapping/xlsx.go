package mapping

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/util/sanitize"
)

// readXLSX reads rows from the "Rename Index" sheet of a workbook.
func readXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(constants.SheetName)
	if err != nil || idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSheet, path)
	}

	records, err := f.GetRows(constants.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", constants.SheetName, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnCurrentFilename)
	}

	index := headerIndex(records[0])
	if !hasColumn(index, ColumnCurrentFilename) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnCurrentFilename)
	}

	rows := make([]Row, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		rows = append(rows, Row{
			Number:      i,
			CurrentName: sanitize.CleanKey(cell(record, index, ColumnCurrentFilename)),
			Prefix:      sanitize.CleanCell(cell(record, index, ColumnPrefix)),
			NewBase:     sanitize.CleanCell(cell(record, index, ColumnNewFilename)),
			Note:        sanitize.CleanCell(cell(record, index, ColumnNotes)),
		})
	}

	return rows, nil
}
