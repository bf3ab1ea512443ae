package mapping

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sheetmv/sheetmv/internal/util/sanitize"
)

// readCSV reads rows from a CSV mapping file. The first record is the
// header; data rows are numbered from 1 so log output lines up with the
// file as the user sees it.
func readCSV(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping CSV: %w", err)
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
