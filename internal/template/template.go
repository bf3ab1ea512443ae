// Package template generates mapping spreadsheets from a folder scan.
//
// A generated workbook has the rename sheet pre-filled with one row per
// scanned file plus an Instructions sheet, so the editing step starts
// from real filenames instead of a blank grid.
package template

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/localfs"
	"github.com/sheetmv/sheetmv/internal/mapping"
)

// Meta describes the scan behind a generated template. It feeds the
// Instructions sheet footer.
type Meta struct {
	FileCount int
	Extension string
	Timestamp time.Time
}

// DefaultFilename returns the conventional template name for a date,
// e.g. sheet-index-20240115.xlsx. Auto-pull looks for this pattern.
func DefaultFilename(now time.Time) string {
	return constants.TemplatePrefix + now.Format(constants.DateStampFormat) + ".xlsx"
}

// BuildRows derives template rows from scanned files: sequential row
// numbers, zero-padded prefixes and the current stem as the starting
// new name.
func BuildRows(files []localfs.FileEntry) []mapping.Row {
	rows := make([]mapping.Row, 0, len(files))
	for i, f := range files {
		rows = append(rows, mapping.Row{
			Number:      i + 1,
			CurrentName: f.Name,
			Prefix:      fmt.Sprintf("%03d", i+1),
			NewBase:     strings.TrimSuffix(f.Name, filepath.Ext(f.Name)),
		})
	}
	return rows
}

// BlankRows returns the example rows written into a blank template.
func BlankRows() []mapping.Row {
	return []mapping.Row{
		{Number: 1, CurrentName: "example1.pdf", Prefix: "001", NewBase: "Document-A"},
		{Number: 2, CurrentName: "example2.pdf", Prefix: "002", NewBase: "Document-B"},
		{Number: 3, CurrentName: "example3.pdf", Prefix: "003", NewBase: "Document-C"},
	}
}

// Write saves a scan template to path, choosing the format from the
// extension: .csv gets a plain header+rows file, anything else a styled
// workbook with an Instructions sheet.
func Write(path string, rows []mapping.Row, meta Meta) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return WriteCSV(path, rows)
	}
	return writeWorkbook(path, rows, scanInstructions(meta))
}

// WriteBlank saves a blank template with example rows to path.
func WriteBlank(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return WriteCSV(path, BlankRows())
	}
	return writeWorkbook(path, BlankRows(), blankInstructions())
}

// WriteCSV saves rows as a plain CSV template. CSV templates have no
// Instructions sheet; the format carries only the mapping grid.
func WriteCSV(path string, rows []mapping.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(mapping.TemplateHeaders()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		record := []string{strconv.Itoa(r.Number), r.CurrentName, r.Prefix, r.NewBase, r.Note}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.Number, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}

func writeWorkbook(path string, rows []mapping.Row, instructions []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(constants.SheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := mapping.TemplateHeaders()
	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(constants.SheetName, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		// Prefix stays a string cell so leading zeros survive.
		values := []interface{}{r.Number, r.CurrentName, r.Prefix, r.NewBase, r.Note}
		if err := f.SetSheetRow(constants.SheetName, axis, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.Number, err)
		}
	}

	if err := styleHeader(f, len(headers)); err != nil {
		return err
	}
	if err := sizeColumns(f, headers, rows); err != nil {
		return err
	}
	if err := writeInstructions(f, instructions); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	index, err := f.GetSheetIndex(constants.SheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

func styleHeader(f *excelize.File, columns int) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(constants.SheetName, "A1", last+"1", styleID); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}
	return nil
}

// sizeColumns fits each column to its longest value plus padding,
// capped at 50 characters so one long filename cannot blow up the
// whole sheet.
func sizeColumns(f *excelize.File, headers []string, rows []mapping.Row) error {
	for i, h := range headers {
		width := utf8.RuneCountInString(h)
		for _, r := range rows {
			if l := utf8.RuneCountInString(cellString(r, i)); l > width {
				width = l
			}
		}

		w := float64(width + 2)
		if w > 50 {
			w = 50
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(constants.SheetName, col, col, w); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}
	return nil
}

func cellString(r mapping.Row, column int) string {
	switch column {
	case 0:
		return strconv.Itoa(r.Number)
	case 1:
		return r.CurrentName
	case 2:
		return r.Prefix
	case 3:
		return r.NewBase
	default:
		return r.Note
	}
}

func writeInstructions(f *excelize.File, lines []string) error {
	if _, err := f.NewSheet(constants.InstructionsSheetName); err != nil {
		return fmt.Errorf("failed to create instructions sheet: %w", err)
	}
	for i, line := range lines {
		axis := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(constants.InstructionsSheetName, axis, line); err != nil {
			return fmt.Errorf("failed to write instructions: %w", err)
		}
	}
	return nil
}

func scanInstructions(meta Meta) []string {
	return []string{
		strings.ToUpper(constants.AppName) + " - INSTRUCTIONS",
		"",
		"CRITICAL: Column B (Current_Filename) is used to match files!",
		"",
		"HOW TO USE:",
		"1. Edit columns C, D, E as needed",
		"2. Column B: Current_Filename (MUST match existing file)",
		"3. Column C: Prefix (used in Prefix mode)",
		"4. Column D: New_Filename (primary rename value)",
		"5. Column E: Notes (logged to file)",
		"",
		"IMPORTANT: Do not change Column B unless you know what you're doing!",
		"The program uses Column B to find the correct file to rename.",
		"",
		"Prefix mode: <Prefix><Delimiter><Column D><ext>",
		"Replace mode: <Column D><ext>",
		"",
		fmt.Sprintf("Scanned: %d files", meta.FileCount),
		fmt.Sprintf("Extension: %s", meta.Extension),
		fmt.Sprintf("Date: %s", meta.Timestamp.Format("2006-01-02 15:04")),
	}
}

func blankInstructions() []string {
	return []string{
		strings.ToUpper(constants.AppName) + " - BLANK TEMPLATE",
		"Fill Column B with exact filenames that exist in your folder!",
	}
}
