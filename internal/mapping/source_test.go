package mapping

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates an .xlsx file with the given records on one sheet.
func writeWorkbook(t *testing.T, path, sheet string, records [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet: %v", err)
		}
		if err := f.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("DeleteSheet: %v", err)
		}
	}

	for r, record := range records {
		for c, value := range record {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName: %v", err)
			}
			if err := f.SetCellValue(sheet, cellName, value); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs %s: %v", path, err)
	}
}

func TestReadRowsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet-index-20240115.xlsx")
	writeWorkbook(t, path, "Rename Index", [][]string{
		{"Row", "Current_Filename", "Prefix", "New_Filename", "Notes"},
		{"1", "invoice.pdf", "001", "Customer-A", "first"},
		{"2", "receipt.pdf", "", "", ""},
		{},
		{"4", "\uFEFFstatement.pdf", "00​2", "", "bom and zero-width"},
	})

	rows, err := ReadRows(path)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	if rows[0].Number != 1 || rows[0].CurrentName != "invoice.pdf" ||
		rows[0].Prefix != "001" || rows[0].NewBase != "Customer-A" || rows[0].Note != "first" {
		t.Errorf("row 1 = %+v", rows[0])
	}
	if rows[1].CurrentName != "receipt.pdf" || rows[1].Prefix != "" {
		t.Errorf("row 2 = %+v", rows[1])
	}
	// Interior empty rows keep their position so log numbering matches
	// the sheet.
	if rows[2].Number != 3 || rows[2].CurrentName != "" {
		t.Errorf("row 3 = %+v, want empty row at position 3", rows[2])
	}
	// Leading BOM is stripped from the join key; invisible characters are
	// stripped from the other cells.
	if rows[3].CurrentName != "statement.pdf" {
		t.Errorf("row 4 CurrentName = %q, want statement.pdf", rows[3].CurrentName)
	}
	if rows[3].Prefix != "002" {
		t.Errorf("row 4 Prefix = %q, want 002", rows[3].Prefix)
	}
}

func TestReadRowsXLSXMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.xlsx")
	writeWorkbook(t, path, "Sheet1", [][]string{{"a", "b"}})

	_, err := ReadRows(path)
	if !errors.Is(err, ErrMissingSheet) {
		t.Errorf("error = %v, want ErrMissingSheet", err)
	}
}

func TestReadRowsXLSXMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	writeWorkbook(t, path, "Rename Index", [][]string{
		{"Row", "Prefix", "New_Filename"},
		{"1", "001", "A"},
	})

	_, err := ReadRows(path)
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("error = %v, want ErrMissingColumn", err)
	}
}

func TestReadRowsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.csv")
	content := "Row,Current_Filename,Prefix,New_Filename,Notes\n" +
		"1,invoice.pdf,001,Customer-A,first\n" +
		"2,receipt.pdf,,,\n" +
		",,,,\n" +
		"4,statement.pdf,002,,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadRows(path)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0].CurrentName != "invoice.pdf" || rows[0].Prefix != "001" {
		t.Errorf("row 1 = %+v", rows[0])
	}
	if rows[2].Number != 3 || rows[2].CurrentName != "" {
		t.Errorf("row 3 = %+v, want empty row at position 3", rows[2])
	}
	if rows[3].Number != 4 || rows[3].CurrentName != "statement.pdf" {
		t.Errorf("row 4 = %+v", rows[3])
	}
}

func TestReadRowsCSVHeaderCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.csv")
	content := "current_filename,PREFIX\nscan.pdf,X\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadRows(path)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 1 || rows[0].CurrentName != "scan.pdf" || rows[0].Prefix != "X" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestReadRowsCSVMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.csv")
	if err := os.WriteFile(path, []byte("Prefix,New_Filename\n001,A\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadRows(path)
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("error = %v, want ErrMissingColumn", err)
	}
}

func TestReadRowsUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.txt")
	if err := os.WriteFile(path, []byte("whatever"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadRows(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestCheckAvailable(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		err := CheckAvailable(filepath.Join(t.TempDir(), "nope.xlsx"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("excel_owner_file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "mapping.xlsx")
		writeWorkbook(t, path, "Rename Index", [][]string{{"Current_Filename"}})
		if err := os.WriteFile(filepath.Join(dir, "~$mapping.xlsx"), []byte("owner"), 0o644); err != nil {
			t.Fatal(err)
		}

		err := CheckAvailable(path)
		if !errors.Is(err, ErrSourceLocked) {
			t.Errorf("error = %v, want ErrSourceLocked", err)
		}
	})

	t.Run("available", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "mapping.xlsx")
		writeWorkbook(t, path, "Rename Index", [][]string{{"Current_Filename"}})

		if err := CheckAvailable(path); err != nil {
			t.Errorf("CheckAvailable: %v", err)
		}
	})
}

func TestFindLatestTemplate(t *testing.T) {
	header := [][]string{{"Row", "Current_Filename", "Prefix", "New_Filename", "Notes"}}

	t.Run("prefers_newest_template", func(t *testing.T) {
		dir := t.TempDir()
		older := filepath.Join(dir, "sheet-index-20240101.xlsx")
		newer := filepath.Join(dir, "sheet-index-20240201.xlsx")
		writeWorkbook(t, older, "Rename Index", header)
		writeWorkbook(t, newer, "Rename Index", header)

		base := time.Now().Add(-time.Hour)
		if err := os.Chtimes(older, base, base); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(newer, base.Add(time.Minute), base.Add(time.Minute)); err != nil {
			t.Fatal(err)
		}

		got, err := FindLatestTemplate(dir)
		if err != nil {
			t.Fatalf("FindLatestTemplate: %v", err)
		}
		if got != newer {
			t.Errorf("got %s, want %s", got, newer)
		}
	})

	t.Run("falls_back_to_any_xlsx", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "edited-copy.xlsx")
		writeWorkbook(t, path, "Rename Index", header)

		got, err := FindLatestTemplate(dir)
		if err != nil {
			t.Fatalf("FindLatestTemplate: %v", err)
		}
		if got != path {
			t.Errorf("got %s, want %s", got, path)
		}
	})

	t.Run("skips_hidden_workbooks", func(t *testing.T) {
		// Both names miss the sheet-index-* pattern so the fallback glob
		// runs, which is the only path that can surface dot-files.
		dir := t.TempDir()
		visible := filepath.Join(dir, "edited-copy.xlsx")
		hidden := filepath.Join(dir, ".newer-copy.xlsx")
		writeWorkbook(t, visible, "Rename Index", header)
		writeWorkbook(t, hidden, "Rename Index", header)

		base := time.Now().Add(-time.Hour)
		if err := os.Chtimes(visible, base, base); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(hidden, base.Add(time.Minute), base.Add(time.Minute)); err != nil {
			t.Fatal(err)
		}

		got, err := FindLatestTemplate(dir)
		if err != nil {
			t.Fatalf("FindLatestTemplate: %v", err)
		}
		if got != visible {
			t.Errorf("got %s, want %s", got, visible)
		}
	})

	t.Run("skips_workbooks_without_sheet", func(t *testing.T) {
		dir := t.TempDir()
		writeWorkbook(t, filepath.Join(dir, "sheet-index-20240101.xlsx"), "Sheet1", [][]string{{"x"}})

		_, err := FindLatestTemplate(dir)
		if !errors.Is(err, ErrNoTemplate) {
			t.Errorf("error = %v, want ErrNoTemplate", err)
		}
	})

	t.Run("empty_folder", func(t *testing.T) {
		_, err := FindLatestTemplate(t.TempDir())
		if !errors.Is(err, ErrNoTemplate) {
			t.Errorf("error = %v, want ErrNoTemplate", err)
		}
	})
}
