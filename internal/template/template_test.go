package template

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/localfs"
	"github.com/sheetmv/sheetmv/internal/mapping"
)

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 30, 0, 0, time.Local)

	got := DefaultFilename(now)
	if got != "sheet-index-20240115.xlsx" {
		t.Errorf("DefaultFilename = %q, want sheet-index-20240115.xlsx", got)
	}

	// Generated names must be discoverable by auto-pull.
	match, err := filepath.Match(constants.TemplatePattern, got)
	if err != nil || !match {
		t.Errorf("DefaultFilename %q does not match pattern %q", got, constants.TemplatePattern)
	}
}

func TestBuildRows(t *testing.T) {
	files := []localfs.FileEntry{
		{Name: "scan-b.pdf"},
		{Name: "archive.tar.gz"},
	}

	got := BuildRows(files)
	want := []mapping.Row{
		{Number: 1, CurrentName: "scan-b.pdf", Prefix: "001", NewBase: "scan-b"},
		{Number: 2, CurrentName: "archive.tar.gz", Prefix: "002", NewBase: "archive.tar"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildRows = %+v, want %+v", got, want)
	}
}

func TestWriteWorkbookRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet-index-20240115.xlsx")

	files := []localfs.FileEntry{
		{Name: "invoice.pdf"},
		{Name: "report.pdf"},
	}
	rows := BuildRows(files)
	meta := Meta{
		FileCount: len(files),
		Extension: ".pdf",
		Timestamp: time.Date(2024, 1, 15, 9, 30, 0, 0, time.Local),
	}

	if err := Write(path, rows, meta); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// The generated workbook must be readable by the row source.
	got, err := mapping.ReadRows(path)
	if err != nil {
		t.Fatalf("ReadRows failed on generated template: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("round trip rows = %+v, want %+v", got, rows)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(constants.SheetName); idx == -1 {
		t.Errorf("sheet %q missing", constants.SheetName)
	}
	if idx, _ := f.GetSheetIndex(constants.InstructionsSheetName); idx == -1 {
		t.Errorf("sheet %q missing", constants.InstructionsSheetName)
	}
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("default Sheet1 should be removed")
	}

	title, err := f.GetCellValue(constants.InstructionsSheetName, "A1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if title != "SHEETMV - INSTRUCTIONS" {
		t.Errorf("instructions title = %q, want SHEETMV - INSTRUCTIONS", title)
	}

	scanned, err := f.GetCellValue(constants.InstructionsSheetName, "A18")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if scanned != "Scanned: 2 files" {
		t.Errorf("instructions scan line = %q, want \"Scanned: 2 files\"", scanned)
	}
}

func TestWriteWorkbookColumnWidthCap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.xlsx")

	longName := strings.Repeat("x", 60) + ".pdf"
	rows := BuildRows([]localfs.FileEntry{{Name: longName}})

	if err := Write(path, rows, Meta{FileCount: 1, Extension: ".pdf", Timestamp: time.Now()}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	widthB, err := f.GetColWidth(constants.SheetName, "B")
	if err != nil {
		t.Fatalf("GetColWidth failed: %v", err)
	}
	if widthB != 50 {
		t.Errorf("column B width = %v, want capped at 50", widthB)
	}

	// Notes column only holds its header, so it sits at len("Notes")+2.
	widthE, err := f.GetColWidth(constants.SheetName, "E")
	if err != nil {
		t.Fatalf("GetColWidth failed: %v", err)
	}
	if widthE != 7 {
		t.Errorf("column E width = %v, want 7", widthE)
	}
}

func TestWriteBlankWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blank.xlsx")

	if err := WriteBlank(path); err != nil {
		t.Fatalf("WriteBlank failed: %v", err)
	}

	got, err := mapping.ReadRows(path)
	if err != nil {
		t.Fatalf("ReadRows failed on blank template: %v", err)
	}
	if !reflect.DeepEqual(got, BlankRows()) {
		t.Errorf("blank rows = %+v, want %+v", got, BlankRows())
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue(constants.InstructionsSheetName, "A1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if title != "SHEETMV - BLANK TEMPLATE" {
		t.Errorf("instructions title = %q, want SHEETMV - BLANK TEMPLATE", title)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.csv")

	rows := BuildRows([]localfs.FileEntry{
		{Name: "a.pdf"},
		{Name: "b.pdf"},
	})

	// Write dispatches on the extension, so a .csv path must produce CSV.
	if err := Write(path, rows, Meta{FileCount: 2, Extension: ".pdf", Timestamp: time.Now()}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	firstLine := strings.SplitN(string(raw), "\n", 2)[0]
	if strings.TrimRight(firstLine, "\r") != "Row,Current_Filename,Prefix,New_Filename,Notes" {
		t.Errorf("CSV header = %q", firstLine)
	}

	got, err := mapping.ReadRows(path)
	if err != nil {
		t.Fatalf("ReadRows failed on CSV template: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("round trip rows = %+v, want %+v", got, rows)
	}
}
