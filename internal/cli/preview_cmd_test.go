package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/sheetmv/sheetmv/internal/rename"
)

func stripColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestWritePreviewBlocks(t *testing.T) {
	stripColor(t)

	ops := []rename.Operation{
		{Row: 1, OldName: "a.pdf", NewName: "001-a.pdf", Status: rename.StatusRename},
		{Row: 2, OldName: "b.pdf", NewName: "b.pdf", Status: rename.StatusNoChange},
		{Row: 3, Status: rename.StatusSkipEmptyKey},
		{Row: 4, OldName: "ghost.pdf", Status: rename.StatusSkipNotFound},
		{Row: 5, OldName: "c.pdf", NewName: "001-a.pdf", Status: rename.StatusCollision},
	}

	var buf bytes.Buffer
	writePreview(&buf, ops, 3, 5)
	out := buf.String()

	wants := []string{
		"PREVIEW OF CHANGES (Strict Current_Filename Matching)",
		"Total files in folder: 3 | Rows in sheet: 5",
		"  1. BEFORE: a.pdf",
		"     AFTER:  001-a.pdf",
		"  2. (no change) b.pdf",
		"⚠ Row 3: Empty Current_Filename (SKIPPED)",
		"   Fix: Column B must contain the exact existing filename",
		"⚠ Row 4: File not found: 'ghost.pdf'",
		"   Check: Does this exact filename exist in the target folder?",
		"     ⚠ WARNING: Target name collision detected",
		"Summary: 2 file(s) will be renamed",
		"⚠ Missing/Unmatched files: 2",
		"  Action: Check Column B (Current_Filename) matches exact filenames",
		"⚠ Collisions: 1 (resolve before running)",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("preview output missing %q\noutput:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Ready:") {
		t.Errorf("preview with collisions must not report ready\noutput:\n%s", out)
	}
}

func TestWritePreviewClean(t *testing.T) {
	stripColor(t)

	ops := []rename.Operation{
		{Row: 1, OldName: "a.pdf", NewName: "001-a.pdf", Status: rename.StatusRename},
		{Row: 2, OldName: "b.pdf", NewName: "002-b.pdf", Status: rename.StatusRename},
	}

	var buf bytes.Buffer
	writePreview(&buf, ops, 2, 2)
	out := buf.String()

	if !strings.Contains(out, "Summary: 2 file(s) will be renamed") {
		t.Errorf("preview summary wrong:\n%s", out)
	}
	if !strings.Contains(out, "Ready: sheetmv run") {
		t.Errorf("clean preview should report ready:\n%s", out)
	}
	if strings.Contains(out, "Missing/Unmatched") {
		t.Errorf("clean preview should not report missing files:\n%s", out)
	}
}

func TestWritePreviewNothingToDo(t *testing.T) {
	stripColor(t)

	ops := []rename.Operation{
		{Row: 1, OldName: "ghost.pdf", Status: rename.StatusSkipNotFound},
		{Row: 2, Status: rename.StatusSkipEmptyKey},
	}

	var buf bytes.Buffer
	writePreview(&buf, ops, 4, 2)
	out := buf.String()

	if !strings.Contains(out, "Summary: 0 file(s) will be renamed") {
		t.Errorf("preview summary wrong:\n%s", out)
	}
	if !strings.Contains(out, "No files will be renamed. Check Column B values!") {
		t.Errorf("empty preview should warn about Column B:\n%s", out)
	}
	if strings.Contains(out, "Ready:") {
		t.Errorf("empty preview must not report ready:\n%s", out)
	}
}
