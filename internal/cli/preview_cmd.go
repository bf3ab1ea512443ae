package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/rename"
)

// newPreviewCmd creates the 'preview' command.
func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show what a run would do, without touching any file",
		Long: `Reads the mapping sheet and the target folder fresh, pairs rows to
files by exact Current_Filename match, and prints every row's outcome:
rename, no change, skip (empty or unmatched Column B) or collision.

Collision detection here is the same classification a run uses, so a
clean preview means a clean run against an unchanged folder.

The report goes to stdout and is safe to pipe or redirect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rp, _, err := resolveRunParams(cmd)
			if err != nil {
				return err
			}
			if err := rp.validateInputs(GetLogger()); err != nil {
				return err
			}

			ops, snap, rows, err := loadPlan(rp)
			if err != nil {
				return err
			}

			writePreview(os.Stdout, ops, len(snap.Files), len(rows))
			return nil
		},
	}

	addRunFlags(cmd)
	return cmd
}

// writePreview prints the plan in the preview layout: one block per row
// in sheet order, then a summary with warnings.
func writePreview(w io.Writer, ops []rename.Operation, fileCount, rowCount int) {
	heavy := strings.Repeat("═", 120)
	light := strings.Repeat("─", 120)

	fmt.Fprintln(w, heavy)
	fmt.Fprintln(w, "PREVIEW OF CHANGES (Strict Current_Filename Matching)")
	fmt.Fprintln(w, heavy)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total files in folder: %d | Rows in sheet: %d\n\n", fileCount, rowCount)
	fmt.Fprintln(w, light)
	fmt.Fprintln(w)

	for _, op := range ops {
		switch op.Status {
		case rename.StatusSkipEmptyKey:
			fmt.Fprintf(w, "%s Row %d: Empty Current_Filename (SKIPPED)\n", color.YellowString("⚠"), op.Row)
			fmt.Fprintln(w, "   Fix: Column B must contain the exact existing filename")
			fmt.Fprintln(w)
		case rename.StatusSkipNotFound:
			fmt.Fprintf(w, "%s Row %d: File not found: '%s'\n", color.YellowString("⚠"), op.Row, op.OldName)
			fmt.Fprintln(w, "   Check: Does this exact filename exist in the target folder?")
			fmt.Fprintln(w)
		case rename.StatusNoChange:
			fmt.Fprintf(w, "%3d. (no change) %s\n\n", op.Row, op.OldName)
		case rename.StatusCollision:
			fmt.Fprintf(w, "%3d. BEFORE: %s\n", op.Row, op.OldName)
			fmt.Fprintf(w, "     AFTER:  %s\n", op.NewName)
			fmt.Fprintf(w, "     %s WARNING: Target name collision detected\n\n", color.RedString("⚠"))
		case rename.StatusRename:
			fmt.Fprintf(w, "%3d. BEFORE: %s\n", op.Row, op.OldName)
			fmt.Fprintf(w, "     AFTER:  %s\n\n", op.NewName)
		}
	}

	s := rename.Summarize(ops)
	changes := s.Renames + s.Collisions

	fmt.Fprintln(w, light)
	fmt.Fprintf(w, "\nSummary: %d file(s) will be renamed\n", changes)
	if s.Missing() > 0 {
		fmt.Fprintf(w, "%s Missing/Unmatched files: %d\n", color.YellowString("⚠"), s.Missing())
		fmt.Fprintln(w, "  Action: Check Column B (Current_Filename) matches exact filenames")
	}
	if s.Collisions > 0 {
		fmt.Fprintf(w, "%s Collisions: %d (resolve before running)\n", color.RedString("⚠"), s.Collisions)
	}
	if changes == 0 {
		fmt.Fprintf(w, "\n%s No files will be renamed. Check Column B values!\n", color.YellowString("⚠"))
	} else if s.Collisions == 0 && s.Missing() == 0 {
		fmt.Fprintf(w, "\nReady: %s run\n", constants.BinaryName)
	}
}
