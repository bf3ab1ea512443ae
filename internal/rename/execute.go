package rename

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sheetmv/sheetmv/internal/progress"
	"github.com/sheetmv/sheetmv/internal/validation"
)

// Recorder receives every operation outcome in order, as it happens. The
// audit log writer implements this so a partial run still leaves a record
// of everything completed before the interruption.
type Recorder interface {
	Record(op Operation, execErr error)
}

// Outcome pairs an operation with its execution error, if any.
type Outcome struct {
	Op  Operation
	Err error
}

// Result summarizes an executed plan.
//
// Planned counts RENAME operations that passed execution-side checks; in a
// dry run these are the operations that would have been attempted. Renamed
// counts filesystem renames actually performed and is always zero for a
// dry run.
type Result struct {
	Outcomes []Outcome
	Planned  int
	Renamed  int
	Errors   int
	Skipped  int
	DryRun   bool
}

// Total is the number of processed rows.
func (r *Result) Total() int {
	return r.Planned + r.Errors + r.Skipped
}

// Executor applies a plan operation by operation. Classification is taken
// from the plan as-is; execution only adds per-operation success or failure.
type Executor struct {
	DryRun   bool
	Progress progress.Reporter
	Recorder Recorder
}

// Run executes the plan sequentially in plan order. One failing operation
// does not stop the pass; cancellation via ctx does, after the current
// operation completes.
func (e *Executor) Run(ctx context.Context, ops []Operation) (*Result, error) {
	result := &Result{DryRun: e.DryRun}

	reporter := e.Progress
	if reporter == nil {
		reporter = progress.NewNoOpProgress()
	}

	summary := Summarize(ops)
	steps := int64(summary.Renames + summary.Collisions)
	if steps > 0 {
		reporter.Start(steps, "Renaming files")
	}
	var done int64

	step := func() {
		done++
		reporter.Update(done)
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			reporter.Finish()
			return result, fmt.Errorf("rename pass interrupted: %w", err)
		}

		var execErr error
		switch op.Status {
		case StatusSkipEmptyKey, StatusSkipNotFound, StatusNoChange:
			result.Skipped++
		case StatusCollision:
			result.Errors++
			step()
		case StatusRename:
			execErr = e.renameOne(op)
			if execErr != nil {
				result.Errors++
			} else {
				result.Planned++
				if !e.DryRun {
					result.Renamed++
				}
			}
			step()
		}

		result.Outcomes = append(result.Outcomes, Outcome{Op: op, Err: execErr})
		if e.Recorder != nil {
			e.Recorder.Record(op, execErr)
		}
	}

	if steps > 0 {
		reporter.Finish()
	}
	return result, nil
}

// renameOne performs a single rename. The name check runs in dry runs too,
// so a name the filesystem would reject is reported identically either way.
func (e *Executor) renameOne(op Operation) error {
	if err := validation.ValidateNewName(op.NewName); err != nil {
		return err
	}

	if e.DryRun {
		return nil
	}

	newPath := filepath.Join(filepath.Dir(op.OldPath), op.NewName)

	// The plan was checked against a snapshot. If something claimed the
	// target since, refuse rather than overwrite; a hit on the same file
	// is a case-only rename and proceeds.
	if newInfo, err := os.Lstat(newPath); err == nil {
		oldInfo, statErr := os.Lstat(op.OldPath)
		if statErr != nil || !os.SameFile(oldInfo, newInfo) {
			return fmt.Errorf("target exists: %s", op.NewName)
		}
	}

	if err := os.Rename(op.OldPath, newPath); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	return nil
}
