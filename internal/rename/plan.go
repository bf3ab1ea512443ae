package rename

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sheetmv/sheetmv/internal/localfs"
	"github.com/sheetmv/sheetmv/internal/mapping"
)

// Status classifies what a planned operation will do. Classification is
// final at plan time: execution never reclassifies, so a dry run and a
// live run of the same plan report identical collisions and skips.
type Status string

const (
	StatusRename       Status = "RENAME"
	StatusNoChange     Status = "NO_CHANGE"
	StatusSkipEmptyKey Status = "SKIP_EMPTY_KEY"
	StatusSkipNotFound Status = "SKIP_NOT_FOUND"
	StatusCollision    Status = "COLLISION"
)

// Operation is one row's planned outcome. Derived from a row and the
// snapshot, never persisted.
type Operation struct {
	Row     int
	OldName string
	NewName string
	OldPath string
	Note    string
	Status  Status
	Detail  string
}

// Options carries the per-run parameters that shape a plan. They are fixed
// for the whole pass.
type Options struct {
	Mode      Mode
	Extension string
	Delimiter string
	Case      CaseMode
}

func (o Options) fold(name string) string {
	if o.Case == CaseInsensitive {
		return strings.ToLower(name)
	}
	return name
}

// planner tracks the evolving view of the target folder while rows are
// classified in order: a planned rename consumes its old name and claims
// its new one, exactly as the filesystem will evolve during execution.
type planner struct {
	opts    Options
	entries map[string]localfs.FileEntry // exact current name → entry
	names   map[string]map[string]bool   // directory → folded entry names
}

// BuildPlan classifies every row against a snapshot of the target folder,
// in row order, without touching the filesystem. The first row to claim a
// target name wins; later rows claiming the same name come back COLLISION.
// A name freed by an earlier planned rename is claimable by a later row,
// and a renamed file is matchable by later rows under its new name only.
func BuildPlan(rows []mapping.Row, snap *localfs.Snapshot, opts Options) []Operation {
	p := &planner{
		opts:    opts,
		entries: make(map[string]localfs.FileEntry, len(snap.Files)),
		names:   make(map[string]map[string]bool, len(snap.Siblings)),
	}
	for _, f := range snap.Files {
		p.entries[f.Name] = f
	}
	for dir, names := range snap.Siblings {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[opts.fold(n)] = true
		}
		p.names[dir] = set
	}

	ops := make([]Operation, 0, len(rows))
	for _, row := range rows {
		ops = append(ops, p.planRow(row))
	}
	return ops
}

func (p *planner) planRow(row mapping.Row) Operation {
	op := Operation{
		Row:     row.Number,
		OldName: row.CurrentName,
		Note:    row.Note,
	}

	if row.CurrentName == "" {
		op.Status = StatusSkipEmptyKey
		return op
	}

	// Exact, case-sensitive key match. The map already reflects earlier
	// planned renames, so a consumed name no longer matches here.
	entry, ok := p.entries[row.CurrentName]
	if !ok {
		op.Status = StatusSkipNotFound
		return op
	}
	op.OldPath = entry.Path

	newName := NewName(row, entry.Name, p.opts.Mode, p.opts.Extension, p.opts.Delimiter)
	op.NewName = newName

	if newName == entry.Name {
		op.Status = StatusNoChange
		return op
	}

	dir := filepath.Dir(entry.Path)
	set := p.names[dir]
	if set == nil {
		set = make(map[string]bool)
		p.names[dir] = set
	}

	foldedOld := p.opts.fold(entry.Name)
	foldedNew := p.opts.fold(newName)

	// A folded self-match is a case-only rename of the same file, which
	// is not a collision. Anything else already holding the name is.
	if foldedNew != foldedOld && set[foldedNew] {
		op.Status = StatusCollision
		op.Detail = fmt.Sprintf("target exists: %s", newName)
		return op
	}

	op.Status = StatusRename

	delete(p.entries, entry.Name)
	renamed := entry
	renamed.Name = newName
	renamed.Path = filepath.Join(dir, newName)
	p.entries[newName] = renamed

	delete(set, foldedOld)
	set[foldedNew] = true

	return op
}

// Summary aggregates a plan's classification counts.
type Summary struct {
	Renames      int
	NoChange     int
	SkipEmptyKey int
	SkipNotFound int
	Collisions   int
}

// Summarize counts the operations in a plan by status.
func Summarize(ops []Operation) Summary {
	var s Summary
	for _, op := range ops {
		switch op.Status {
		case StatusRename:
			s.Renames++
		case StatusNoChange:
			s.NoChange++
		case StatusSkipEmptyKey:
			s.SkipEmptyKey++
		case StatusSkipNotFound:
			s.SkipNotFound++
		case StatusCollision:
			s.Collisions++
		}
	}
	return s
}

// Missing is the count of rows that could not be paired to a file.
func (s Summary) Missing() int {
	return s.SkipEmptyKey + s.SkipNotFound
}
