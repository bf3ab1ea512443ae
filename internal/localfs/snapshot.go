package localfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/util/filter"
)

// ErrDuplicateNames indicates a recursive scan found two candidate files
// with the same base name in different directories. Spreadsheet rows match
// files by bare filename, so such a listing would be ambiguous.
var ErrDuplicateNames = errors.New("duplicate filenames in scan")

// ScanOptions configures Scan.
type ScanOptions struct {
	// Extension is the required filename suffix, e.g. ".pdf".
	// The match is case-sensitive.
	Extension string

	// Recursive descends into subdirectories. Hidden directories and the
	// tool's own backup_* folders are never descended into.
	Recursive bool

	// Filter optionally restricts candidates by include/exclude globs.
	// A nil filter matches every name.
	Filter *filter.Filter
}

// Snapshot is a point-in-time view of the target folder taken immediately
// before planning. Files holds the rename candidates; Siblings holds, for
// every directory that was visited, all entry names present in it (including
// hidden files, directories, and files outside the target extension), so
// collision checks can consult a snapshot instead of the live filesystem.
type Snapshot struct {
	Root     string
	Files    []FileEntry
	Siblings map[string][]string
}

// Scan lists rename candidates under root: regular, non-hidden files whose
// names end with opts.Extension and pass opts.Filter. Candidates are sorted
// by base name. The returned Snapshot also records sibling entry names for
// each visited directory.
//
// Returns ErrDuplicateNames if two candidates share a base name.
func Scan(root string, opts ScanOptions) (*Snapshot, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access target folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("target is not a directory: %s", root)
	}

	snap := &Snapshot{
		Root:     root,
		Siblings: make(map[string][]string),
	}

	if opts.Recursive {
		err = snap.scanTree(root, opts)
	} else {
		err = snap.scanFlat(root, opts)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(snap.Files, func(i, j int) bool {
		if snap.Files[i].Name != snap.Files[j].Name {
			return snap.Files[i].Name < snap.Files[j].Name
		}
		return snap.Files[i].Path < snap.Files[j].Path
	})

	// Adjacent duplicates after the name sort mean bare-name matching
	// would be ambiguous.
	for i := 1; i < len(snap.Files); i++ {
		if snap.Files[i].Name == snap.Files[i-1].Name {
			return nil, fmt.Errorf("%w: %q found at both %s and %s",
				ErrDuplicateNames, snap.Files[i].Name, snap.Files[i-1].Path, snap.Files[i].Path)
		}
	}

	for dir := range snap.Siblings {
		sort.Strings(snap.Siblings[dir])
	}

	return snap, nil
}

func (s *Snapshot) scanFlat(root string, opts ScanOptions) error {
	entries, err := ListDirectory(root, ListOptions{IncludeHidden: true})
	if err != nil {
		return fmt.Errorf("cannot list target folder: %w", err)
	}

	for _, entry := range entries {
		s.Siblings[root] = append(s.Siblings[root], entry.Name)
		if s.isCandidate(entry, opts) {
			s.Files = append(s.Files, entry)
		}
	}
	return nil
}

func (s *Snapshot) scanTree(root string, opts ScanOptions) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are invisible rather than fatal.
			return nil
		}
		if path == root {
			return nil
		}

		name := d.Name()
		parent := filepath.Dir(path)
		s.Siblings[parent] = append(s.Siblings[parent], name)

		if d.IsDir() {
			// Backup folders hold copies of the very files being renamed;
			// descending would double-match every name.
			if strings.HasPrefix(name, constants.BackupPrefix) {
				return filepath.SkipDir
			}
			if IsHiddenName(name) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		entry := FileEntry{
			Path:    path,
			Name:    name,
			Size:    info.Size(),
			IsDir:   false,
			ModTime: info.ModTime(),
			Mode:    info.Mode(),
		}
		if s.isCandidate(entry, opts) {
			s.Files = append(s.Files, entry)
		}
		return nil
	})
}

func (s *Snapshot) isCandidate(entry FileEntry, opts ScanOptions) bool {
	if entry.IsDir || !entry.Mode.IsRegular() {
		return false
	}
	if IsHiddenName(entry.Name) {
		return false
	}
	if !strings.HasSuffix(entry.Name, opts.Extension) {
		return false
	}
	return opts.Filter.Match(entry.Name)
}

// TotalSize returns the combined size of all candidate files. The backup
// preflight uses this for its disk space check.
func (s *Snapshot) TotalSize() int64 {
	var total int64
	for _, f := range s.Files {
		total += f.Size
	}
	return total
}
