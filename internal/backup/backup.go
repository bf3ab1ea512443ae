// Package backup creates timestamped safety copies of files before a
// rename pass touches them.
//
// Copies land flat in a backup_<timestamp> directory directly under the
// target folder. The scan layer guarantees candidate names are unique
// across subdirectories, so the flat layout cannot silently overwrite
// one copy with another.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sheetmv/sheetmv/internal/constants"
	"github.com/sheetmv/sheetmv/internal/diskspace"
	"github.com/sheetmv/sheetmv/internal/localfs"
	"github.com/sheetmv/sheetmv/internal/logging"
	"github.com/sheetmv/sheetmv/internal/progress"
	"github.com/sheetmv/sheetmv/internal/util/buffers"
)

// Result reports what a backup pass actually copied.
type Result struct {
	Dir    string // backup directory created under the target folder
	Copied int
	Failed int
	Bytes  int64 // bytes written by successful copies
}

// Create copies every file in files into a fresh backup directory under
// targetFolder and returns it. Individual copy failures are logged and
// counted, not fatal: one unreadable file must not block the safety copy
// of the rest. The caller decides whether Failed > 0 stops the run.
//
// Create fails outright only when the disk space preflight rejects the
// copy or the backup directory cannot be created. ui may be nil.
func Create(ctx context.Context, targetFolder string, files []localfs.FileEntry, ui *progress.CopyUI, log *logging.Logger) (*Result, error) {
	var total int64
	for _, f := range files {
		total += f.Size
	}

	dir := filepath.Join(targetFolder, constants.BackupPrefix+time.Now().Format(constants.TimestampFormat))

	// Preflight so a doomed copy fails before the first byte, not midway.
	margin := 1 + constants.DiskSpaceBufferPercent
	if err := diskspace.CheckAvailableSpace(dir, total, margin); err != nil {
		return nil, fmt.Errorf("backup preflight: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	log.Debugf("Backing up %d files (%d bytes) to %s", len(files), total, dir)

	res := &Result{Dir: dir}
	buf := buffers.GetCopyBuffer()
	defer buffers.PutCopyBuffer(buf)

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("backup interrupted: %w", err)
		}

		var fb *progress.CopyFileBar
		if ui != nil {
			fb = ui.AddFileBar(i+1, f.Name, f.Size)
		}

		n, err := copyOne(f, filepath.Join(dir, f.Name), fb, *buf)
		if fb != nil {
			fb.Complete(err)
		}
		if err != nil {
			res.Failed++
			log.Warnf("Backup skipped %s: %v", f.Name, err)
			continue
		}
		res.Copied++
		res.Bytes += n
	}

	return res, nil
}

// copyOne mirrors one file into the backup directory, preserving its
// permission bits and modification time.
func copyOne(src localfs.FileEntry, dstPath string, fb *progress.CopyFileBar, buf []byte) (int64, error) {
	in, err := os.Open(src.Path)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	var reader io.Reader = in
	if fb != nil {
		rc := fb.ProxyReader(in)
		defer rc.Close()
		reader = rc
	}

	out, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, src.Mode.Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.CopyBuffer(out, reader, buf)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Don't leave a truncated copy pretending to be a backup.
		os.Remove(dstPath)
		return n, err
	}

	// O_CREATE's permission argument is filtered through the umask, so
	// set the source's bits explicitly.
	if err := os.Chmod(dstPath, src.Mode.Perm()); err != nil {
		return n, err
	}
	if err := os.Chtimes(dstPath, time.Now(), src.ModTime); err != nil {
		return n, err
	}
	return n, nil
}
