package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// CopyUI manages per-file progress bars for the backup copy pass using mpb.
type CopyUI struct {
	progress   *mpb.Progress
	isTerminal bool
	totalFiles int
}

// CopyFileBar represents a single file's copy progress bar.
type CopyFileBar struct {
	bar  *mpb.Bar
	ui   *CopyUI
	name string
	size int64
}

// NewCopyUI creates a copy UI for the given number of files.
func NewCopyUI(totalFiles int) *CopyUI {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))

	var p *mpb.Progress
	if isTerminal {
		// Enable ANSI escape sequences on Windows for proper progress bar rendering
		enableWindowsANSI(os.Stderr)

		p = mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(300*time.Millisecond),
			mpb.WithWidth(100),
		)
	} else {
		// Non-TTY: disable progress bars, just use text output
		p = mpb.New(mpb.WithOutput(io.Discard))
	}

	return &CopyUI{
		progress:   p,
		isTerminal: isTerminal,
		totalFiles: totalFiles,
	}
}

// AddFileBar creates a new progress bar for one file copy.
func (u *CopyUI) AddFileBar(index int, name string, size int64) *CopyFileBar {
	fb := &CopyFileBar{
		ui:   u,
		name: name,
		size: size,
	}

	if u.isTerminal {
		fb.bar = u.progress.New(size,
			mpb.BarStyle().
				Lbound("[").
				Filler("█").
				Tip("█").
				Padding("░").
				Rbound("]"),
			mpb.PrependDecorators(
				decor.Name(fmt.Sprintf("[%d/%d] %s (%.1f MiB)",
					index, u.totalFiles, name, float64(size)/(1024*1024)), decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncSpace),
				decor.Name("  "),
				decor.Percentage(decor.WCSyncSpace),
				decor.Name("  "),
				decor.EwmaSpeed(decor.SizeB1024(0), "% .1f", 60, decor.WCSyncSpace),
			),
			mpb.BarRemoveOnComplete(),
		)
	} else {
		fmt.Fprintf(os.Stderr, "Backing up [%d/%d]: %s (%.1f MiB)\n",
			index, u.totalFiles, name, float64(size)/(1024*1024))
	}

	return fb
}

// ProxyReader wraps a reader so bytes read through it advance the bar.
// Outside a terminal the reader passes through untouched.
func (f *CopyFileBar) ProxyReader(r io.Reader) io.ReadCloser {
	if f.bar == nil {
		return io.NopCloser(r)
	}
	return f.bar.ProxyReader(r)
}

// Complete marks the copy as finished and prints a one-line summary.
func (f *CopyFileBar) Complete(err error) {
	if err == nil {
		if f.bar != nil {
			// Exact 100% completion, then BarRemoveOnComplete kicks in.
			f.bar.SetCurrent(f.size)
			f.bar.SetTotal(f.size, true)
		}
	} else {
		if f.bar != nil {
			f.bar.Abort(true)
		}

		msg := fmt.Sprintf("✗ %s: %v\n", f.name, err)
		// Write through mpb's writer (not stderr directly) to avoid
		// mangling active bars.
		if f.ui.isTerminal && f.ui.progress != nil {
			f.ui.progress.Write([]byte(msg))
		} else {
			fmt.Fprint(os.Stderr, msg)
		}
	}
}

// Wait blocks until all progress bars complete.
func (u *CopyUI) Wait() {
	if u.progress != nil {
		u.progress.Wait()
	}
}

// Writer returns an io.Writer that safely prints above the progress bars.
func (u *CopyUI) Writer() io.Writer {
	if u.progress != nil && u.isTerminal {
		return u.progress
	}
	return os.Stderr
}
