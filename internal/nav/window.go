package nav

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/justyntemme/sdnav/internal/debug"
)

// SetWindow loads the slice [start, start+size) of the current directory's
// raw enumeration order. This is the paging mechanism for oversized
// directories: only one page is held in memory, nothing is stat-ed eagerly,
// and each loaded entry starts with NeedsStat set.
//
// size must be positive; start only needs to be non-negative — a start beyond
// the directory's end yields an empty window, not an error. When sorting is
// enabled the directory is already fully loaded, so the call is a harmless
// view-offset adjustment and entries are untouched.
//
// Any previously returned entries slice is invalidated.
func (n *Navigator) SetWindow(start, size int) error {
	if start < 0 {
		return fmt.Errorf("%w: window start %d", ErrInvalidArgument, start)
	}
	if size <= 0 {
		return fmt.Errorf("%w: window size %d", ErrInvalidArgument, size)
	}
	if n.sortEnabled {
		if start > len(n.entries) {
			start = len(n.entries)
		}
		n.winStart = start
		n.winSize = size
		return nil
	}
	return n.loadWindow(start, size)
}

// loadWindow re-opens the OS directory stream, skips the first start
// children, and loads up to size of them. IsDir comes from the dirent type
// hint; size and mtime wait for EnsureMeta.
func (n *Navigator) loadWindow(start, size int) error {
	f, err := os.Open(n.abs)
	if err != nil {
		n.entries = n.entries[:0]
		return fmt.Errorf("%w: open %q: %v", ErrIO, n.abs, err)
	}
	defer f.Close()

	n.entries = n.entries[:0]
	n.winStart = start
	n.winSize = size

	skipped := 0
	for len(n.entries) < size {
		batch, readErr := f.ReadDir(readBatch)
		for _, d := range batch {
			if skipped < start {
				skipped++
				continue
			}
			if len(n.entries) == size {
				break
			}
			n.entries = append(n.entries, Entry{
				Name:      d.Name(),
				IsDir:     d.IsDir(),
				NeedsStat: true,
			})
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			n.entries = n.entries[:0]
			return fmt.Errorf("%w: read %q: %v", ErrIO, n.abs, readErr)
		}
	}

	debug.Log(debug.SCAN, "loadWindow: %q [%d,%d) loaded=%d", n.abs, start, start+size, len(n.entries))
	return nil
}
