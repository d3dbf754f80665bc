package nav

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/justyntemme/sdnav/internal/debug"
)

// readBatch is how many dirents one ReadDir call pulls from the OS stream.
const readBatch = 128

// initialCap seeds the entry buffer; growth doubles from here.
const initialCap = 16

// Refresh re-reads the current directory from scratch. It counts every child
// (the OS stream already omits "." and ".."), then applies the decision
// policy: when the count fits under MaxItems (or MaxItems is 0) the whole
// directory is loaded, stat-ed eagerly, and sorted; otherwise sorting is
// disabled and only the first window is loaded, unstatted, in raw
// enumeration order.
//
// On open or read failure the entry buffer is cleared, the count resets to 0,
// and ErrIO propagates. A child whose composed path would overflow the path
// buffer is skipped with a warning, never fatal to the listing.
func (n *Navigator) Refresh() error {
	f, err := os.Open(n.abs)
	if err != nil {
		n.clearEntries()
		return fmt.Errorf("%w: open %q: %v", ErrIO, n.abs, err)
	}
	defer f.Close()

	keep := n.maxItems
	if keep == 0 {
		keep = -1 // unlimited
	}
	collected := make([]fs.DirEntry, 0, initialCap)
	total := 0
	for {
		batch, readErr := f.ReadDir(readBatch)
		for _, d := range batch {
			total++
			if keep < 0 || total <= keep {
				collected = append(collected, d)
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			n.clearEntries()
			return fmt.Errorf("%w: read %q: %v", ErrIO, n.abs, readErr)
		}
	}

	n.total = total
	n.sortEnabled = keep < 0 || total <= keep
	debug.Log(debug.SCAN, "Refresh: %q total=%d sortEnabled=%v", n.abs, total, n.sortEnabled)

	if !n.sortEnabled {
		// Oversized directory: drop what was collected and page instead.
		n.entries = n.entries[:0]
		return n.loadWindow(0, n.winSize)
	}

	n.entries = n.entries[:0]
	for _, d := range collected {
		full, composeErr := n.ComposePath(d.Name())
		if composeErr != nil {
			n.log.Warn().Err(composeErr).Str("name", d.Name()).Msg("skipping entry")
			continue
		}
		e := Entry{Name: d.Name(), IsDir: d.IsDir(), NeedsStat: true}
		fillMeta(&e, full, d)
		n.entries = append(n.entries, e)
	}
	sortEntries(n.entries, n.mode, n.asc)
	n.winStart = 0
	return nil
}

func (n *Navigator) clearEntries() {
	n.entries = n.entries[:0]
	n.total = 0
}
