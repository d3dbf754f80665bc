// Package nav implements the filesystem navigator: a bounded, sorted,
// paginated view over one directory of a mounted volume, with durable
// sort/path preferences.
//
// A Navigator is single-owner and not reentrant: callers must not start a
// second operation while one is in progress. Every slice returned by Entries
// is a borrow whose validity ends at the next state-mutating call (Refresh,
// Enter, GoParent, SetSort, SetWindow, Close).
package nav

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/justyntemme/sdnav/internal/debug"
)

// DefaultWindowSize is the page size used for oversized directories when the
// caller has not requested a window yet.
const DefaultWindowSize = 64

// Config carries the navigator's construction parameters.
type Config struct {
	// Root is the absolute, already-mounted directory the navigator is
	// confined to. Trailing slashes are trimmed; it never changes after New.
	Root string

	// MaxItems caps how many entries are fully loaded and sorted.
	// Directories with more children fall back to unsorted windowed
	// paging. 0 means unlimited.
	MaxItems int

	// WindowSize is the initial page size for windowed mode.
	// 0 means DefaultWindowSize.
	WindowSize int

	// DefaultSort and Descending seed the sort settings; a restored
	// preference blob overrides them. Zero values mean name-ascending.
	DefaultSort Mode
	Descending  bool

	// Store persists sort/path preferences. Optional; nil disables
	// persistence.
	Store BlobStore

	// SkipPathRestore keeps the navigator at the root on startup while
	// still restoring persisted sort settings.
	SkipPathRestore bool

	// Log receives operational warnings. The zero value discards them.
	Log zerolog.Logger
}

// Navigator presents one directory at a time under a fixed root. See the
// package comment for the ownership and reentrancy rules.
type Navigator struct {
	root        string
	maxItems    int
	winSize     int
	store       BlobStore
	skipRestore bool
	log         zerolog.Logger

	rel string // root-relative, "" = root, validated, no leading slash
	abs string // root + rel, recomputed on every path change

	entries     []Entry
	total       int
	winStart    int
	mode        Mode
	asc         bool
	sortEnabled bool
}

// New validates cfg, restores persisted preferences best-effort, and performs
// the initial Refresh. A missing or corrupt preference blob, or a restored
// path that no longer exists, is downgraded to a warning and the navigator
// starts at the root with name-ascending sort.
func New(cfg Config) (*Navigator, error) {
	if cfg.Root == "" || cfg.Root[0] != '/' {
		return nil, fmt.Errorf("%w: root must be an absolute path, got %q", ErrInvalidArgument, cfg.Root)
	}
	if cfg.MaxItems < 0 || cfg.WindowSize < 0 {
		return nil, fmt.Errorf("%w: negative max items or window size", ErrInvalidArgument)
	}
	if cfg.DefaultSort < 0 || cfg.DefaultSort >= modeCount {
		return nil, fmt.Errorf("%w: sort mode %d", ErrInvalidArgument, cfg.DefaultSort)
	}
	root := strings.TrimRight(cfg.Root, "/")
	if root == "" {
		root = "/"
	}
	if len(root) > MaxPathLen {
		return nil, fmt.Errorf("%w: root path %d bytes exceeds %d", ErrSizeExceeded, len(root), MaxPathLen)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root %q: %w", root, ErrNotFound)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: root %q is not a directory", ErrInvalidArgument, root)
	}

	winSize := cfg.WindowSize
	if winSize == 0 {
		winSize = DefaultWindowSize
	}

	n := &Navigator{
		root:        root,
		maxItems:    cfg.MaxItems,
		winSize:     winSize,
		store:       cfg.Store,
		skipRestore: cfg.SkipPathRestore,
		log:         cfg.Log,
		abs:         root,
		mode:        cfg.DefaultSort,
		asc:         !cfg.Descending,
	}

	if err := n.restoreState(); err != nil {
		n.log.Warn().Err(err).Msg("persisted navigator state discarded, starting at root")
	}
	if err := n.Refresh(); err != nil {
		return nil, err
	}
	debug.Log(debug.NAV, "New: root=%q rel=%q maxItems=%d", n.root, n.rel, n.maxItems)
	return n, nil
}

// Close releases the entry buffer. The navigator must not be used afterwards;
// the blob store stays open, it belongs to the caller.
func (n *Navigator) Close() {
	n.entries = nil
	n.total = 0
}

// Entries returns the current entry buffer and the number of entries in it.
// In sorted mode this is the whole directory; in windowed mode it is the
// current page. The slice is a borrow: invalid after any mutating call.
func (n *Navigator) Entries() ([]Entry, int) {
	return n.entries, len(n.entries)
}

// CurrentPath returns the absolute path of the current directory.
func (n *Navigator) CurrentPath() string { return n.abs }

// RelativePath returns the root-relative path, "" when at the root.
func (n *Navigator) RelativePath() string { return n.rel }

// CanGoParent reports whether the navigator is below the root.
func (n *Navigator) CanGoParent() bool { return n.rel != "" }

// TotalItems returns the child count of the current directory as of the last
// Refresh, regardless of how many entries are loaded.
func (n *Navigator) TotalItems() int { return n.total }

// WindowStart returns the offset of the first loaded entry within the raw
// directory order (always 0 in sorted mode after a refresh).
func (n *Navigator) WindowStart() int { return n.winStart }

// SortEnabled reports whether the whole directory is loaded and sorted.
// Invariant: true exactly when TotalItems <= MaxItems or MaxItems is 0.
func (n *Navigator) SortEnabled() bool { return n.sortEnabled }

// Sort returns the active sort mode and direction.
func (n *Navigator) Sort() (Mode, bool) { return n.mode, n.asc }

// Enter descends into the directory entry at index in the currently visible
// set. ErrInvalidState if the entry is a file. On refresh failure the
// relative path is rolled back. Persists preferences on success.
func (n *Navigator) Enter(index int) error {
	if index < 0 || index >= len(n.entries) {
		return fmt.Errorf("%w: entry index %d of %d", ErrInvalidArgument, index, len(n.entries))
	}
	e := &n.entries[index]
	if !e.IsDir {
		return fmt.Errorf("%w: %q is not a directory", ErrInvalidState, e.Name)
	}

	child := e.Name
	if n.rel != "" {
		child = n.rel + "/" + child
	}
	saveRel, saveAbs := n.rel, n.abs
	if err := n.setRelative(child); err != nil {
		return err
	}
	if err := n.Refresh(); err != nil {
		n.rel, n.abs = saveRel, saveAbs
		return err
	}
	debug.Log(debug.NAV, "Enter: now at %q", n.rel)
	return n.persistState()
}

// GoParent ascends one level. ErrInvalidState at the root. Persists
// preferences on success.
func (n *Navigator) GoParent() error {
	if n.rel == "" {
		return fmt.Errorf("%w: already at root", ErrInvalidState)
	}
	saveRel, saveAbs := n.rel, n.abs
	if err := n.setRelative(parentOf(n.rel)); err != nil {
		return err
	}
	if err := n.Refresh(); err != nil {
		n.rel, n.abs = saveRel, saveAbs
		return err
	}
	debug.Log(debug.NAV, "GoParent: now at %q", n.rel)
	return n.persistState()
}

// SetSort changes the sort mode and direction, re-sorts the loaded entries
// when sorting is enabled, and persists. In windowed mode the setting is
// stored and persisted but the page order is untouched: oversized
// directories browse in raw enumeration order.
func (n *Navigator) SetSort(mode Mode, asc bool) error {
	if mode < 0 || mode >= modeCount {
		return fmt.Errorf("%w: sort mode %d", ErrInvalidArgument, mode)
	}
	n.mode = mode
	n.asc = asc
	if n.sortEnabled {
		sortEntries(n.entries, n.mode, n.asc)
	}
	return n.persistState()
}

// EnsureMeta fetches metadata for the entry at index if it has not been
// fetched yet. Windowed pages load without stat-ing, so visible entries are
// populated one at a time through this call.
func (n *Navigator) EnsureMeta(index int) error {
	if index < 0 || index >= len(n.entries) {
		return fmt.Errorf("%w: entry index %d of %d", ErrInvalidArgument, index, len(n.entries))
	}
	e := &n.entries[index]
	if !e.NeedsStat {
		return nil
	}
	full, err := n.ComposePath(e.Name)
	if err != nil {
		return err
	}
	fillMeta(e, full, nil)
	return nil
}
