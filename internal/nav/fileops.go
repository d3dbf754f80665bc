package nav

import (
	"fmt"
	"os"

	"github.com/justyntemme/sdnav/internal/debug"
)

const dirPermission = 0o755

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CreateDir creates a subdirectory of the current directory and refreshes.
// ErrInvalidState if an entry with that name already exists.
func (n *Navigator) CreateDir(name string) error {
	full, err := n.ComposePath(name)
	if err != nil {
		return err
	}
	if pathExists(full) {
		return fmt.Errorf("%w: %q already exists", ErrInvalidState, name)
	}
	if err := os.Mkdir(full, dirPermission); err != nil {
		return fmt.Errorf("%w: mkdir %q: %v", ErrIO, full, err)
	}
	debug.Log(debug.NAV, "CreateDir: %q", full)
	return n.Refresh()
}

// Rename renames the entry at index in the currently visible set and
// refreshes. ErrInvalidState if the destination name already exists.
func (n *Navigator) Rename(index int, newName string) error {
	if index < 0 || index >= len(n.entries) {
		return fmt.Errorf("%w: entry index %d of %d", ErrInvalidArgument, index, len(n.entries))
	}
	oldPath, err := n.ComposePath(n.entries[index].Name)
	if err != nil {
		return err
	}
	newPath, err := n.ComposePath(newName)
	if err != nil {
		return err
	}
	if oldPath == newPath {
		return nil
	}
	if pathExists(newPath) {
		return fmt.Errorf("%w: %q already exists", ErrInvalidState, newName)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("%w: rename %q: %v", ErrIO, oldPath, err)
	}
	debug.Log(debug.NAV, "Rename: %q -> %q", oldPath, newPath)
	return n.Refresh()
}

// Delete removes the entry at index in the currently visible set, recursively
// for directories, and refreshes.
func (n *Navigator) Delete(index int) error {
	if index < 0 || index >= len(n.entries) {
		return fmt.Errorf("%w: entry index %d of %d", ErrInvalidArgument, index, len(n.entries))
	}
	full, err := n.ComposePath(n.entries[index].Name)
	if err != nil {
		return err
	}
	info, err := os.Lstat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, full)
		}
		return fmt.Errorf("%w: stat %q: %v", ErrIO, full, err)
	}
	if info.IsDir() {
		err = os.RemoveAll(full)
	} else {
		err = os.Remove(full)
	}
	if err != nil {
		return fmt.Errorf("%w: remove %q: %v", ErrIO, full, err)
	}
	debug.Log(debug.NAV, "Delete: %q", full)
	return n.Refresh()
}
