package nav

import (
	"fmt"
	"strings"

	"github.com/justyntemme/sdnav/internal/debug"
)

// Bounded string capacities. Composition against these limits fails with
// ErrSizeExceeded rather than truncating.
const (
	// MaxNameLen bounds a single directory entry name.
	MaxNameLen = 255

	// MaxPathLen bounds any composed absolute path.
	MaxPathLen = 1024

	// relPathCap bounds the root-relative path so it always fits the
	// persisted state blob field (which reserves one byte for the
	// terminator-style zero padding).
	relPathCap = stateRelPathField - 1
)

// IsValidRelative reports whether path is a well-formed root-relative path:
// empty (meaning the root itself), or "/"-separated segments where every
// segment is non-empty and none is "." or "..". This is the sole gate that
// keeps navigation confined to the configured root, so it is applied to every
// relative-path write, including values restored from the key-value store.
func IsValidRelative(path string) bool {
	if path == "" {
		return true
	}
	if path[0] == '/' {
		return false
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

// setRelative strips leading slashes from candidate, validates it, and
// recomputes the absolute path. The navigator state is untouched on failure.
func (n *Navigator) setRelative(candidate string) error {
	candidate = strings.TrimLeft(candidate, "/")
	if !IsValidRelative(candidate) {
		return fmt.Errorf("%w: relative path %q", ErrInvalidArgument, candidate)
	}
	if len(candidate) > relPathCap {
		return fmt.Errorf("%w: relative path %d bytes exceeds %d", ErrSizeExceeded, len(candidate), relPathCap)
	}
	abs, err := joinUnderRoot(n.root, candidate)
	if err != nil {
		return err
	}
	debug.Log(debug.PATH, "setRelative: %q -> abs %q", candidate, abs)
	n.rel = candidate
	n.abs = abs
	return nil
}

// joinUnderRoot composes root+rel without cleaning or resolving anything;
// rel must already be validated.
func joinUnderRoot(root, rel string) (string, error) {
	if rel == "" {
		return root, nil
	}
	sep := "/"
	if root == "/" {
		sep = ""
	}
	if len(root)+len(sep)+len(rel) > MaxPathLen {
		return "", fmt.Errorf("%w: composed path for %q exceeds %d bytes", ErrSizeExceeded, rel, MaxPathLen)
	}
	return root + sep + rel, nil
}

// ComposePath joins a single entry name onto the current directory's absolute
// path. The name must be a bare entry name: no separators, not "." or "..".
func (n *Navigator) ComposePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, '/') {
		return "", fmt.Errorf("%w: entry name %q", ErrInvalidArgument, name)
	}
	if len(name) > MaxNameLen {
		return "", fmt.Errorf("%w: entry name %d bytes exceeds %d", ErrSizeExceeded, len(name), MaxNameLen)
	}
	sep := "/"
	if n.abs == "/" {
		sep = ""
	}
	if len(n.abs)+len(sep)+len(name) > MaxPathLen {
		return "", fmt.Errorf("%w: composed path for %q exceeds %d bytes", ErrSizeExceeded, name, MaxPathLen)
	}
	return n.abs + sep + name, nil
}

// parentOf truncates a validated relative path at its last separator.
// The parent of a single-segment path is the root (empty string).
func parentOf(rel string) string {
	idx := strings.LastIndexByte(rel, '/')
	if idx < 0 {
		return ""
	}
	return rel[:idx]
}
