package nav

import (
	"io/fs"
	"os"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/sdnav/internal/debug"
)

// Entry is one directory child as seen by the navigator. Entries live in a
// single buffer owned by the navigator; slices handed to callers are borrows
// that become invalid at the next state-mutating call.
type Entry struct {
	Name      string
	IsDir     bool
	NeedsStat bool // true until metadata has been fetched
	Size      int64     // file size in bytes, 0 for directories or unknown
	ModTime   time.Time // zero if unknown
}

// fillMeta stats one entry at fullPath and populates IsDir, Size, and ModTime.
// hint is the raw directory-stream entry when available. On stat failure the
// directory-type hint is kept and size/mtime stay zero; either way NeedsStat
// is cleared, so an entry is only ever stat-ed once per load.
func fillMeta(e *Entry, fullPath string, hint fs.DirEntry) {
	info, err := statEntry(fullPath, hint)
	if err != nil {
		debug.Log(debug.SCAN, "fillMeta: %q: stat failed, keeping dirent hint: %v", e.Name, err)
		if hint != nil {
			e.IsDir = hint.IsDir()
		}
		e.Size = 0
		e.ModTime = time.Time{}
		e.NeedsStat = false
		return
	}

	e.IsDir = info.IsDir()
	if e.IsDir {
		e.Size = 0
	} else {
		e.Size = info.Size()
	}
	e.ModTime = info.ModTime()
	e.NeedsStat = false
}

// statEntry resolves file info for one entry, following symlinks, with an
// lstat fallback for broken links.
func statEntry(fullPath string, hint fs.DirEntry) (fs.FileInfo, error) {
	if hint != nil {
		info, err := fastwalk.StatDirEntry(fullPath, hint)
		if err == nil {
			return info, nil
		}
	} else {
		info, err := os.Stat(fullPath)
		if err == nil {
			return info, nil
		}
	}
	return os.Lstat(fullPath)
}
