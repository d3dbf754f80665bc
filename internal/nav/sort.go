package nav

import (
	"sort"
	"strings"
)

// Mode selects the file-ordering criterion. Directories are unaffected by it:
// they always precede files and always order by folded name, so navigation
// stays predictable across mode changes.
type Mode int

const (
	SortByName Mode = iota
	SortByDate
	SortBySize

	modeCount
)

func (m Mode) String() string {
	switch m {
	case SortByName:
		return "name"
	case SortByDate:
		return "date"
	case SortBySize:
		return "size"
	}
	return "unknown"
}

// ParseMode maps a config/CLI string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "name":
		return SortByName, nil
	case "date":
		return SortByDate, nil
	case "size":
		return SortBySize, nil
	}
	return SortByName, ErrInvalidArgument
}

// compareEntries orders two entries, in priority order: directories before
// files; directories by folded name; files by the active mode; any tie breaks
// by folded name. Descending negates the within-group result only, never
// directories-first.
func compareEntries(a, b *Entry, mode Mode, asc bool) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}

	nameA := strings.ToLower(a.Name)
	nameB := strings.ToLower(b.Name)

	var cmp int
	if !a.IsDir {
		switch mode {
		case SortByDate:
			cmp = a.ModTime.Compare(b.ModTime)
		case SortBySize:
			switch {
			case a.Size < b.Size:
				cmp = -1
			case a.Size > b.Size:
				cmp = 1
			}
		}
	}
	if cmp == 0 {
		cmp = strings.Compare(nameA, nameB)
	}

	if !asc {
		cmp = -cmp
	}
	return cmp
}

// sortEntries sorts the entry buffer in place. Only ever invoked over the
// complete entry set; no-op for fewer than two entries. Deterministic and
// idempotent: re-sorting a sorted slice leaves it unchanged.
func sortEntries(entries []Entry, mode Mode, asc bool) {
	if len(entries) < 2 {
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return compareEntries(&entries[i], &entries[j], mode, asc) < 0
	})
}
