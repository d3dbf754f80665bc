package nav

import (
	"testing"
	"time"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i := range entries {
		out[i] = entries[i].Name
	}
	return out
}

func assertOrder(t *testing.T, entries []Entry, want []string) {
	t.Helper()
	got := names(entries)
	if len(got) != len(want) {
		t.Fatalf("entry count: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestSortDirectoriesFirst(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Name: "zz.txt", Size: 1, ModTime: ts},
		{Name: "Alpha", IsDir: true},
		{Name: "aa.txt", Size: 2, ModTime: ts},
		{Name: "beta", IsDir: true},
	}

	for _, mode := range []Mode{SortByName, SortByDate, SortBySize} {
		for _, asc := range []bool{true, false} {
			sortEntries(entries, mode, asc)
			if !entries[0].IsDir || !entries[1].IsDir {
				t.Errorf("mode=%v asc=%v: directories not first: %v", mode, asc, names(entries))
			}
		}
	}
}

func TestSortByName(t *testing.T) {
	entries := []Entry{
		{Name: "b.txt"},
		{Name: "Z", IsDir: true},
		{Name: "A.txt"},
		{Name: "c", IsDir: true},
	}

	sortEntries(entries, SortByName, true)
	assertOrder(t, entries, []string{"c", "Z", "A.txt", "b.txt"})

	sortEntries(entries, SortByName, false)
	assertOrder(t, entries, []string{"Z", "c", "b.txt", "A.txt"})
}

func TestSortByDate(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Name: "new.txt", ModTime: t0.Add(2 * time.Hour)},
		{Name: "old.txt", ModTime: t0},
		{Name: "mid.txt", ModTime: t0.Add(time.Hour)},
	}

	sortEntries(entries, SortByDate, true)
	assertOrder(t, entries, []string{"old.txt", "mid.txt", "new.txt"})

	sortEntries(entries, SortByDate, false)
	assertOrder(t, entries, []string{"new.txt", "mid.txt", "old.txt"})
}

func TestSortBySize(t *testing.T) {
	entries := []Entry{
		{Name: "big.bin", Size: 3000},
		{Name: "small.bin", Size: 10},
		{Name: "mid.bin", Size: 500},
	}

	sortEntries(entries, SortBySize, true)
	assertOrder(t, entries, []string{"small.bin", "mid.bin", "big.bin"})
}

func TestSortTieBreaksByName(t *testing.T) {
	ts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Name: "c.txt", Size: 100, ModTime: ts},
		{Name: "a.txt", Size: 100, ModTime: ts},
		{Name: "B.txt", Size: 100, ModTime: ts},
	}

	sortEntries(entries, SortBySize, true)
	assertOrder(t, entries, []string{"a.txt", "B.txt", "c.txt"})

	sortEntries(entries, SortByDate, true)
	assertOrder(t, entries, []string{"a.txt", "B.txt", "c.txt"})

	// Descending flips the tie-break too
	sortEntries(entries, SortBySize, false)
	assertOrder(t, entries, []string{"c.txt", "B.txt", "a.txt"})
}

func TestSortDirectoriesIgnoreMode(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Name: "zeta", IsDir: true, ModTime: t0},
		{Name: "alpha", IsDir: true, ModTime: t0.Add(time.Hour)},
	}

	// Date mode must not reorder directories away from name order
	sortEntries(entries, SortByDate, true)
	assertOrder(t, entries, []string{"alpha", "zeta"})
}

func TestSortIdempotent(t *testing.T) {
	ts := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Name: "d1", IsDir: true},
		{Name: "x.txt", Size: 5, ModTime: ts},
		{Name: "y.txt", Size: 5, ModTime: ts},
		{Name: "w.txt", Size: 9, ModTime: ts.Add(time.Minute)},
	}

	sortEntries(entries, SortBySize, true)
	first := names(entries)

	sortEntries(entries, SortBySize, true)
	assertOrder(t, entries, first)
}

func TestSortSmallInputsNoop(t *testing.T) {
	sortEntries(nil, SortByName, true)
	one := []Entry{{Name: "only"}}
	sortEntries(one, SortByName, true)
	if one[0].Name != "only" {
		t.Error("single-entry slice mutated")
	}
}
