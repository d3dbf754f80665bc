package nav

import (
	"strings"
	"testing"
)

func TestIsValidRelative(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		// Empty means the root itself
		{"", true},

		// Normal relative paths
		{"music", true},
		{"music/albums", true},
		{"a/b/c/d", true},
		{".hidden", true},
		{"..twodots", true},
		{"dir.with.dots/file.txt", true},

		// Leading slash
		{"/music", false},
		{"/", false},

		// Dot and dot-dot segments
		{".", false},
		{"..", false},
		{"music/..", false},
		{"../music", false},
		{"music/../albums", false},
		{"music/.", false},
		{"./music", false},

		// Empty segments
		{"music//albums", false},
		{"music/", false},
	}

	for _, tc := range testCases {
		if got := IsValidRelative(tc.path); got != tc.expected {
			t.Errorf("IsValidRelative(%q): expected %v, got %v", tc.path, tc.expected, got)
		}
	}
}

func TestParentOf(t *testing.T) {
	testCases := []struct {
		rel      string
		expected string
	}{
		{"music", ""},
		{"music/albums", "music"},
		{"a/b/c", "a/b"},
	}

	for _, tc := range testCases {
		if got := parentOf(tc.rel); got != tc.expected {
			t.Errorf("parentOf(%q): expected %q, got %q", tc.rel, tc.expected, got)
		}
	}
}

func TestComposePath(t *testing.T) {
	n := &Navigator{root: "/sdcard", abs: "/sdcard"}

	got, err := n.ComposePath("song.mp3")
	if err != nil {
		t.Fatalf("ComposePath: %v", err)
	}
	if got != "/sdcard/song.mp3" {
		t.Errorf("ComposePath: got %q", got)
	}

	bad := []string{"", ".", "..", "a/b"}
	for _, name := range bad {
		if _, err := n.ComposePath(name); err == nil {
			t.Errorf("ComposePath(%q): expected error", name)
		}
	}
}

func TestComposePathOverflow(t *testing.T) {
	n := &Navigator{root: "/sdcard", abs: "/sdcard/" + strings.Repeat("x", MaxPathLen-20)}

	_, err := n.ComposePath(strings.Repeat("y", 40))
	if err == nil {
		t.Fatal("expected overflow error")
	}
	assertIs(t, err, ErrSizeExceeded)
}

func TestSetRelativeRejectsTraversal(t *testing.T) {
	n := &Navigator{root: "/sdcard", abs: "/sdcard"}

	for _, rel := range []string{"..", "a/../b", "./a", "a//b"} {
		if err := n.setRelative(rel); err == nil {
			t.Errorf("setRelative(%q): expected error", rel)
		}
		if n.rel != "" || n.abs != "/sdcard" {
			t.Fatalf("setRelative(%q): state mutated on failure: rel=%q abs=%q", rel, n.rel, n.abs)
		}
	}

	// Leading slashes are stripped, not rejected
	if err := n.setRelative("/music"); err != nil {
		t.Fatalf("setRelative(/music): %v", err)
	}
	if n.rel != "music" || n.abs != "/sdcard/music" {
		t.Errorf("setRelative(/music): rel=%q abs=%q", n.rel, n.abs)
	}
}
