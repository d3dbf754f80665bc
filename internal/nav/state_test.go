package nav

import (
	"encoding/binary"
	"hash/crc32"
	"strings"
	"testing"
)

func TestStateBlobRoundTrip(t *testing.T) {
	testCases := []struct {
		rel  string
		mode Mode
		asc  bool
	}{
		{"", SortByName, true},
		{"music", SortByDate, false},
		{"music/albums/2026", SortBySize, true},
		{strings.Repeat("a", relPathCap), SortByName, false},
	}

	for _, tc := range testCases {
		buf, err := encodeState(tc.rel, tc.mode, tc.asc)
		if err != nil {
			t.Fatalf("encodeState(%q): %v", tc.rel, err)
		}
		if len(buf) != stateBlobSize {
			t.Fatalf("encodeState(%q): blob is %d bytes, want %d", tc.rel, len(buf), stateBlobSize)
		}

		rel, mode, asc, err := decodeState(buf)
		if err != nil {
			t.Fatalf("decodeState(%q): %v", tc.rel, err)
		}
		if rel != tc.rel || mode != tc.mode || asc != tc.asc {
			t.Errorf("round trip: got (%q, %v, %v), want (%q, %v, %v)",
				rel, mode, asc, tc.rel, tc.mode, tc.asc)
		}
	}
}

func TestStateBlobRelPathTooLong(t *testing.T) {
	_, err := encodeState(strings.Repeat("a", relPathCap+1), SortByName, true)
	assertIs(t, err, ErrSizeExceeded)
}

func TestStateBlobWrongLength(t *testing.T) {
	for _, size := range []int{0, 1, stateBlobSize - 1, stateBlobSize + 1} {
		_, _, _, err := decodeState(make([]byte, size))
		assertIs(t, err, ErrDecode)
	}
}

// Flipping any single byte must surface as a CRC mismatch, regardless of
// which field was damaged.
func TestStateBlobCorruption(t *testing.T) {
	orig, err := encodeState("music/albums", SortByDate, false)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < stateBlobSize; i++ {
		buf := make([]byte, stateBlobSize)
		copy(buf, orig)
		buf[i] ^= 0x01

		_, _, _, err := decodeState(buf)
		assertIs(t, err, ErrCRCMismatch)
	}
}

func TestStateBlobVersionMismatch(t *testing.T) {
	buf, err := encodeState("music", SortByName, true)
	if err != nil {
		t.Fatal(err)
	}

	// Bump the version and fix up the CRC so only the version check fires.
	binary.LittleEndian.PutUint32(buf[4:8], stateVersion+1)
	crc := crc32.ChecksumIEEE(buf[:stateBlobSize-4])
	binary.LittleEndian.PutUint32(buf[stateBlobSize-4:], crc)

	_, _, _, err2 := decodeState(buf)
	assertIs(t, err2, ErrVersionMismatch)
}

func TestStateBlobBadMode(t *testing.T) {
	buf, err := encodeState("music", SortByName, true)
	if err != nil {
		t.Fatal(err)
	}

	binary.LittleEndian.PutUint32(buf[8+stateRelPathField:], uint32(modeCount))
	crc := crc32.ChecksumIEEE(buf[:stateBlobSize-4])
	binary.LittleEndian.PutUint32(buf[stateBlobSize-4:], crc)

	_, _, _, err2 := decodeState(buf)
	assertIs(t, err2, ErrDecode)
}
