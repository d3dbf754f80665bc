package nav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/justyntemme/sdnav/internal/debug"
)

// BlobStore is the key-value persistence collaborator: an opaque namespaced
// blob store with staged writes and an explicit commit.
type BlobStore interface {
	// Get returns the stored value for key, or an error if absent.
	Get(key string) ([]byte, error)
	// Set stages a value for key; it is not durable until Commit.
	Set(key string, value []byte) error
	// Commit makes all staged writes durable.
	Commit() error
}

// StateKey is the fixed key the navigator state blob is stored under.
const StateKey = "navstate"

// Persisted state blob layout, little-endian, fixed size:
//
//	[magic u32][version u32][relpath 256B zero-padded][mode u32][asc u8][reserved 3B][crc32 u32]
//
// The layout is written field by field; it never depends on in-memory struct
// layout. The CRC32 (IEEE) covers every byte before the CRC field.
const (
	stateMagic   uint32 = 0x564E4453 // "SDNV" on the wire
	stateVersion uint32 = 1

	stateRelPathField = 256
	stateBlobSize     = 4 + 4 + stateRelPathField + 4 + 1 + 3 + 4
)

// encodeState serializes the preference blob.
func encodeState(rel string, mode Mode, asc bool) ([]byte, error) {
	if len(rel) > relPathCap {
		return nil, fmt.Errorf("%w: relative path %d bytes exceeds blob field", ErrSizeExceeded, len(rel))
	}

	buf := make([]byte, stateBlobSize)
	binary.LittleEndian.PutUint32(buf[0:4], stateMagic)
	binary.LittleEndian.PutUint32(buf[4:8], stateVersion)
	copy(buf[8:8+stateRelPathField], rel)
	binary.LittleEndian.PutUint32(buf[8+stateRelPathField:], uint32(mode))
	if asc {
		buf[12+stateRelPathField] = 1
	}
	// 3 reserved bytes stay zero.
	crc := crc32.ChecksumIEEE(buf[:stateBlobSize-4])
	binary.LittleEndian.PutUint32(buf[stateBlobSize-4:], crc)
	return buf, nil
}

// decodeState validates and deserializes a preference blob. The CRC is
// checked before any field is interpreted, so a corrupted blob reports
// ErrCRCMismatch regardless of which byte was damaged.
func decodeState(buf []byte) (rel string, mode Mode, asc bool, err error) {
	if len(buf) != stateBlobSize {
		return "", 0, false, fmt.Errorf("%w: blob is %d bytes, want %d", ErrDecode, len(buf), stateBlobSize)
	}
	want := binary.LittleEndian.Uint32(buf[stateBlobSize-4:])
	if got := crc32.ChecksumIEEE(buf[:stateBlobSize-4]); got != want {
		return "", 0, false, fmt.Errorf("%w: crc 0x%08x, want 0x%08x", ErrCRCMismatch, got, want)
	}
	if magic := binary.LittleEndian.Uint32(buf[0:4]); magic != stateMagic {
		return "", 0, false, fmt.Errorf("%w: bad magic 0x%08x", ErrDecode, magic)
	}
	if ver := binary.LittleEndian.Uint32(buf[4:8]); ver != stateVersion {
		return "", 0, false, fmt.Errorf("%w: version %d, want %d", ErrVersionMismatch, ver, stateVersion)
	}

	raw := buf[8 : 8+stateRelPathField]
	if idx := bytes.IndexByte(raw, 0); idx >= 0 {
		raw = raw[:idx]
	}
	rel = string(raw)
	mode = Mode(binary.LittleEndian.Uint32(buf[8+stateRelPathField:]))
	asc = buf[12+stateRelPathField] != 0
	if mode < 0 || mode >= modeCount {
		return "", 0, false, fmt.Errorf("%w: sort mode %d out of range", ErrDecode, mode)
	}
	return rel, mode, asc, nil
}

// persistState writes the current relative path and sort settings through the
// blob store and commits. Called after every successful navigation or sort
// change; failures propagate to the caller.
func (n *Navigator) persistState() error {
	if n.store == nil {
		return nil
	}
	buf, err := encodeState(n.rel, n.mode, n.asc)
	if err != nil {
		return err
	}
	if err := n.store.Set(StateKey, buf); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	if err := n.store.Commit(); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	debug.Log(debug.STORE, "persistState: rel=%q mode=%s asc=%v", n.rel, n.mode, n.asc)
	return nil
}

// restoreState loads persisted preferences at init. A corrupted or stale blob
// never mutates the navigator: the decoded path goes back through the path
// validator, and if the directory no longer exists on disk the navigator
// stays at the root and reports ErrNotFound so the caller can warn.
func (n *Navigator) restoreState() error {
	if n.store == nil {
		return nil
	}
	buf, err := n.store.Get(StateKey)
	if err != nil {
		return fmt.Errorf("restore state: %w", err)
	}
	rel, mode, asc, err := decodeState(buf)
	if err != nil {
		return fmt.Errorf("restore state: %w", err)
	}

	if n.skipRestore {
		n.mode = mode
		n.asc = asc
		debug.Log(debug.STORE, "restoreState: path restore disabled, staying at root")
		return nil
	}

	saveRel, saveAbs := n.rel, n.abs
	if err := n.setRelative(rel); err != nil {
		return fmt.Errorf("restore state: %w", err)
	}
	if info, statErr := os.Stat(n.abs); statErr != nil || !info.IsDir() {
		n.rel, n.abs = saveRel, saveAbs
		return fmt.Errorf("restore state: %q: %w", rel, ErrNotFound)
	}

	n.mode = mode
	n.asc = asc
	debug.Log(debug.STORE, "restoreState: rel=%q mode=%s asc=%v", n.rel, n.mode, n.asc)
	return nil
}
