package nav

import "errors"

var (
	// ErrInvalidArgument indicates bad caller input: an out-of-range index,
	// an unknown sort mode, a zero window size, or a malformed path.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState indicates an operation that is not legal right now,
	// such as GoParent at the root or Enter on a file entry.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound indicates the root or a restored path is missing from disk.
	ErrNotFound = errors.New("path not found")

	// ErrIO indicates a directory open, read, or stat failure.
	ErrIO = errors.New("i/o error")

	// ErrSizeExceeded indicates a composed path or name would overflow a
	// fixed capacity. Composition fails, it never truncates.
	ErrSizeExceeded = errors.New("size exceeded")

	// ErrDecode indicates the persisted state blob failed basic validation
	// (wrong length or bad magic).
	ErrDecode = errors.New("state blob decode failed")

	// ErrVersionMismatch indicates the persisted state blob carries an
	// unsupported version number.
	ErrVersionMismatch = errors.New("state blob version mismatch")

	// ErrCRCMismatch indicates the persisted state blob checksum does not
	// match its contents.
	ErrCRCMismatch = errors.New("state blob crc mismatch")
)
