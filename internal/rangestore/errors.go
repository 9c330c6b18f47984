package rangestore

import "errors"

// Sentinel errors returned by range file and metadata operations. The
// vfscore dispatcher classifies these with errors.Is and maps them onto the
// host engine's IOERR_* result codes; rangestore itself stays free of
// any SQLite-specific type so it can be tested and reused on its own.
var (
	// ErrShortRead is returned by RangeFile.ReadAt when fewer bytes were
	// available on disk than requested. The destination buffer has
	// already been zero-filled past the short read, matching the host
	// engine's expectation that unwritten space reads back as zeros.
	ErrShortRead = errors.New("rangestore: short read")

	// ErrSeek wraps a failure to position the underlying file descriptor.
	ErrSeek = errors.New("rangestore: seek failed")

	// ErrNotFound is returned when an operation references a range file
	// that the registry has no record of (e.g. Remove on an unopened
	// range).
	ErrNotFound = errors.New("rangestore: range file not found")
)
