package vfscore

import (
	"errors"
	"fmt"

	"github.com/ncruces/go-sqlite3"

	"github.com/rangevfs/rangevfs/internal/rangestore"
)

// mapStorageErr translates a rangestore/stdlib error into the host engine's
// result code space. ErrShortRead is intentionally not an error at
// this boundary in the sense of aborting the call: it still carries data
// (a zero-filled buffer) and is reported as IOERR_SHORT_READ, which the
// host engine treats as a successful read of a sparse page.
func mapStorageErr(err error, fallback sqlite3.ExtendedCode) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, rangestore.ErrShortRead):
		return sqlite3.IOERR_SHORT_READ
	case errors.Is(err, rangestore.ErrSeek):
		return sqlite3.IOERR_SEEK
	case errors.Is(err, rangestore.ErrNotFound):
		return fmt.Errorf("vfscore: %w", err)
	default:
		return fallback
	}
}

// errNoInstance is returned when a file handle's weak reference to its VFS
// instance no longer resolves — the process registry has no entry under
// that name. This mirrors vfsFromFile failing in the original C dispatcher.
var errNoInstance = errors.New("vfscore: vfs instance not registered")
