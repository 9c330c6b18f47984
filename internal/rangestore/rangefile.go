package rangestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RangeFile owns the single host-filesystem file backing one range: up to
// RangePages consecutive pages, named by the zero-padded decimal form of
// its range number inside the VFS's data directory.
//
// Writes are always of exactly one page. Reads may come back short when
// the file has not yet been extended that far; RangeFile reports that to
// the caller rather than papering over it, because the host engine treats
// a short read as an all-zero page.
type RangeFile struct {
	number   RangeNumber
	pageSize int
	path     string
	f        *os.File
}

// Open opens or creates the host file for the given range number inside
// dir, creating dir itself if it does not yet exist.
func Open(dir string, number RangeNumber, pageSize int) (*RangeFile, error) {
	path := filepath.Join(dir, number.PathName())
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if errors.Is(err, os.ErrNotExist) {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return nil, fmt.Errorf("rangestore: create data dir %s: %w", dir, mkErr)
		}
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	}
	if err != nil {
		return nil, fmt.Errorf("rangestore: open range file %s: %w", path, err)
	}
	return &RangeFile{number: number, pageSize: pageSize, path: path, f: f}, nil
}

// Number returns the range number this file backs.
func (r *RangeFile) Number() RangeNumber { return r.number }

// Path returns the host-filesystem path of this range file.
func (r *RangeFile) Path() string { return r.path }

// ReadAt reads length bytes of page page into buf at the page's intra-range
// offset. A short read (the host file does not yet extend that far) zero-
// fills the remainder of buf and returns ErrShortRead — not a fatal error,
// the engine expects pages beyond EOF to read back as zero.
func (r *RangeFile) ReadAt(buf []byte, length int, page PageNumber) (int, error) {
	_, off := Range(page, r.pageSize)
	n, err := r.f.ReadAt(buf[:length], off)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("rangestore: read page %d: %w", page, err)
	}
	if n < length {
		clear(buf[n:length])
		return n, ErrShortRead
	}
	return n, nil
}

// WriteAt writes exactly one page (len(buf) must equal the configured page
// size) at page's intra-range offset.
func (r *RangeFile) WriteAt(buf []byte, page PageNumber) error {
	_, off := Range(page, r.pageSize)
	if _, err := r.f.WriteAt(buf, off); err != nil {
		return fmt.Errorf("rangestore: write page %d: %w", page, err)
	}
	return nil
}

// Size returns the current length of the host file.
func (r *RangeFile) Size() (int64, error) {
	fi, err := r.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("rangestore: stat range %s: %w", r.path, err)
	}
	return fi.Size(), nil
}

// Truncate truncates the host file to the given length in bytes.
func (r *RangeFile) Truncate(size int64) error {
	if err := r.f.Truncate(size); err != nil {
		return fmt.Errorf("rangestore: truncate range %s: %w", r.path, err)
	}
	return nil
}

// Remove closes and deletes the host file.
func (r *RangeFile) Remove() error {
	_ = r.f.Close()
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("rangestore: remove range %s: %w", r.path, err)
	}
	return nil
}

// Close closes the host file without deleting it.
func (r *RangeFile) Close() error {
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("rangestore: close range %s: %w", r.path, err)
	}
	return nil
}
