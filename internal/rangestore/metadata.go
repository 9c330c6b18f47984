package rangestore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Metadata persists the logical page count of a range-sharded database in
// an 8-byte little-endian integer at offset 0 of _METADATA. It is the
// ground truth the VFS consults for file size, since that can
// diverge from the sum of range file sizes: truncation does not update
// it (see the open question decisions in DESIGN.md).
type Metadata struct {
	path      string
	pageSize  int
	f         *os.File
	pageCount uint64
}

// OpenMetadata opens (creating if necessary) the _METADATA file in dir and
// reads the current page count. Like Open for range files, a missing data
// directory is created and the open retried.
func OpenMetadata(dir string, pageSize int) (*Metadata, error) {
	path := filepath.Join(dir, MetadataFileName)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if errors.Is(err, os.ErrNotExist) {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return nil, fmt.Errorf("rangestore: create data dir %s: %w", dir, mkErr)
		}
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	}
	if err != nil {
		return nil, fmt.Errorf("rangestore: open metadata %s: %w", path, err)
	}

	m := &Metadata{path: path, pageSize: pageSize, f: f}
	var buf [8]byte
	n, err := f.ReadAt(buf[:], 0)
	if err != nil && n == 0 {
		// Freshly created file: page count starts at zero.
		return m, nil
	}
	m.pageCount = binary.LittleEndian.Uint64(buf[:])
	return m, nil
}

// PageCount returns the current logical page count.
func (m *Metadata) PageCount() uint64 { return m.pageCount }

// FileSize returns page_count * page_size, the value the VFS reports for
// xFileSize on the main database file.
func (m *Metadata) FileSize() int64 { return int64(m.pageCount) * int64(m.pageSize) }

// AddPage increments the page count by one and persists it. On write
// failure the increment is rolled back so the in-memory value never runs
// ahead of the on-disk value.
func (m *Metadata) AddPage() error {
	m.pageCount++
	if err := m.persist(); err != nil {
		m.pageCount--
		return err
	}
	return nil
}

// SetPageCount sets the page count to an explicit value and persists it.
func (m *Metadata) SetPageCount(n uint64) error {
	prev := m.pageCount
	m.pageCount = n
	if err := m.persist(); err != nil {
		m.pageCount = prev
		return err
	}
	return nil
}

func (m *Metadata) persist() error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], m.pageCount)
	if _, err := m.f.WriteAt(buf[:], 0); err != nil {
		return fmt.Errorf("rangestore: write metadata %s: %w", m.path, err)
	}
	return nil
}

// Close closes the metadata file.
func (m *Metadata) Close() error {
	if err := m.f.Close(); err != nil {
		return fmt.Errorf("rangestore: close metadata %s: %w", m.path, err)
	}
	return nil
}
