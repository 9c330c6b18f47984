// Package rangestore implements the paged storage mapping layer that backs
// the main database file of a range-sharded SQLite VFS: a logical,
// page-addressed database is realized as a directory of fixed-capacity
// range files plus a small metadata file recording the logical page count.
package rangestore

import "fmt"

const (
	// RangePages is the maximum number of consecutive pages held by a
	// single range file.
	RangePages = 1024

	// MinPageSize is the smallest page size a VFS instance may be created
	// with. SQLite itself never issues pages smaller than this.
	MinPageSize = 512

	// MetadataFileName is the name of the file, inside every data
	// directory, that persists the logical page count.
	MetadataFileName = "_METADATA"
)

// PageNumber identifies a 1-based logical database page.
type PageNumber uint64

// RangeNumber identifies a 1-based range file within a data directory.
type RangeNumber uint64

// Range returns the range number R(n) that holds page n, and the byte
// offset O(n) of that page within the range file.
//
// R and O partition the logical page address space: no two distinct pages
// map to the same (R, O) pair.
func Range(n PageNumber, pageSize int) (RangeNumber, int64) {
	if n == 0 {
		panic("rangestore: page numbers are 1-based")
	}
	zero := uint64(n) - 1
	r := RangeNumber(zero/RangePages) + 1
	o := int64(zero%RangePages) * int64(pageSize)
	return r, o
}

// PathName returns the zero-padded 10-digit decimal name a range file is
// stored under, e.g. range number 7 becomes "0000000007".
func (r RangeNumber) PathName() string {
	return fmt.Sprintf("%010d", uint64(r))
}

// PageForOffset computes the 1-based page number that a byte offset into
// the logical main-DB file falls on: page_number = ⌊offset /
// page_size⌋ + 1.
func PageForOffset(offset int64, pageSize int) PageNumber {
	return PageNumber(offset/int64(pageSize)) + 1
}
