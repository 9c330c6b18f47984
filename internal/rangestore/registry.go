package rangestore

import "fmt"

// Registry is the per-database collection of open range files belonging to
// one VFS instance. Entries are kept in insertion order, not range-number
// order, and lookups are a linear scan — the contract doesn't
// depend on ordering, and the working set of open ranges is expected to
// stay small enough that a map would be a premature optimization. There is
// no eviction policy: everything opened stays open until the owning VFS is
// unregistered.
type Registry struct {
	dir      string
	pageSize int
	ranges   []*RangeFile
}

// NewRegistry creates an empty registry rooted at dir.
func NewRegistry(dir string, pageSize int) *Registry {
	return &Registry{dir: dir, pageSize: pageSize}
}

// GetOrOpen returns the range file for number, opening and appending it on
// first reference.
func (reg *Registry) GetOrOpen(number RangeNumber) (*RangeFile, error) {
	for _, rf := range reg.ranges {
		if rf.Number() == number {
			return rf, nil
		}
	}
	rf, err := Open(reg.dir, number, reg.pageSize)
	if err != nil {
		return nil, err
	}
	reg.ranges = append(reg.ranges, rf)
	return rf, nil
}

// Lookup returns the already-open range file for number without opening
// one, or nil if it isn't open.
func (reg *Registry) Lookup(number RangeNumber) *RangeFile {
	for _, rf := range reg.ranges {
		if rf.Number() == number {
			return rf
		}
	}
	return nil
}

// Highest returns the range file with the greatest range number currently
// open, or nil if none are open.
func (reg *Registry) Highest() *RangeFile {
	var best *RangeFile
	for _, rf := range reg.ranges {
		if best == nil || rf.Number() > best.Number() {
			best = rf
		}
	}
	return best
}

// Remove deletes the underlying file for rf and drops it from the
// registry. Returns ErrNotFound if rf is not a member of this registry.
func (reg *Registry) Remove(rf *RangeFile) error {
	for i, cur := range reg.ranges {
		if cur == rf {
			if err := rf.Remove(); err != nil {
				return err
			}
			reg.ranges = append(reg.ranges[:i], reg.ranges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: range %d", ErrNotFound, rf.Number())
}

// Count returns the number of currently open range files.
func (reg *Registry) Count() int { return len(reg.ranges) }

// CloseAll closes every open range file without deleting it. Called when
// the owning VFS instance is unregistered.
func (reg *Registry) CloseAll() error {
	var firstErr error
	for _, rf := range reg.ranges {
		if err := rf.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	reg.ranges = nil
	return firstErr
}

// Truncate shrinks the logical database, walking down from lastRange (the
// range containing the current last populated page) and removing or
// trimming range files until remaining bytes have been shed from the tail
// of the address space. remaining is currentSize - newSize; the
// caller is responsible for the newSize >= currentSize no-op shortcut.
//
// At most one range file survives the walk with a partial size; everything
// above it is deleted outright.
func (reg *Registry) Truncate(lastRange RangeNumber, remaining int64) error {
	for rangeNum := lastRange; rangeNum >= 1 && remaining > 0; rangeNum-- {
		rf, err := reg.GetOrOpen(rangeNum)
		if err != nil {
			return err
		}
		sz, err := rf.Size()
		if err != nil {
			return err
		}
		if sz <= remaining {
			if err := reg.Remove(rf); err != nil {
				return err
			}
			remaining -= sz
			continue
		}
		return rf.Truncate(sz - remaining)
	}
	return nil
}
