package vfscore

import (
	"strings"

	"github.com/ncruces/go-sqlite3"
	"github.com/ncruces/go-sqlite3/vfs"

	"github.com/rangevfs/rangevfs/internal/rangestore"
)

// isPassthroughName reports whether name names a WAL or rollback-journal
// file, which the dispatcher forwards verbatim to the host VFS rather than
// mapping through range files.
func isPassthroughName(name string) bool {
	return strings.HasSuffix(name, "-wal") || strings.HasSuffix(name, "-journal")
}

// fileHandle is the vfs.File the dispatcher hands back from Open. It wraps
// the real host file (always opened) and, for main-DB handles,
// routes Read/Write/Truncate/Size through the owning Instance's range
// registry and metadata file. Locking, sector size, device characteristics
// and shared-memory calls always delegate straight to the host file: none
// of those touch range files.
type fileHandle struct {
	host       vfs.File
	name       string
	vfsName    string
	passthru   bool
	procLookup func(name string) *Instance
}

var (
	_ vfs.File             = (*fileHandle)(nil)
	_ vfs.FileLockState    = (*fileHandle)(nil)
	_ vfs.FileSizeHint     = (*fileHandle)(nil)
	_ vfs.FileSharedMemory = (*fileHandle)(nil)
)

func (h *fileHandle) instance() (*Instance, error) {
	inst := h.procLookup(h.vfsName)
	if inst == nil {
		return nil, errNoInstance
	}
	return inst, nil
}

func (h *fileHandle) Close() error {
	return h.host.Close()
}

func (h *fileHandle) ReadAt(p []byte, off int64) (int, error) {
	if h.passthru {
		return h.host.ReadAt(p, off)
	}
	inst, err := h.instance()
	if err != nil {
		return 0, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	page := rangestore.PageForOffset(off, inst.PageSize)
	rangeNum, _ := rangestore.Range(page, inst.PageSize)
	rf, err := inst.registry.GetOrOpen(rangeNum)
	if err != nil {
		return 0, mapStorageErr(err, sqlite3.IOERR_READ)
	}
	n, err := rf.ReadAt(p, len(p), page)
	if page == 1 && n > 0 {
		inst.hasPageOne = true
	}
	return n, mapStorageErr(err, sqlite3.IOERR_READ)
}

func (h *fileHandle) WriteAt(p []byte, off int64) (int, error) {
	if h.passthru {
		return h.host.WriteAt(p, off)
	}
	inst, err := h.instance()
	if err != nil {
		return 0, err
	}
	inst.mu.Lock()
	page := rangestore.PageForOffset(off, inst.PageSize)
	rangeNum, _ := rangestore.Range(page, inst.PageSize)
	rf, err := inst.registry.GetOrOpen(rangeNum)
	if err != nil {
		inst.mu.Unlock()
		return 0, mapStorageErr(err, sqlite3.IOERR_WRITE)
	}
	if err := rf.WriteAt(p, page); err != nil {
		inst.mu.Unlock()
		return 0, mapStorageErr(err, sqlite3.IOERR_WRITE)
	}
	if page == 1 {
		inst.hasPageOne = true
	}
	if uint64(page) > inst.metadata.PageCount() {
		if err := inst.metadata.AddPage(); err != nil {
			inst.mu.Unlock()
			return 0, mapStorageErr(err, sqlite3.IOERR_WRITE)
		}
	}
	hook, hookCtx := inst.writeHook, inst.hookContext
	inst.mu.Unlock()

	if hook != nil {
		_ = hook(hookCtx, len(p), off, p)
	}
	return len(p), nil
}

func (h *fileHandle) Truncate(size int64) error {
	if h.passthru {
		return h.host.Truncate(size)
	}
	inst, err := h.instance()
	if err != nil {
		return err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	current := inst.metadata.FileSize()
	if size >= current {
		return nil
	}
	if inst.metadata.PageCount() == 0 {
		return nil
	}
	lastRange, _ := rangestore.Range(rangestore.PageNumber(inst.metadata.PageCount()), inst.PageSize)
	remaining := current - size
	if err := inst.registry.Truncate(lastRange, remaining); err != nil {
		return mapStorageErr(err, sqlite3.IOERR)
	}
	return nil
}

func (h *fileHandle) Sync(flag vfs.SyncFlag) error {
	if h.passthru {
		return h.host.Sync(flag)
	}
	// Every main-DB write already landed in its range file via WriteAt, and
	// the host file beneath a main-DB handle holds none of the database's
	// pages, so a main-DB Sync is a no-op.
	return nil
}

func (h *fileHandle) Size() (int64, error) {
	if h.passthru {
		return h.host.Size()
	}
	inst, err := h.instance()
	if err != nil {
		return 0, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.metadata.FileSize(), nil
}

func (h *fileHandle) Lock(lock vfs.LockLevel) error           { return h.host.Lock(lock) }
func (h *fileHandle) Unlock(lock vfs.LockLevel) error         { return h.host.Unlock(lock) }
func (h *fileHandle) CheckReservedLock() (bool, error)        { return h.host.CheckReservedLock() }
func (h *fileHandle) SectorSize() int                         { return h.host.SectorSize() }
func (h *fileHandle) DeviceCharacteristics() vfs.DeviceCharacteristic {
	return h.host.DeviceCharacteristics()
}

// LockState, SizeHint and the shared-memory methods are optional
// interfaces on top of vfs.File. The host file is the only thing that
// actually owns OS-level lock state or a -shm mapping, so every main-DB
// and journal handle alike forwards to it when it implements them.

func (h *fileHandle) LockState() vfs.LockLevel {
	if ls, ok := h.host.(vfs.FileLockState); ok {
		return ls.LockState()
	}
	return vfs.LOCK_NONE
}

func (h *fileHandle) SizeHint(size int64) error {
	if sh, ok := h.host.(vfs.FileSizeHint); ok {
		return sh.SizeHint(size)
	}
	return nil
}

func (h *fileHandle) ShmMap(index int, size int, extend bool) ([]byte, error) {
	if sm, ok := h.host.(vfs.FileSharedMemory); ok {
		return sm.ShmMap(index, size, extend)
	}
	return nil, sqlite3.IOERR_SHMMAP
}

func (h *fileHandle) ShmLock(offset, n int, flags vfs.ShmFlag) error {
	if sm, ok := h.host.(vfs.FileSharedMemory); ok {
		return sm.ShmLock(offset, n, flags)
	}
	return sqlite3.IOERR_SHMLOCK
}

func (h *fileHandle) ShmUnmap(delete bool) {
	if sm, ok := h.host.(vfs.FileSharedMemory); ok {
		sm.ShmUnmap(delete)
	}
}

func (h *fileHandle) ShmBarrier() {
	if sm, ok := h.host.(vfs.FileSharedMemory); ok {
		sm.ShmBarrier()
	}
}
