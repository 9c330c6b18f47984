// Package vfscore implements the VFS instance, file handle, and dispatcher
// that sit between the host embedded SQL engine's pluggable VFS contract
// and the paged storage mapping layer in internal/rangestore.
package vfscore

import (
	"sync"

	"github.com/ncruces/go-sqlite3/vfs"

	"github.com/rangevfs/rangevfs/internal/rangestore"
)

// WriteHook is invoked synchronously after every successful main-DB write,
// before the write call returns to the SQL engine. The return value is
// ignored by design: cancellation after the page has already reached its
// range file is not supported.
type WriteHook func(hookContext any, length int, offset int64, buffer []byte) int

// OpenNotifier is invoked for every main-DB open, before the handle is
// handed back to the SQL engine. It is the out-of-band signal a
// replication collaborator uses to learn a connection has attached to a
// database.
type OpenNotifier func(hookContext any, name string)

// Instance bundles everything one named VFS shares across all of its open
// file handles: the range registry, the metadata file, a reference to the
// host VFS for pass-through operations, and the optional write-hook.
type Instance struct {
	Name     string
	DataDir  string
	PageSize int

	HostVFS vfs.VFS

	mu          sync.Mutex
	registry    *rangestore.Registry
	metadata    *rangestore.Metadata
	hasPageOne  bool
	writeHook   WriteHook
	openNotify  OpenNotifier
	hookContext any
}

// newInstance opens the metadata file and constructs an empty range
// registry for a freshly registered VFS.
func newInstance(name, dataDir string, pageSize int, hostVFS vfs.VFS) (*Instance, error) {
	md, err := rangestore.OpenMetadata(dataDir, pageSize)
	if err != nil {
		return nil, err
	}
	return &Instance{
		Name:     name,
		DataDir:  dataDir,
		PageSize: pageSize,
		HostVFS:  hostVFS,
		registry: rangestore.NewRegistry(dataDir, pageSize),
		metadata: md,
	}, nil
}

// SetWriteHook installs callback and its opaque context. Every subsequent
// successful main-DB write invokes it before returning.
func (inst *Instance) SetWriteHook(callback WriteHook, hookContext any) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.writeHook = callback
	inst.hookContext = hookContext
}

// SetOpenNotifier installs the out-of-band main-DB open callback.
func (inst *Instance) SetOpenNotifier(notify OpenNotifier, hookContext any) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.openNotify = notify
	if hookContext != nil {
		inst.hookContext = hookContext
	}
}

// HasPageOne reports whether page 1 has been successfully read or written
// at least once on this VFS instance.
func (inst *Instance) HasPageOne() bool {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.hasPageOne
}

// PageCount returns the instance's current logical page count.
func (inst *Instance) PageCount() uint64 {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.metadata.PageCount()
}

// FileSize returns the instance's current logical file size in bytes.
func (inst *Instance) FileSize() int64 {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.metadata.FileSize()
}

// RangeCount returns the number of range files currently open for this
// instance.
func (inst *Instance) RangeCount() int {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.registry.Count()
}

// close releases the range registry and metadata file owned by this
// instance. Called from Registry.Unregister.
func (inst *Instance) close() error {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	regErr := inst.registry.CloseAll()
	metaErr := inst.metadata.Close()
	if regErr != nil {
		return regErr
	}
	return metaErr
}
