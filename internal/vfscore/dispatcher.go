package vfscore

import (
	"github.com/ncruces/go-sqlite3/vfs"
)

// Dispatcher is what actually gets registered with the host engine under a
// VFS name (via vfs.Register). It implements vfs.VFS by forwarding
// path-level operations (Delete, Access, FullPathname) straight to the
// host VFS — this layer never manages paths on its own, only file
// contents — and by classifying Open calls into paged-storage or
// pass-through handles.
//
// A Dispatcher does not own an Instance directly: it holds the VFS name it
// was registered under and looks the Instance up in the process registry
// on every call. That indirection is what lets Registry.Unregister make a
// name stop working without the host engine providing an explicit
// unregister hook of its own.
type Dispatcher struct {
	vfsName string
	hostVFS vfs.VFS
	lookup  func(name string) *Instance
}

var _ vfs.VFS = (*Dispatcher)(nil)

func newDispatcher(vfsName string, hostVFS vfs.VFS, lookup func(name string) *Instance) *Dispatcher {
	return &Dispatcher{vfsName: vfsName, hostVFS: hostVFS, lookup: lookup}
}

// Open opens name through the host VFS unconditionally — the paged
// storage layer never substitutes its own bytes for what's on the host
// filesystem, it only changes how main-DB reads and writes are mapped
// onto range files. Every file is wrapped in a fileHandle: for WAL and
// rollback-journal files it forwards every call to the host file; for
// everything else ReadAt/WriteAt/Truncate/Size route through the owning
// Instance.
func (d *Dispatcher) Open(name string, flags vfs.OpenFlag) (vfs.File, vfs.OpenFlag, error) {
	hostFile, outFlags, err := d.hostVFS.Open(name, flags)
	if err != nil {
		return nil, outFlags, err
	}

	passthru := isPassthroughName(name)
	handle := &fileHandle{
		host:       hostFile,
		name:       name,
		vfsName:    d.vfsName,
		passthru:   passthru,
		procLookup: d.lookup,
	}

	if !passthru {
		if inst := d.lookup(d.vfsName); inst != nil {
			inst.mu.Lock()
			notify, hookCtx := inst.openNotify, inst.hookContext
			inst.mu.Unlock()
			if notify != nil {
				notify(hookCtx, name)
			}
		}
	}

	return handle, outFlags, nil
}

func (d *Dispatcher) Delete(name string, dirSync bool) error {
	return d.hostVFS.Delete(name, dirSync)
}

func (d *Dispatcher) Access(name string, flags vfs.AccessFlag) (bool, error) {
	return d.hostVFS.Access(name, flags)
}

func (d *Dispatcher) FullPathname(name string) (string, error) {
	return d.hostVFS.FullPathname(name)
}
