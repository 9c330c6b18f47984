package vfscore

import (
	"fmt"
	"sync"

	"github.com/ncruces/go-sqlite3/vfs"

	"github.com/rangevfs/rangevfs/internal/rangestore"
)

// Registry is the process-wide table of named VFS instances.
// Each registered name owns exactly one Instance and one Dispatcher; file
// handles hold the name, not a pointer to the Instance, and resolve it
// through Lookup on every operation. Unregister clears the table entry so
// that resolution starts failing with errNoInstance — the host engine
// itself has no hook to un-register a name, so a Dispatcher left behind
// after Unregister simply finds nothing to dispatch to.
type Registry struct {
	mu        sync.Mutex
	instances []*Instance
	hostVFS   vfs.VFS
}

// NewRegistry constructs a process-wide registry that opens every main-DB
// handle through hostVFS.
func NewRegistry(hostVFS vfs.VFS) *Registry {
	return &Registry{hostVFS: hostVFS}
}

// Register creates a new named VFS instance rooted at dataDir, registers
// its dispatcher with the host engine under name, and returns the
// Instance so the caller can attach a write hook or open notifier.
// Registering an already-registered name returns an error: this layer
// does not dedupe, matching the host engine's own name table.
func (r *Registry) Register(name, dataDir string, pageSize int) (*Instance, error) {
	if name == "" {
		return nil, fmt.Errorf("vfscore: vfs name must not be empty")
	}
	if dataDir == "" {
		return nil, fmt.Errorf("vfscore: vfs %q: data_dir must not be empty", name)
	}
	if pageSize < rangestore.MinPageSize {
		return nil, fmt.Errorf("vfscore: vfs %q: page_size %d must be >= %d", name, pageSize, rangestore.MinPageSize)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, inst := range r.instances {
		if inst.Name == name {
			return nil, fmt.Errorf("vfscore: vfs %q already registered", name)
		}
	}

	inst, err := newInstance(name, dataDir, pageSize, r.hostVFS)
	if err != nil {
		return nil, err
	}

	dispatcher := newDispatcher(name, r.hostVFS, r.Lookup)
	vfs.Register(name, dispatcher)

	r.instances = append(r.instances, inst)
	return inst, nil
}

// Unregister releases the named instance's range registry and metadata
// file and removes it from the table. Any file handle still holding that
// name will fail its next operation with errNoInstance.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, inst := range r.instances {
		if inst.Name == name {
			err := inst.close()
			r.instances = append(r.instances[:i], r.instances[i+1:]...)
			return err
		}
	}
	return fmt.Errorf("vfscore: vfs %q not registered", name)
}

// Lookup returns the instance registered under name, or nil.
func (r *Registry) Lookup(name string) *Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupLocked(name)
}

func (r *Registry) lookupLocked(name string) *Instance {
	for _, inst := range r.instances {
		if inst.Name == name {
			return inst
		}
	}
	return nil
}

// Names returns the currently registered VFS names, in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.instances))
	for i, inst := range r.instances {
		names[i] = inst.Name
	}
	return names
}
