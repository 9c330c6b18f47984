package vfscore

import "github.com/ncruces/go-sqlite3/vfs"

// DefaultHostVFS returns the host engine's built-in OS VFS, the thing every
// Dispatcher opens the host file beneath each handle through and forwards
// pass-through operations to. Range files are not opened through it:
// internal/rangestore opens them directly.
func DefaultHostVFS() vfs.VFS {
	return vfs.Find("")
}
