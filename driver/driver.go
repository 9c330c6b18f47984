// Package driver is a thin convenience layer over database/sql for
// opening a connection against one of this module's registered VFS
// instances, mirroring the vfs=name query parameter the host engine's
// driver already understands.
package driver

import (
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/rangevfs/rangevfs/internal/vfscore"
)

// DriverName is the registered database/sql driver name.
const DriverName = "sqlite3"

// Open opens a *sql.DB against dbName using the named VFS instance that
// registry already holds (it must have been registered first via
// registry.Register). The filename seen by SQLite — and therefore by the
// paged storage layer — is dbName itself; only its -wal/-journal
// siblings are exempt from range mapping.
func Open(registry *vfscore.Registry, vfsName, dbName string) (*sql.DB, error) {
	if registry.Lookup(vfsName) == nil {
		return nil, fmt.Errorf("driver: vfs %q is not registered", vfsName)
	}
	dsn := fmt.Sprintf("file:%s?vfs=%s", dbName, vfsName)
	return sql.Open(DriverName, dsn)
}
