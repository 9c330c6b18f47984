package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rangevfs.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaultPageSize(t *testing.T) {
	path := writeConfig(t, `
default_page_size: 4096
vfs:
  - name: primary
    data_dir: /var/lib/rangevfs/primary
  - name: secondary
    data_dir: /var/lib/rangevfs/secondary
    page_size: 8192
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.VFS) != 2 {
		t.Fatalf("len(cfg.VFS) = %d, want 2", len(cfg.VFS))
	}
	if cfg.VFS[0].PageSize != 4096 {
		t.Fatalf("primary page size = %d, want 4096 (default)", cfg.VFS[0].PageSize)
	}
	if cfg.VFS[1].PageSize != 8192 {
		t.Fatalf("secondary page size = %d, want 8192 (explicit)", cfg.VFS[1].PageSize)
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	path := writeConfig(t, `
vfs:
  - data_dir: /var/lib/rangevfs/x
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a VFS entry with no name")
	}
}

func TestLoadRejectsBadPageSize(t *testing.T) {
	path := writeConfig(t, `
vfs:
  - name: primary
    data_dir: /var/lib/rangevfs/primary
    page_size: 100
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a page size that isn't a multiple of the minimum")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
