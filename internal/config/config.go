// Package config loads the YAML description of which VFS instances a
// rangevfs process should register at startup: their names, data
// directories and page sizes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rangevfs/rangevfs/internal/rangestore"
)

// VFSConfig describes one named VFS instance to register.
type VFSConfig struct {
	Name     string `yaml:"name"`
	DataDir  string `yaml:"data_dir"`
	PageSize int    `yaml:"page_size"`
}

// Config is the top-level document: a list of VFS instances plus process-
// wide defaults applied when an entry omits a field.
type Config struct {
	DefaultPageSize int         `yaml:"default_page_size"`
	VFS             []VFSConfig `yaml:"vfs"`
}

// Load reads and parses the config file at path, applying defaults and
// validating every entry.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &Config{DefaultPageSize: rangestore.MinPageSize}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	for i := range cfg.VFS {
		v := &cfg.VFS[i]
		if v.PageSize == 0 {
			v.PageSize = cfg.DefaultPageSize
		}
		if err := v.validate(); err != nil {
			return nil, fmt.Errorf("config: entry %d: %w", i, err)
		}
	}
	return cfg, nil
}

func (v VFSConfig) validate() error {
	if v.Name == "" {
		return fmt.Errorf("vfs entry missing name")
	}
	if v.DataDir == "" {
		return fmt.Errorf("vfs %q missing data_dir", v.Name)
	}
	if v.PageSize < rangestore.MinPageSize || v.PageSize%rangestore.MinPageSize != 0 {
		return fmt.Errorf("vfs %q page_size %d must be a multiple of %d", v.Name, v.PageSize, rangestore.MinPageSize)
	}
	return nil
}
