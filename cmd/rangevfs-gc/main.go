// Command rangevfs-gc runs a single opsweep report against a registered
// set of VFS instances and exits. It is named "gc" for the operator's
// muscle memory, not because it collects anything — this module has no
// eviction policy, so the command only reports.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/rangevfs/rangevfs/internal/config"
	"github.com/rangevfs/rangevfs/internal/opsweep"
	"github.com/rangevfs/rangevfs/internal/vfscore"
)

func main() {
	configPath := flag.String("config", "rangevfs.yaml", "path to VFS registration config")
	flag.Parse()

	logger := log.New(os.Stdout, "", 0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	registry := vfscore.NewRegistry(vfscore.DefaultHostVFS())
	for _, v := range cfg.VFS {
		if _, err := registry.Register(v.Name, v.DataDir, v.PageSize); err != nil {
			logger.Fatalf("register vfs %q: %v", v.Name, err)
		}
	}

	sweeper := opsweep.NewSweeper(registry, &opsweep.LogReporter{Logger: logger})
	sweeper.SweepNow()
}
