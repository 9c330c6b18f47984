package opsweep

import (
	"sync"
	"testing"

	"github.com/rangevfs/rangevfs/internal/rangestore"
	"github.com/rangevfs/rangevfs/internal/vfscore"
)

type recordingReporter struct {
	mu      sync.Mutex
	reports []Report
}

func (r *recordingReporter) Report(rep Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func TestSweepNowReportsEveryRegisteredInstance(t *testing.T) {
	dir := t.TempDir()
	registry := vfscore.NewRegistry(vfscore.DefaultHostVFS())
	for _, name := range []string{"alpha", "beta"} {
		if _, err := registry.Register(name, dir+"/"+name, rangestore.MinPageSize); err != nil {
			t.Fatal(err)
		}
	}
	defer registry.Unregister("alpha")
	defer registry.Unregister("beta")

	reporter := &recordingReporter{}
	sweeper := NewSweeper(registry, reporter)
	sweeper.SweepNow()

	if got := reporter.count(); got != 2 {
		t.Fatalf("reporter received %d reports, want 2", got)
	}
}
