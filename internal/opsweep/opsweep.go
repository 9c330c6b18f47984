// Package opsweep periodically reports the page count, logical file size
// and has_page_one flag of every registered VFS instance. It is strictly
// observability: there is no
// eviction policy anywhere in this module, so the
// sweep only counts and logs, it never closes or removes a range file a
// connection might still be using.
package opsweep

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"

	"github.com/rangevfs/rangevfs/internal/vfscore"
)

// Report summarizes one VFS instance at sweep time.
type Report struct {
	VFSName    string
	PageCount  uint64
	FileSize   int64
	HasPageOne bool
	SweptAt    time.Time
}

// Reporter receives a Report after every sweep. Implementations must
// return quickly: the sweep runs on the cron goroutine.
type Reporter interface {
	Report(Report)
}

// LogReporter writes each Report through the standard logger.
type LogReporter struct {
	Logger *log.Logger
}

func (r *LogReporter) Report(rep Report) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("opsweep: vfs=%s pages=%d size=%s has_page_one=%t",
		rep.VFSName, rep.PageCount, humanize.Bytes(uint64(rep.FileSize)), rep.HasPageOne)
}

// Sweeper schedules a recurring inspection of every VFS instance known to
// a Registry and hands each one's snapshot to a Reporter.
type Sweeper struct {
	registry *vfscore.Registry
	reporter Reporter
	cron     *cron.Cron

	mu      sync.Mutex
	entryID cron.EntryID
}

// NewSweeper builds a Sweeper that will run against every name currently
// or later registered in registry.
func NewSweeper(registry *vfscore.Registry, reporter Reporter) *Sweeper {
	return &Sweeper{
		registry: registry,
		reporter: reporter,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start schedules the sweep to run on spec (a standard 6-field cron
// expression, e.g. "0 */5 * * * *" for every five minutes) and starts the
// cron scheduler.
func (s *Sweeper) Start(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, s.sweepOnce)
	if err != nil {
		return fmt.Errorf("opsweep: schedule %q: %w", spec, err)
	}
	s.entryID = id
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for any in-flight sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// SweepNow runs one sweep synchronously, outside the cron schedule.
// Useful for tests and for a manual trigger from an operator tool.
func (s *Sweeper) SweepNow() {
	s.sweepOnce()
}

func (s *Sweeper) sweepOnce() {
	now := time.Now()
	for _, name := range s.registry.Names() {
		inst := s.registry.Lookup(name)
		if inst == nil {
			continue
		}
		s.reporter.Report(Report{
			VFSName:    name,
			PageCount:  inst.PageCount(),
			FileSize:   inst.FileSize(),
			HasPageOne: inst.HasPageOne(),
			SweptAt:    now,
		})
	}
}
