// Package replication is a reference write-hook collaborator: it turns the
// vfscore write hook and open notifier into a stream of tagged events an
// external replica could consume, without prescribing any particular
// transport. Production use is expected to swap Sink for something that
// actually ships bytes off-box; this package only supplies the plumbing
// and a couple of in-process sinks useful for tests and local tools.
package replication

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/rangevfs/rangevfs/internal/vfscore"
)

// Event is one main-DB write or open, tagged with a correlation ID so a
// downstream consumer can match writes to the most recent main-DB open of
// the same VFS even if they arrive out of order.
type Event struct {
	Correlation uuid.UUID
	VFSName     string
	Kind        EventKind
	Name        string // file name, for Open events
	Offset      int64  // byte offset, for Write events
	Length      int    // byte length, for Write events
}

type EventKind int

const (
	EventOpen EventKind = iota
	EventWrite
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Sink receives replication events. Implementations must not block the
// calling write for long: the hook runs synchronously inside the SQL
// engine's write path.
type Sink interface {
	Accept(Event)
}

// Collaborator binds one VFS instance's write hook and open notifier to a
// Sink. The hook signature carries no file name, so correlation
// works at VFS granularity: each main-DB open mints a fresh ID that tags
// every write observed until the next open.
type Collaborator struct {
	vfsName string
	sink    Sink

	mu      sync.Mutex
	current uuid.UUID
}

// NewCollaborator wires a Collaborator's hooks into inst.
func NewCollaborator(vfsName string, inst *vfscore.Instance, sink Sink) *Collaborator {
	c := &Collaborator{vfsName: vfsName, sink: sink, current: uuid.New()}
	inst.SetOpenNotifier(c.onOpen, nil)
	inst.SetWriteHook(c.onWrite, nil)
	return c
}

func (c *Collaborator) onOpen(_ any, name string) {
	id := uuid.New()
	c.mu.Lock()
	c.current = id
	c.mu.Unlock()
	c.sink.Accept(Event{Correlation: id, VFSName: c.vfsName, Kind: EventOpen, Name: name})
}

func (c *Collaborator) onWrite(_ any, length int, offset int64, _ []byte) int {
	c.mu.Lock()
	id := c.current
	c.mu.Unlock()
	c.sink.Accept(Event{Correlation: id, VFSName: c.vfsName, Kind: EventWrite, Offset: offset, Length: length})
	return 0
}

// LogSink is a Sink that writes every event through the standard logger.
// Useful for local debugging and as the default in cmd/rangevfsctl.
type LogSink struct {
	Logger *log.Logger
}

func (s *LogSink) Accept(e Event) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	switch e.Kind {
	case EventOpen:
		logger.Printf("replication: vfs=%s open name=%s corr=%s", e.VFSName, e.Name, e.Correlation)
	case EventWrite:
		logger.Printf("replication: vfs=%s write off=%d len=%d corr=%s", e.VFSName, e.Offset, e.Length, e.Correlation)
	}
}

// ChanSink fans events out over a channel for tests or in-process
// consumers that want to assert on the event stream directly.
type ChanSink struct {
	C chan Event
}

// NewChanSink creates a ChanSink with the given buffer size.
func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{C: make(chan Event, buffer)}
}

func (s *ChanSink) Accept(e Event) {
	select {
	case s.C <- e:
	default:
		// Drop rather than block the write path when nobody is draining;
		// replication is best-effort by design.
	}
}
