package replication

import (
	"testing"

	"github.com/rangevfs/rangevfs/internal/rangestore"
	"github.com/rangevfs/rangevfs/internal/vfscore"
)

func TestCollaboratorCorrelatesOpenAndWrite(t *testing.T) {
	dir := t.TempDir()
	reg := vfscore.NewRegistry(vfscore.DefaultHostVFS())
	inst, err := reg.Register("testvfs-replication", dir, rangestore.MinPageSize)
	if err != nil {
		t.Fatal(err)
	}
	defer reg.Unregister("testvfs-replication")

	sink := NewChanSink(4)
	c := NewCollaborator("testvfs-replication", inst, sink)

	c.onOpen(nil, "main.db")
	c.onWrite(nil, 4096, 0, make([]byte, 4096))

	open := <-sink.C
	write := <-sink.C
	if open.Kind != EventOpen || open.Name != "main.db" {
		t.Fatalf("unexpected open event: %+v", open)
	}
	if write.Kind != EventWrite || write.Correlation != open.Correlation {
		t.Fatalf("write event %+v does not correlate with open event %+v", write, open)
	}
}

func TestChanSinkDropsWhenFull(t *testing.T) {
	sink := NewChanSink(1)
	sink.Accept(Event{Kind: EventOpen})
	sink.Accept(Event{Kind: EventWrite}) // buffer full, must not block
	if len(sink.C) != 1 {
		t.Fatalf("expected buffered channel to hold exactly 1 event, got %d", len(sink.C))
	}
}

func TestEventKindString(t *testing.T) {
	if EventOpen.String() != "open" {
		t.Fatalf("EventOpen.String() = %q", EventOpen.String())
	}
	if EventWrite.String() != "write" {
		t.Fatalf("EventWrite.String() = %q", EventWrite.String())
	}
}
