package indexdb

import (
	"path/filepath"
	"testing"
	"time"

	"brickton.sim/internal/sim/npc"
	"brickton.sim/internal/sim/voxel"
)

func openTestIndex(t *testing.T) *SQLiteIndex {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "incidents.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestIndex_RecordAndCount(t *testing.T) {
	s := openTestIndex(t)

	s.Record(npc.Incident{Tick: 1, Kind: npc.IncTheft, Agent: "g-1", Detail: "CASH"})
	s.Record(npc.Incident{Tick: 2, Kind: npc.IncTheft, Agent: "g-2", Detail: "TOOLS"})
	s.Record(npc.Incident{Tick: 3, Kind: npc.IncArrest, Agent: "o-1",
		Pos: voxel.Vec3{X: 1, Y: 60, Z: 2}})

	// The writer is asynchronous; poll briefly for the rows to land.
	deadline := time.Now().Add(5 * time.Second)
	for {
		n, err := s.CountByKind(npc.IncTheft)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("writer never caught up, theft count %d", n)
		}
		time.Sleep(10 * time.Millisecond)
	}

	n, err := s.CountByKind(npc.IncArrest)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("arrest count %d, want 1", n)
	}
	if s.Dropped() != 0 {
		t.Fatalf("nothing should be dropped under light load")
	}
}

func TestIndex_RecordAfterCloseIsIgnored(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "incidents.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Must not panic on the closed channel.
	s.Record(npc.Incident{Tick: 1, Kind: npc.IncTheft})
	if err := s.Close(); err != nil {
		t.Fatalf("double close: %v", err)
	}
}

func TestIndex_EmptyPathRejected(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("empty path should be rejected")
	}
}
