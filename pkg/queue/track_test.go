package queue

import (
	"testing"
	"time"
)

func TestStore_UpsertCreatesOutside(t *testing.T) {
	s := NewStore()

	ts := s.Upsert("a")
	if ts.Status != StatusOutside {
		t.Errorf("new track status: got %v, want outside", ts.Status)
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}

	// Second upsert returns the same state, not a fresh one.
	ts.Status = StatusInside
	if again := s.Upsert("a"); again.Status != StatusInside {
		t.Errorf("Upsert did not return existing track")
	}
}

func TestStore_InsideCount(t *testing.T) {
	s := NewStore()
	s.Upsert("a").Status = StatusInside
	s.Upsert("b").Status = StatusInside
	s.Upsert("c") // outside

	if got := s.InsideCount(); got != 2 {
		t.Errorf("InsideCount: got %d, want 2", got)
	}
	if got := len(s.InsideIDs()); got != 2 {
		t.Errorf("InsideIDs: got %d ids, want 2", got)
	}
}

func TestStore_EvictStaleBefore(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := NewStore()

	old := s.Upsert("old")
	old.LastSeenAt = t0

	fresh := s.Upsert("fresh")
	fresh.LastSeenAt = t0.Add(10 * time.Second)

	evicted := s.EvictStaleBefore(t0.Add(5 * time.Second))
	if len(evicted) != 1 || evicted[0] != "old" {
		t.Errorf("evicted: got %v, want [old]", evicted)
	}
	if s.Get("old") != nil {
		t.Errorf("stale track still present after eviction")
	}
	if s.Get("fresh") == nil {
		t.Errorf("fresh track was evicted")
	}
}

func TestStore_EvictBoundaryIsExclusive(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := NewStore()
	s.Upsert("edge").LastSeenAt = t0

	// Last seen exactly at the cutoff survives.
	if evicted := s.EvictStaleBefore(t0); len(evicted) != 0 {
		t.Errorf("track seen at cutoff was evicted: %v", evicted)
	}
}
