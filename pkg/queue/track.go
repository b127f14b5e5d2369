package queue

import "time"

// Status is an identity's position relative to the region.
type Status int

const (
	StatusOutside Status = iota
	StatusInside
)

// String returns a human-readable status name.
func (s Status) String() string {
	if s == StatusInside {
		return "inside"
	}
	return "outside"
}

// TrackState is the engine's memory of one tracked identity.
// It is owned exclusively by the Store; only the engine mutates it.
type TrackState struct {
	ID     string
	Status Status

	// EnteredAt is when Status last became StatusInside.
	// Meaningless while outside.
	EnteredAt time.Time

	// LastSeenAt is the last frame timestamp at which the identity was
	// observed, inside or outside.
	LastSeenAt time.Time

	// DwellAlerted records that a dwell alert already fired for the
	// current inside interval, so it fires once, not every frame.
	DwellAlerted bool
}

// Store is the in-memory track state table for one engine.
// It is not safe for concurrent use; frames for one stream are
// processed by exactly one worker (see Engine).
type Store struct {
	tracks map[string]*TrackState
}

// NewStore creates an empty track store.
func NewStore() *Store {
	return &Store{tracks: make(map[string]*TrackState)}
}

// Get returns the state for an identity, or nil if unknown.
func (s *Store) Get(id string) *TrackState {
	return s.tracks[id]
}

// Upsert returns the state for an identity, creating it on first sight.
// A brand-new track starts outside.
func (s *Store) Upsert(id string) *TrackState {
	if ts, ok := s.tracks[id]; ok {
		return ts
	}
	ts := &TrackState{ID: id, Status: StatusOutside}
	s.tracks[id] = ts
	return ts
}

// Len returns the number of known identities.
func (s *Store) Len() int {
	return len(s.tracks)
}

// InsideCount returns how many known identities are currently inside.
func (s *Store) InsideCount() int {
	n := 0
	for _, ts := range s.tracks {
		if ts.Status == StatusInside {
			n++
		}
	}
	return n
}

// InsideIDs returns the identities currently inside the region.
func (s *Store) InsideIDs() []string {
	ids := make([]string, 0, len(s.tracks))
	for id, ts := range s.tracks {
		if ts.Status == StatusInside {
			ids = append(ids, id)
		}
	}
	return ids
}

// EvictStaleBefore removes every track last seen before cutoff and
// returns the evicted identities. A later detection with the same
// identity token starts a brand-new track.
func (s *Store) EvictStaleBefore(cutoff time.Time) []string {
	var evicted []string
	for id, ts := range s.tracks {
		if ts.LastSeenAt.Before(cutoff) {
			evicted = append(evicted, id)
			delete(s.tracks, id)
		}
	}
	return evicted
}
