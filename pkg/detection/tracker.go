package detection

import (
	"math"

	"github.com/google/uuid"
)

// Track is a detection with a stable identity token. The same physical
// object keeps the same ID across consecutive frames; the token is
// opaque to consumers.
type Track struct {
	ID string
	Detection
}

// TrackerConfig holds identity-assignment parameters.
type TrackerConfig struct {
	// MaxDistance is the largest centroid move (pixels) between frames
	// that still counts as the same object.
	MaxDistance float64

	// MaxMisses is how many consecutive frames an object may go
	// undetected before its identity is retired.
	MaxMisses int
}

// DefaultTrackerConfig returns defaults tuned for people walking at
// typical surveillance frame rates.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		MaxDistance: 75,
		MaxMisses:   15,
	}
}

// Tracker assigns stable identities to per-frame detections by greedy
// nearest-centroid matching. It is deliberately simple: the queue
// engine only needs token stability, not trajectory estimation.
// Not safe for concurrent use; feed it from the frame loop only.
type Tracker struct {
	cfg    TrackerConfig
	tracks []*candidate
}

// candidate is a live identity between frames.
type candidate struct {
	id     string
	cx, cy float64
	misses int
}

// NewTracker creates an identity tracker.
func NewTracker(cfg TrackerConfig) *Tracker {
	if cfg.MaxDistance <= 0 {
		cfg.MaxDistance = DefaultTrackerConfig().MaxDistance
	}
	if cfg.MaxMisses <= 0 {
		cfg.MaxMisses = DefaultTrackerConfig().MaxMisses
	}
	return &Tracker{cfg: cfg}
}

// Update matches the frame's detections against live identities and
// returns one Track per detection. Unmatched detections get a fresh
// identity; identities unmatched for too many frames are retired.
func (t *Tracker) Update(dets []Detection) []Track {
	prior := t.tracks
	matched := make([]bool, len(prior))
	var fresh []*candidate
	out := make([]Track, 0, len(dets))

	for _, det := range dets {
		cx, cy := det.Center()

		// Only prior-frame identities are match targets: two
		// detections in one frame are distinct objects.
		best := -1
		bestDist := t.cfg.MaxDistance
		for i, c := range prior {
			if matched[i] {
				continue
			}
			dist := math.Hypot(cx-c.cx, cy-c.cy)
			if dist <= bestDist {
				best = i
				bestDist = dist
			}
		}

		if best >= 0 {
			c := prior[best]
			matched[best] = true
			c.cx, c.cy = cx, cy
			c.misses = 0
			out = append(out, Track{ID: c.id, Detection: det})
			continue
		}

		// New object entered the frame.
		c := &candidate{id: uuid.NewString(), cx: cx, cy: cy}
		fresh = append(fresh, c)
		out = append(out, Track{ID: c.id, Detection: det})
	}

	// Age out identities that went unmatched.
	kept := prior[:0]
	for i, c := range prior {
		if !matched[i] {
			c.misses++
			if c.misses > t.cfg.MaxMisses {
				continue
			}
		}
		kept = append(kept, c)
	}
	t.tracks = append(kept, fresh...)

	return out
}

// ActiveCount returns how many identities are currently live.
func (t *Tracker) ActiveCount() int {
	return len(t.tracks)
}
