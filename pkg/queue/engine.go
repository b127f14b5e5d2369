// Package queue implements the occupancy and dwell-time alerting engine.
//
// One Engine owns one region and one track store and consumes one frame
// of detections at a time, in timestamp order. It classifies each
// detection as inside or outside the region, tracks per-identity dwell
// intervals across frames, and raises dwell and congestion alerts.
//
// Frames for one stream must be fed by exactly one goroutine: track
// transitions are order-dependent, so an out-of-order frame could
// fabricate a false exit/re-entry. Run independent streams on separate
// Engine instances; they share nothing.
package queue

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/queuewatch/go-queuewatch/pkg/region"
)

// Detection is one tracked object observed in the current frame: an
// opaque identity token stable across frames, plus its bounding box in
// pixel coordinates. How identities are assigned is the upstream
// tracker's business.
type Detection struct {
	ID             string
	X1, Y1, X2, Y2 float64
}

// Centroid returns the center of the bounding box, the representative
// point used for the containment test.
func (d Detection) Centroid() region.Point {
	return region.Point{X: (d.X1 + d.X2) / 2, Y: (d.Y1 + d.Y2) / 2}
}

func (d Detection) valid() bool {
	for _, v := range []float64{d.X1, d.Y1, d.X2, d.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return d.ID != ""
}

// Engine processes frames for a single stream/region pair.
type Engine struct {
	region *region.Region
	cfg    Config
	store  *Store
	logger *slog.Logger

	lastFrameAt time.Time
	hasFrame    bool
}

// NewEngine builds an engine for one stream. The region and config are
// validated here; the engine never starts in a known-bad configuration.
func NewEngine(r *region.Region, cfg Config, logger *slog.Logger) (*Engine, error) {
	if r == nil {
		return nil, ErrNoRegion
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		region: r,
		cfg:    cfg,
		store:  NewStore(),
		logger: logger.With("component", "queue.engine"),
	}, nil
}

// Store exposes the track store for inspection (tests, dashboards).
// Callers must not mutate it.
func (e *Engine) Store() *Store {
	return e.store
}

// ProcessFrame advances the engine by one frame. now is the frame
// timestamp supplied by the caller and must be monotonic; a regressing
// timestamp is clamped to the previous frame's and flagged rather than
// corrupting dwell durations. Malformed detections are skipped and
// flagged without affecting the rest of the frame.
func (e *Engine) ProcessFrame(now time.Time, dets []Detection) FrameResult {
	res := FrameResult{At: now}

	// Caller contract violation: best-effort monotonic clamp.
	if e.hasFrame && now.Before(e.lastFrameAt) {
		res.Warnings = append(res.Warnings, Warning{
			Reason: fmt.Sprintf("non-monotonic frame timestamp %v before %v, clamped", now, e.lastFrameAt),
		})
		now = e.lastFrameAt
		res.At = now
	}
	e.lastFrameAt = now
	e.hasFrame = true

	// Staleness eviction first, so a recycled identity token from a
	// long-gone track starts fresh instead of inheriting its dwell.
	if evicted := e.store.EvictStaleBefore(now.Add(-e.cfg.StalenessWindow)); len(evicted) > 0 {
		e.logger.Debug("evicted stale tracks", "count", len(evicted))
	}

	seen := make(map[string]bool, len(dets))
	for _, d := range dets {
		if !d.valid() {
			res.Warnings = append(res.Warnings, Warning{ID: d.ID, Reason: "malformed detection"})
			continue
		}
		if seen[d.ID] {
			res.Warnings = append(res.Warnings, Warning{ID: d.ID, Reason: "duplicate identity in frame"})
			continue
		}
		seen[d.ID] = true

		if alert := e.observe(now, d); alert != nil {
			res.DwellAlerts = append(res.DwellAlerts, *alert)
		}
	}

	res.InsideCount = e.store.InsideCount()
	res.InsideIDs = e.store.InsideIDs()
	sort.Strings(res.InsideIDs)
	res.TotalTracks = e.store.Len()

	// Congestion is level-triggered: one alert per frame while the
	// condition holds, so operators always have a live status.
	if res.InsideCount > e.cfg.CongestionThreshold {
		res.CongestionAlerts = append(res.CongestionAlerts, CongestionAlert{
			InsideCount: res.InsideCount,
			At:          now,
		})
	}

	return res
}

// observe applies one detection to its track state and returns a dwell
// alert if this frame crossed the threshold.
func (e *Engine) observe(now time.Time, d Detection) *DwellAlert {
	inside := e.region.Contains(d.Centroid())
	ts := e.store.Upsert(d.ID)

	switch {
	case inside && ts.Status == StatusOutside:
		ts.Status = StatusInside
		ts.EnteredAt = now
		ts.DwellAlerted = false

	case !inside && ts.Status == StatusInside:
		ts.Status = StatusOutside
		ts.EnteredAt = time.Time{}
		ts.DwellAlerted = false
	}
	ts.LastSeenAt = now

	if ts.Status != StatusInside || ts.DwellAlerted {
		return nil
	}

	dwell := now.Sub(ts.EnteredAt)
	if dwell < 0 {
		// Cannot happen with the monotonic clamp above, but a negative
		// dwell must never escape the engine.
		dwell = 0
	}
	if dwell >= e.cfg.DwellThreshold {
		ts.DwellAlerted = true
		e.logger.Info("dwell alert", "id", ts.ID, "dwell", dwell)
		return &DwellAlert{ID: ts.ID, Dwell: dwell, At: now}
	}
	return nil
}
