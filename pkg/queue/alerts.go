package queue

import "time"

// DwellAlert fires once per continuous inside interval, at the first
// frame where an identity's dwell time crosses the threshold.
type DwellAlert struct {
	ID    string        `json:"id"`
	Dwell time.Duration `json:"dwell"`
	At    time.Time     `json:"at"`
}

// CongestionAlert fires every frame the inside-count exceeds the
// congestion threshold. It is a live status signal, not a one-shot
// event, so downstream consumers always see the current condition.
type CongestionAlert struct {
	InsideCount int       `json:"inside_count"`
	At          time.Time `json:"at"`
}

// Warning flags a detection (or frame) that was skipped or adjusted
// without aborting the rest of the frame.
type Warning struct {
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// FrameResult is the engine's output for one frame. It is a transient
// value: the engine keeps no reference to it after returning.
type FrameResult struct {
	At          time.Time `json:"at"`
	InsideCount int       `json:"inside_count"`
	InsideIDs   []string  `json:"inside_ids"`

	DwellAlerts      []DwellAlert      `json:"dwell_alerts,omitempty"`
	CongestionAlerts []CongestionAlert `json:"congestion_alerts,omitempty"`
	Warnings         []Warning         `json:"warnings,omitempty"`

	// TotalTracks is the number of identities currently known to the
	// engine, inside or outside.
	TotalTracks int `json:"total_tracks"`
}
