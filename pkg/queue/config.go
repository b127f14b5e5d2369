package queue

import (
	"fmt"
	"time"
)

// Config holds the tunable parameters for one queue engine.
type Config struct {
	// CongestionThreshold is the inside-count above which a congestion
	// alert is raised. The alert is level-triggered: it fires every
	// frame the condition holds.
	CongestionThreshold int

	// DwellThreshold is how long an identity may stay inside the region
	// before a dwell alert fires. The alert is edge-triggered: once per
	// continuous inside interval.
	DwellThreshold time.Duration

	// StalenessWindow is how long an identity may go unobserved before
	// its state is evicted. Trackers stop reporting objects without an
	// explicit "left the scene" signal, so absence is the only leave
	// indicator. Keep this above a few frame periods to tolerate
	// transient detection dropout.
	StalenessWindow time.Duration
}

// DefaultConfig returns the recommended configuration for queue
// monitoring at typical 25-30fps streams.
func DefaultConfig() Config {
	return Config{
		CongestionThreshold: 3,
		DwellThreshold:      5 * time.Second,
		StalenessWindow:     2 * time.Second,
	}
}

// Validate checks the configuration. Negative values never make sense
// and are rejected up front so the engine cannot start misconfigured.
func (c Config) Validate() error {
	if c.CongestionThreshold < 0 {
		return fmt.Errorf("%w: congestion threshold %d is negative", ErrInvalidConfig, c.CongestionThreshold)
	}
	if c.DwellThreshold < 0 {
		return fmt.Errorf("%w: dwell threshold %v is negative", ErrInvalidConfig, c.DwellThreshold)
	}
	if c.StalenessWindow < 0 {
		return fmt.Errorf("%w: staleness window %v is negative", ErrInvalidConfig, c.StalenessWindow)
	}
	return nil
}
