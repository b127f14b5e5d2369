package queue

import "errors"

// Sentinel errors for construction-time failures.
var (
	// ErrInvalidConfig is returned for thresholds that can never be valid.
	ErrInvalidConfig = errors.New("queue: invalid config")

	// ErrNoRegion is returned when an engine is built without a region.
	ErrNoRegion = errors.New("queue: region required")
)
