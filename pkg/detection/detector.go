// Package detection provides object detection and identity assignment
// for video frames. The queue engine is agnostic to both: it only
// consumes the (identity, bounding box) pairs a Tracker produces.
package detection

import (
	"image"

	"gocv.io/x/gocv"
)

// Detection is one detected object in pixel coordinates.
type Detection struct {
	Box        image.Rectangle
	Confidence float32
	ClassID    int
	ClassName  string
}

// Center returns the centroid of the bounding box.
func (d Detection) Center() (x, y float64) {
	return float64(d.Box.Min.X+d.Box.Max.X) / 2, float64(d.Box.Min.Y+d.Box.Max.Y) / 2
}

// Detector is the interface for object detection backends.
type Detector interface {
	// Detect finds objects in the frame.
	Detect(img gocv.Mat) ([]Detection, error)

	// Close releases resources.
	Close() error
}
