// Package region provides polygonal region-of-interest containment tests.
//
// A Region is built once at startup from an ordered point list (typically
// four corners picked by an operator) and is immutable afterwards, so it
// is safe to share across goroutines.
package region

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRegion is returned when a region cannot be constructed.
var ErrInvalidRegion = errors.New("region: invalid region")

// Point is a pixel coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Region is a simple closed polygon in pixel space.
type Region struct {
	points []Point
}

// NewRegion builds a region from an ordered vertex list.
// At least 3 vertices are required and they must enclose a non-zero
// area; a degenerate (collinear) polygon is a configuration error.
func NewRegion(points []Point) (*Region, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 points, got %d", ErrInvalidRegion, len(points))
	}
	for i, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return nil, fmt.Errorf("%w: point %d is not finite", ErrInvalidRegion, i)
		}
	}
	if area(points) == 0 {
		return nil, fmt.Errorf("%w: polygon has zero area", ErrInvalidRegion)
	}

	pts := make([]Point, len(points))
	copy(pts, points)
	return &Region{points: pts}, nil
}

// Points returns a copy of the polygon vertices in order.
func (r *Region) Points() []Point {
	pts := make([]Point, len(r.points))
	copy(pts, r.points)
	return pts
}

// Contains reports whether p lies inside the polygon using the even-odd
// ray casting rule. Points exactly on an edge count as inside, matching
// how the region behaved in the reference pipeline.
func (r *Region) Contains(p Point) bool {
	n := len(r.points)
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := r.points[i], r.points[j]

		if onSegment(p, a, b) {
			return true
		}

		// Ray cast toward +X. The half-open comparison on Y avoids
		// double-counting vertices shared by two edges.
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// area returns the unsigned polygon area via the shoelace formula.
func area(pts []Point) float64 {
	sum := 0.0
	j := len(pts) - 1
	for i := 0; i < len(pts); i++ {
		sum += pts[j].X*pts[i].Y - pts[i].X*pts[j].Y
		j = i
	}
	return math.Abs(sum) / 2
}

// onSegment reports whether p lies on the segment a-b.
func onSegment(p, a, b Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > 1e-9 {
		return false
	}
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
