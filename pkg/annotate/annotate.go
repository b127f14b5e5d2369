// Package annotate draws queue monitoring overlays onto video frames:
// the region polygon, labelled track boxes, the live queue count, and
// alert banners. Purely presentational; the engine's results are the
// single source of truth.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/queuewatch/go-queuewatch/pkg/detection"
	"github.com/queuewatch/go-queuewatch/pkg/queue"
	"github.com/queuewatch/go-queuewatch/pkg/region"
)

// Overlay colors.
var (
	regionColor     = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	countColor      = color.RGBA{G: 255, A: 0}
	congestionColor = color.RGBA{R: 255, A: 0}
	dwellColor      = color.RGBA{R: 255, B: 255, A: 0}
)

// trackPalette colors boxes by identity so the same object keeps the
// same color across frames.
var trackPalette = []color.RGBA{
	{R: 255, G: 99, B: 71, A: 0},
	{R: 60, G: 179, B: 113, A: 0},
	{R: 65, G: 105, B: 225, A: 0},
	{R: 255, G: 165, B: 0, A: 0},
	{R: 186, G: 85, B: 211, A: 0},
	{R: 0, G: 206, B: 209, A: 0},
}

// Annotator draws overlays for one region.
type Annotator struct {
	regionPts gocv.PointsVector
	lineWidth int
	showCount bool
}

// New creates an annotator for the given region.
func New(r *region.Region) *Annotator {
	pts := make([]image.Point, 0, 4)
	for _, p := range r.Points() {
		pts = append(pts, image.Pt(int(p.X), int(p.Y)))
	}
	return &Annotator{
		regionPts: gocv.NewPointsVectorFromPoints([][]image.Point{pts}),
		lineWidth: 2,
		showCount: true,
	}
}

// HideCount suppresses the queue count overlay.
func (a *Annotator) HideCount() { a.showCount = false }

// Draw renders the frame's overlays in place.
func (a *Annotator) Draw(frame *gocv.Mat, tracks []detection.Track, res queue.FrameResult) {
	gocv.Polylines(frame, a.regionPts, true, regionColor, a.lineWidth*2)

	inside := make(map[string]bool, len(res.InsideIDs))
	for _, id := range res.InsideIDs {
		inside[id] = true
	}

	for _, tr := range tracks {
		c := colorFor(tr.ID)
		gocv.Rectangle(frame, tr.Box, c, a.lineWidth)

		label := shortID(tr.ID)
		if inside[tr.ID] {
			label += " [queued]"
		}
		gocv.PutText(frame, label,
			image.Pt(tr.Box.Min.X, tr.Box.Min.Y-6),
			gocv.FontHersheySimplex, 0.5, c, 1)
	}

	if a.showCount {
		gocv.PutText(frame, fmt.Sprintf("Queue Count: %d", res.InsideCount),
			image.Pt(10, 30), gocv.FontHersheySimplex, 0.6, countColor, 2)
	}

	y := 80
	for _, ca := range res.CongestionAlerts {
		gocv.PutText(frame, fmt.Sprintf("CONGESTION ALERT! %d in queue", ca.InsideCount),
			image.Pt(10, y), gocv.FontHersheyDuplex, 0.6, congestionColor, 2)
		y += 30
	}
	for _, da := range res.DwellAlerts {
		gocv.PutText(frame, fmt.Sprintf("TIME ALERT: %s waiting %s", shortID(da.ID), da.Dwell.Round(time.Second)),
			image.Pt(10, y), gocv.FontHersheyDuplex, 0.6, dwellColor, 2)
		y += 30
	}
}

// Close releases the region point vector.
func (a *Annotator) Close() {
	a.regionPts.Close()
}

// colorFor picks a stable palette color for an identity.
func colorFor(id string) color.RGBA {
	h := 0
	for _, b := range id {
		h = h*31 + int(b)
	}
	if h < 0 {
		h = -h
	}
	return trackPalette[h%len(trackPalette)]
}

// shortID truncates a UUID token for on-frame labels.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
