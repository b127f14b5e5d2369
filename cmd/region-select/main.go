// region-select - pick the queue region for a video source
//
// Grabs a reference frame from the video and opens it in a window.
// Click the four region corners in order (top-left, top-right,
// bottom-right, bottom-left), then press 's' to save the region JSON
// consumed by cmd/queuewatch. Press 'r' to start over, 'q' to quit
// without saving.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"gocv.io/x/gocv"

	"github.com/queuewatch/go-queuewatch/internal/config"
	"github.com/queuewatch/go-queuewatch/pkg/region"
	"github.com/queuewatch/go-queuewatch/pkg/video"
)

// OpenCV mouse event code for a left button press.
const leftButtonDown = 1

func main() {
	videoSrc := flag.String("video", "", "Video file, URL, or camera index")
	out := flag.String("out", "region.json", "Output region JSON path")
	flag.Parse()

	if *videoSrc == "" {
		fmt.Fprintln(os.Stderr, "Usage: region-select -video <source> [-out region.json]")
		os.Exit(1)
	}

	src, err := video.Open(*videoSrc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open video: %v\n", err)
		os.Exit(1)
	}

	reference := gocv.NewMat()
	defer reference.Close()
	if !src.Read(&reference) || reference.Empty() {
		src.Close()
		fmt.Fprintln(os.Stderr, "could not read a reference frame")
		os.Exit(1)
	}
	src.Close()

	window := gocv.NewWindow("Queue Region Selector")
	defer window.Close()

	var points []region.Point
	window.SetMouseHandler(func(event int, x int, y int, flags int, userdata interface{}) {
		if event == leftButtonDown && len(points) < 4 {
			points = append(points, region.Point{X: float64(x), Y: float64(y)})
			fmt.Printf("Point %d selected: (%d, %d)\n", len(points), x, y)
			if len(points) == 4 {
				fmt.Println("Four points selected. Press 's' to save.")
			}
		}
	}, nil)

	fmt.Println("Click 4 points: top-left, top-right, bottom-right, bottom-left.")
	fmt.Println("Keys: s = save, r = reset, q = quit")

	display := gocv.NewMat()
	defer display.Close()

	for {
		reference.CopyTo(&display)
		drawSelection(&display, points)
		window.IMShow(display)

		switch window.WaitKey(30) {
		case 'q':
			return

		case 'r':
			points = points[:0]
			fmt.Println("Selection reset.")

		case 's':
			if err := save(*out, points); err != nil {
				fmt.Fprintf(os.Stderr, "save: %v\n", err)
				continue
			}
			fmt.Printf("Queue region points: %v\n", points)
			fmt.Printf("Saved to %s\n", *out)
			return
		}
	}
}

// drawSelection marks picked points and the polygon outline so far.
func drawSelection(img *gocv.Mat, points []region.Point) {
	red := color.RGBA{R: 255, A: 0}
	for i, p := range points {
		at := image.Pt(int(p.X), int(p.Y))
		gocv.Circle(img, at, 5, red, -1)
		gocv.PutText(img, fmt.Sprintf("%d", i+1), at.Add(image.Pt(8, -8)),
			gocv.FontHersheySimplex, 0.6, red, 2)
		if i > 0 {
			prev := image.Pt(int(points[i-1].X), int(points[i-1].Y))
			gocv.Line(img, prev, at, red, 2)
		}
	}
	if len(points) == 4 {
		gocv.Line(img,
			image.Pt(int(points[3].X), int(points[3].Y)),
			image.Pt(int(points[0].X), int(points[0].Y)),
			red, 2)
	}
}

// save validates the polygon before writing; a degenerate selection is
// rejected here, not at monitor startup.
func save(path string, points []region.Point) error {
	if len(points) != 4 {
		return fmt.Errorf("need exactly 4 points, have %d", len(points))
	}
	if _, err := region.NewRegion(points); err != nil {
		return err
	}
	return config.SaveRegion(path, points)
}
