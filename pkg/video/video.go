// Package video wraps frame capture and annotated-video writing.
// The queue engine never touches these; they sit at the edges of the
// pipeline.
package video

import (
	"fmt"
	"strconv"

	"gocv.io/x/gocv"
)

// Source supplies frames to the pipeline.
type Source interface {
	// Read fills dst with the next frame. Returns false at end of
	// stream.
	Read(dst *gocv.Mat) bool

	// FPS returns the stream frame rate.
	FPS() float64

	// Size returns frame width and height.
	Size() (w, h int)

	// Close releases the capture device.
	Close() error
}

// Capture is a Source over a video file or camera device.
type Capture struct {
	cap    *gocv.VideoCapture
	closed bool
}

// Open opens a video source. src is a file path, a URL, or a numeric
// device index ("0" for the default camera).
func Open(src string) (*Capture, error) {
	var cap *gocv.VideoCapture
	var err error

	if idx, convErr := strconv.Atoi(src); convErr == nil {
		cap, err = gocv.OpenVideoCapture(idx)
	} else {
		cap, err = gocv.VideoCaptureFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("video: open %q: %w", src, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("video: source %q did not open", src)
	}
	return &Capture{cap: cap}, nil
}

// Read fills dst with the next frame.
func (c *Capture) Read(dst *gocv.Mat) bool {
	if c.closed {
		return false
	}
	return c.cap.Read(dst)
}

// FPS returns the source frame rate, defaulting to 25 when the
// container does not report one.
func (c *Capture) FPS() float64 {
	fps := c.cap.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		return 25
	}
	return fps
}

// Size returns frame width and height.
func (c *Capture) Size() (int, int) {
	return int(c.cap.Get(gocv.VideoCaptureFrameWidth)),
		int(c.cap.Get(gocv.VideoCaptureFrameHeight))
}

// Close releases the capture device.
func (c *Capture) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.cap.Close()
}

// Writer writes annotated frames to an mp4 file.
type Writer struct {
	w *gocv.VideoWriter
}

// NewWriter opens an mp4 writer matching the source geometry.
func NewWriter(path string, fps float64, width, height int) (*Writer, error) {
	w, err := gocv.VideoWriterFile(path, "mp4v", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("video: open writer %q: %w", path, err)
	}
	return &Writer{w: w}, nil
}

// Write appends one frame.
func (w *Writer) Write(frame gocv.Mat) error {
	return w.w.Write(frame)
}

// Close finalizes the output file.
func (w *Writer) Close() error {
	return w.w.Close()
}
