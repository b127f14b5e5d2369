// Package web provides a real-time monitoring dashboard for a queue
// stream: latest frame result over REST, live results and camera frames
// over websocket, and Prometheus metrics.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/queuewatch/go-queuewatch/internal/log"
	"github.com/queuewatch/go-queuewatch/internal/metrics"
	"github.com/queuewatch/go-queuewatch/pkg/hub"
	"github.com/queuewatch/go-queuewatch/pkg/queue"
	"github.com/queuewatch/go-queuewatch/pkg/region"
)

// Server is the dashboard server for one monitored stream.
type Server struct {
	app  *fiber.App
	port string

	// Latest engine output, replaced every frame.
	latest   queue.FrameResult
	hasFrame bool
	latestMu sync.RWMutex

	regionPts []region.Point
	cfg       queue.Config

	// Hubs for websocket broadcast (thread-safe!)
	resultsHub *hub.Hub
	cameraHub  *hub.Hub
}

// NewServer creates a dashboard server. The region and config are
// display-only copies; the engine owns the real state.
func NewServer(port string, r *region.Region, cfg queue.Config, m *metrics.Metrics) *Server {
	s := &Server{
		port:       port,
		regionPts:  r.Points(),
		cfg:        cfg,
		resultsHub: hub.New("results"),
		cameraHub:  hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "QueueWatch Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/region", s.handleRegion)
	api.Get("/config", s.handleConfig)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/results", websocket.New(s.handleResultsWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	s.app = app
	return s
}

// Start runs the hubs and serves HTTP. Blocks until Shutdown.
func (s *Server) Start() error {
	go s.resultsHub.Run()
	go s.cameraHub.Run()
	log.Info("dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// PublishResult records and broadcasts one frame result.
func (s *Server) PublishResult(res queue.FrameResult) {
	s.latestMu.Lock()
	s.latest = res
	s.hasFrame = true
	s.latestMu.Unlock()

	if s.resultsHub.ClientCount() > 0 {
		if err := s.resultsHub.BroadcastJSON(res); err != nil {
			log.Warn("broadcast result failed", "err", err)
		}
	}
}

// PublishFrame broadcasts a JPEG-encoded annotated frame to camera
// viewers.
func (s *Server) PublishFrame(jpeg []byte) {
	s.cameraHub.BroadcastBinary(jpeg)
}

// CameraViewers returns how many clients are watching the camera
// stream, so callers can skip JPEG encoding when nobody is.
func (s *Server) CameraViewers() int {
	return s.cameraHub.ClientCount()
}
