package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/queuewatch/go-queuewatch/pkg/hub"
)

// handleStatus returns the latest frame result.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.latestMu.RLock()
	defer s.latestMu.RUnlock()
	if !s.hasFrame {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no frames processed yet",
		})
	}
	return c.JSON(s.latest)
}

// handleRegion returns the monitored region polygon.
func (s *Server) handleRegion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"points": s.regionPts})
}

// handleConfig returns the engine thresholds.
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"congestion_threshold": s.cfg.CongestionThreshold,
		"dwell_threshold":      s.cfg.DwellThreshold.String(),
		"staleness_window":     s.cfg.StalenessWindow.String(),
	})
}

// handleResultsWS streams frame results to a dashboard client.
func (s *Server) handleResultsWS(c *websocket.Conn) {
	// Send the latest result immediately so the dashboard is not
	// blank until the next frame.
	s.latestMu.RLock()
	if s.hasFrame {
		c.WriteJSON(s.latest)
	}
	s.latestMu.RUnlock()

	client := hub.NewClient(s.resultsHub, c)
	client.Run() // Blocks until disconnect
}

// handleCameraWS streams annotated JPEG frames to a viewer.
func (s *Server) handleCameraWS(c *websocket.Conn) {
	client := hub.NewClient(s.cameraHub, c)
	client.Run() // Blocks until disconnect
}
