package web

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/ayase-labs/go-puppet/pkg/camera"
	"github.com/ayase-labs/go-puppet/pkg/hub"
)

// handleStatus returns the current session state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleModels returns the model catalog and the active selection.
func (s *Server) handleModels(c *fiber.Ctx) error {
	s.stateMu.RLock()
	active := s.state.ActiveModel
	s.stateMu.RUnlock()

	return c.JSON(fiber.Map{
		"models": s.catalog.Entries(),
		"active": active,
	})
}

// handleSelectModel switches the active puppet. The rig's smoothing state
// survives the switch; only the parameter table is replaced.
func (s *Server) handleSelectModel(c *fiber.Ctx) error {
	id := c.Params("id")

	if _, ok := s.catalog.Get(id); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown model id",
		})
	}

	if s.OnSelectModel == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "model switching not configured",
		})
	}

	if err := s.OnSelectModel(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"active": id})
}

// handleCameraConfig returns the capture configuration.
func (s *Server) handleCameraConfig(c *fiber.Ctx) error {
	s.cameraCfgMu.RLock()
	defer s.cameraCfgMu.RUnlock()
	return c.JSON(s.cameraCfg)
}

// handleSetCameraConfig validates and applies a capture configuration.
func (s *Server) handleSetCameraConfig(c *fiber.Ctx) error {
	var cfg camera.Config
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}

	if s.OnCameraConfig != nil {
		if err := s.OnCameraConfig(cfg); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	s.cameraCfgMu.Lock()
	s.cameraCfg = cfg
	s.cameraCfgMu.Unlock()

	return c.JSON(cfg)
}

// handleParamsWS streams applied parameter frames to a renderer client and
// accepts its stage-size reports.
func (s *Server) handleParamsWS(c *websocket.Conn) {
	client := hub.NewClient(s.paramHub, c)
	client.OnMessage = func(data []byte) {
		var report stageReport
		if err := json.Unmarshal(data, &report); err != nil {
			return
		}
		if report.Type != "stage" || report.Width <= 0 || report.Height <= 0 {
			return
		}
		s.stageMu.Lock()
		s.stage.Width = report.Width
		s.stage.Height = report.Height
		s.stageOK = true
		s.stageMu.Unlock()
	}
	client.Run()
}

// handleStatusWS streams session state changes, starting with the current
// state.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	s.stateMu.RLock()
	c.WriteJSON(s.state)
	s.stateMu.RUnlock()

	client := hub.NewClient(s.statusHub, c)
	client.Run()
}
