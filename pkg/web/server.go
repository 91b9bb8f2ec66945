// Package web serves the renderer page, the model-switcher API, and the
// live parameter stream.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/ayase-labs/go-puppet/internal/log"
	"github.com/ayase-labs/go-puppet/pkg/camera"
	"github.com/ayase-labs/go-puppet/pkg/hub"
	"github.com/ayase-labs/go-puppet/pkg/puppet"
)

// PuppetState is the session state surfaced on /api/status and the status
// stream.
type PuppetState struct {
	Tracking    bool   `json:"tracking"`
	Rig         string `json:"rig"`
	ActiveModel string `json:"active_model"`
	Frames      uint64 `json:"frames"`
	Errors      uint64 `json:"errors"`
}

// ParamFrame is one parameter-stream message sent to renderer clients.
type ParamFrame struct {
	Type   string             `json:"type"`
	Values map[string]float64 `json:"values"`
}

// stageReport is the renderer's inbound stage-size message.
type stageReport struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Server is the HTTP and WebSocket surface.
type Server struct {
	app  *fiber.App
	port string

	state   PuppetState
	stateMu sync.RWMutex

	catalog *puppet.Catalog

	cameraCfg   camera.Config
	cameraCfgMu sync.RWMutex

	stage   puppet.Size
	stageOK bool
	stageMu sync.RWMutex

	paramHub  *hub.Hub
	statusHub *hub.Hub

	// OnSelectModel switches the active puppet. Required for the model
	// API to work.
	OnSelectModel func(id string) error

	// OnCameraConfig applies a new capture configuration. Optional; when
	// nil the config is stored but takes effect on next start.
	OnCameraConfig func(cfg camera.Config) error
}

// NewServer creates the server.
func NewServer(port string, catalog *puppet.Catalog, cameraCfg camera.Config) *Server {
	s := &Server{
		port:      port,
		catalog:   catalog,
		cameraCfg: cameraCfg,
		paramHub:  hub.New("params"),
		statusHub: hub.New("status"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-puppet",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Renderer page and puppet assets
	app.Static("/", "./web")

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/models", s.handleModels)
	api.Post("/models/:id/select", s.handleSelectModel)
	api.Get("/camera/config", s.handleCameraConfig)
	api.Post("/camera/config", s.handleSetCameraConfig)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/params", websocket.New(s.handleParamsWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start runs the hubs and the listener. Blocks.
func (s *Server) Start() error {
	log.Info("web server listening", "port", s.port)

	go s.paramHub.Run()
	go s.statusHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync runs Start in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server failed", "err", err)
		}
	}()
}

// UpdateState mutates the session state and broadcasts it to status
// clients.
func (s *Server) UpdateState(update func(*PuppetState)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}

// BroadcastParams streams one applied pose to renderer clients.
func (s *Server) BroadcastParams(values map[string]float64) {
	s.paramHub.BroadcastJSON(ParamFrame{Type: "params", Values: values})
}

// StageSize implements puppet.StageReporter with the most recent size the
// renderer reported over the parameter socket.
func (s *Server) StageSize() (puppet.Size, bool) {
	s.stageMu.RLock()
	defer s.stageMu.RUnlock()
	return s.stage, s.stageOK
}

// Shutdown gracefully stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
