package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/wabridge/internal/config"
	"github.com/nfrund/wabridge/internal/handlers"
	"github.com/nfrund/wabridge/internal/middleware"
	"github.com/nfrund/wabridge/internal/websocket"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E     *echo.Echo
	Cfg   config.Provider
	relay handlers.Relay
	hub   *websocket.Hub
}

// New creates a Server with middleware and routes registered.
func New(cfg config.Provider, relay handlers.Relay, hub *websocket.Hub) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(middleware.AccessLog())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.GetAllowedOrigins(),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(echomw.BodyLimit(cfg.GetBodyLimit()))

	s := &Server{
		E:     e,
		Cfg:   cfg,
		relay: relay,
		hub:   hub,
	}
	s.RegisterRoutes()
	return s
}
