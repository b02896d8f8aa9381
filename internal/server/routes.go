package server

import (
	"github.com/nfrund/wabridge/internal/handlers"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	webhookHandler := handlers.NewWebhookHandler(s.relay, s.Cfg.GetVerifyToken())
	messagesHandler := handlers.NewMessagesHandler(s.relay)
	sendHandler := handlers.NewSendHandler(s.relay)
	healthHandler := handlers.NewHealthHandler(s.Cfg.GetServiceName())

	s.E.GET("/webhook", webhookHandler.Verify)
	s.E.POST("/webhook", webhookHandler.Receive)

	api := s.E.Group("/api")
	api.GET("/messages", messagesHandler.List)
	api.DELETE("/messages", messagesHandler.Clear)
	api.POST("/send-message", sendHandler.Send)
	api.GET("/health", healthHandler.Check)

	s.E.GET("/ws", s.hub.Handler())
}
