package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/wabridge/internal/domain"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	service string
	now     func() time.Time
}

// NewHealthHandler creates a new HealthHandler for the named service.
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service, now: time.Now}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   h.service,
		Timestamp: domain.FormatTimestamp(h.now()),
	})
}
