package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/wabridge/internal/middleware"
	"github.com/nfrund/wabridge/internal/outbound"
)

// SendHandler forwards outbound messages. It always answers 200; failures
// are reported in the body.
type SendHandler struct {
	relay Relay
}

// NewSendHandler creates a new SendHandler.
func NewSendHandler(relay Relay) *SendHandler {
	return &SendHandler{relay: relay}
}

// Send handles POST /api/send-message.
func (h *SendHandler) Send(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Invalid send request", "error", err)
		return c.JSON(http.StatusOK, outbound.Failed("invalid request body"))
	}
	req.Normalize()
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, outbound.Failed(validationMessage(err)))
	}

	result := h.relay.Send(ctx, req.ToSendRequest())
	if !result.Success {
		logger.Warn("Send failed", "to", req.To)
	}
	return c.JSON(http.StatusOK, result)
}
