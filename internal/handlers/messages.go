package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/wabridge/internal/middleware"
)

// MessagesHandler exposes the message log.
type MessagesHandler struct {
	relay Relay
}

// NewMessagesHandler creates a new MessagesHandler.
func NewMessagesHandler(relay Relay) *MessagesHandler {
	return &MessagesHandler{relay: relay}
}

// List returns every stored message in arrival order.
func (h *MessagesHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.relay.Messages())
}

// Clear empties the log. Clearing an empty log succeeds.
func (h *MessagesHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.relay.Clear(ctx); err != nil {
		middleware.FromContext(ctx).Error("Failed to broadcast clear", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusOK)
}
