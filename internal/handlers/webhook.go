package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/wabridge/internal/domain"
	"github.com/nfrund/wabridge/internal/middleware"
	"github.com/nfrund/wabridge/internal/webhook"
)

// WebhookHandler serves the platform's webhook endpoint.
type WebhookHandler struct {
	relay       Relay
	verifyToken string
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(relay Relay, verifyToken string) *WebhookHandler {
	return &WebhookHandler{
		relay:       relay,
		verifyToken: verifyToken,
	}
}

// Verify answers the subscription handshake by echoing hub.challenge.
func (h *WebhookHandler) Verify(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	mode := c.QueryParam("hub.mode")
	token := c.QueryParam("hub.verify_token")
	if !webhook.Verify(mode, token, h.verifyToken) {
		logger.Warn("Webhook verification rejected", "mode", mode)
		return c.NoContent(http.StatusForbidden)
	}

	logger.Info("Webhook verified")
	return c.String(http.StatusOK, c.QueryParam("hub.challenge"))
}

// Receive ingests a delivery. It answers 200 for any platform event, whether
// or not a message was extracted, and 404 when the body is not one.
func (h *WebhookHandler) Receive(c echo.Context) (err error) {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while processing webhook", "panic", r)
			err = c.NoContent(http.StatusInternalServerError)
		}
	}()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return fmt.Errorf("read webhook body: %w", err)
	}

	record, err := h.relay.Ingest(ctx, body)
	switch {
	case errors.Is(err, domain.ErrMalformedPayload):
		logger.Warn("Rejected webhook body", "error", err)
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "malformed_payload",
			Message: err.Error(),
		})
	case err != nil:
		logger.Error("Failed to process webhook", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	if !webhook.IsPlatformEvent(body) {
		return c.NoContent(http.StatusNotFound)
	}
	if record != nil {
		logger.Debug("Webhook message stored", "id", record.ID)
	}
	return c.NoContent(http.StatusOK)
}
