package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/wabridge/internal/pubsub"
	"github.com/nfrund/wabridge/internal/relay"
	"github.com/nfrund/wabridge/internal/websocket"
)

// AuditLog writes client lifecycle and send outcome events to the log.
type AuditLog struct {
	subscriber pubsub.Subscriber
	logger     *slog.Logger
}

// NewAuditLog creates an AuditLog. A nil logger means slog.Default().
func NewAuditLog(sub pubsub.Subscriber, logger *slog.Logger) *AuditLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLog{
		subscriber: sub,
		logger:     logger.With("component", "audit"),
	}
}

// Start subscribes to the audited topics until ctx is canceled.
func (a *AuditLog) Start(ctx context.Context) error {
	subscriptions := map[string]pubsub.Handler{
		websocket.ClientConnected.Name():    a.clientHandler(websocket.ClientConnected, "Push client connected"),
		websocket.ClientDisconnected.Name(): a.clientHandler(websocket.ClientDisconnected, "Push client disconnected"),
		relay.SendCompleted.Name():          a.handleSendCompleted,
	}
	for topic, handler := range subscriptions {
		if err := a.subscriber.Subscribe(ctx, topic, handler); err != nil {
			return fmt.Errorf("subscribe to %s: %w", topic, err)
		}
	}
	return nil
}

func (a *AuditLog) clientHandler(event pubsub.Event[websocket.ClientEvent], msg string) pubsub.Handler {
	return func(ctx context.Context, m pubsub.Message) error {
		e, err := pubsub.Decode(event, m)
		if err != nil {
			return err
		}
		a.logger.InfoContext(ctx, msg,
			"client_id", e.ClientID,
			"remote_addr", e.RemoteAddr,
			"clients", e.Clients,
		)
		return nil
	}
}

func (a *AuditLog) handleSendCompleted(ctx context.Context, m pubsub.Message) error {
	outcome, err := pubsub.Decode(relay.SendCompleted, m)
	if err != nil {
		return err
	}

	attrs := []any{
		"to", outcome.To,
		"kind", outcome.Kind,
		"local_id", outcome.LocalID,
		"mocked", outcome.Mocked,
	}
	if !outcome.Success {
		a.logger.WarnContext(ctx, "Outbound send failed", append(attrs, "error", outcome.Error)...)
		return nil
	}
	a.logger.InfoContext(ctx, "Outbound send completed", attrs...)
	return nil
}
