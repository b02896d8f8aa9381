// Package events connects the relay's broadcast contract to the message bus.
package events

import (
	"context"
	"fmt"

	"github.com/nfrund/wabridge/internal/domain"
	"github.com/nfrund/wabridge/internal/pubsub"
	"github.com/nfrund/wabridge/internal/websocket"
)

// Notifier implements domain.Broadcaster by publishing frames on the
// push-channel broadcast topic.
type Notifier struct {
	publisher pubsub.Publisher
}

var _ domain.Broadcaster = (*Notifier)(nil)

// NewNotifier creates a Notifier that publishes through pub.
func NewNotifier(pub pubsub.Publisher) *Notifier {
	return &Notifier{publisher: pub}
}

// Emit publishes {event, data} to every connected client. A nil payload is
// sent without a data field.
func (n *Notifier) Emit(ctx context.Context, event string, payload any) error {
	frame := websocket.Frame{Event: event, Data: payload}
	if err := pubsub.Publish(ctx, n.publisher, websocket.DataBroadcast, frame); err != nil {
		return fmt.Errorf("emit %s: %w", event, err)
	}
	return nil
}
