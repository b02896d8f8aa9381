package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nfrund/wabridge/internal/topicmgr"
)

// Event[T] binds a declared topic to the payload type published on it.
type Event[T any] struct {
	topic topicmgr.Topic
}

// NewEvent creates a typed event for topic.
func NewEvent[T any](topic topicmgr.Topic) Event[T] {
	return Event[T]{topic: topic}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topic.Name()
}

// Topic returns the declared topic.
func (e Event[T]) Topic() topicmgr.Topic {
	return e.topic
}

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], payload T) error {
	return PublishFor(ctx, p, event, "", payload)
}

// PublishFor is Publish with the message tagged with a push-channel client id.
func PublishFor[T any](ctx context.Context, p Publisher, event Event[T], clientID string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.Name(), err)
	}

	return p.Publish(ctx, Message{
		Topic:    event.Name(),
		ClientID: clientID,
		Payload:  data,
	})
}

// Decode unmarshals the payload of a message received on event's topic.
func Decode[T any](event Event[T], msg Message) (T, error) {
	var payload T
	if msg.Topic != "" && msg.Topic != event.Name() {
		return payload, fmt.Errorf("message on topic %q cannot be decoded as %s", msg.Topic, event.Name())
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("decode %s payload: %w", event.Name(), err)
	}
	return payload, nil
}
