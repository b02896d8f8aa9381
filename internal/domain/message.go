//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_domain.go -package=mocks

package domain

import (
	"context"
	"time"
)

// MessageType distinguishes inbound platform messages from locally originated sends.
type MessageType string

const (
	MessageReceived MessageType = "received"
	MessageSent     MessageType = "sent"
)

const (
	// LocalSender is the reserved "from" value for records originated by the operator.
	LocalSender = "me"
	// LocalSenderName is the display name attached to local echo records.
	LocalSenderName = "Me"
	// LocalIDPrefix keeps locally generated ids apart from upstream "wamid." ids.
	LocalIDPrefix = "local_"
)

// TimestampLayout renders instants like JavaScript's Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// MessageRecord is the unit stored in the message log and pushed to clients.
type MessageRecord struct {
	ID         string      `json:"id"`
	From       string      `json:"from"`
	SenderName string      `json:"senderName"`
	To         string      `json:"to,omitempty"`
	Text       string      `json:"text"`
	Timestamp  string      `json:"timestamp"`
	Type       MessageType `json:"type"`
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// MessageStore is the ordered, in-memory message log.
// It lives in the domain because the relay depends on the contract, not on
// any one implementation.
type MessageStore interface {
	// Append adds a record to the end of the log.
	Append(record MessageRecord)
	// All returns a snapshot of the log in insertion order.
	All() []MessageRecord
	// Clear empties the log.
	Clear()
}

// Event names pushed to connected clients.
const (
	EventNewMessage      = "new_message"
	EventMessagesCleared = "messages_cleared"
)

// Broadcaster pushes events to every currently connected subscriber.
// Subscribers that connect later never see earlier events.
type Broadcaster interface {
	Emit(ctx context.Context, event string, payload any) error
}
