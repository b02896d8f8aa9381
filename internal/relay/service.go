// Package relay orchestrates the message log, the push channel and the
// outbound send API.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nfrund/wabridge/internal/domain"
	"github.com/nfrund/wabridge/internal/outbound"
	"github.com/nfrund/wabridge/internal/pubsub"
	"github.com/nfrund/wabridge/internal/webhook"
)

// Service is the relay's application layer. HTTP handlers call it; it never
// sees HTTP types.
type Service struct {
	store       domain.MessageStore
	broadcaster domain.Broadcaster
	sender      outbound.Sender
	publisher   pubsub.Publisher
	logger      *slog.Logger

	now   func() time.Time
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher publishes a SendCompleted event after each send attempt.
func WithPublisher(pub pubsub.Publisher) Option {
	return func(s *Service) {
		s.publisher = pub
	}
}

// WithClock replaces the clock used to stamp local echo records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the generator for local echo ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// NewService creates a relay service.
func NewService(store domain.MessageStore, broadcaster domain.Broadcaster, sender outbound.Sender, opts ...Option) *Service {
	s := &Service{
		store:       store,
		broadcaster: broadcaster,
		sender:      sender,
		logger:      slog.Default().With("component", "relay"),
		now:         time.Now,
		newID:       newLocalID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newLocalID returns a time-ordered id that cannot collide with upstream "wamid." ids.
func newLocalID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.LocalIDPrefix + uuid.NewString()
	}
	return domain.LocalIDPrefix + id.String()
}

// Ingest normalizes a webhook delivery and, when it carries a text message,
// appends it to the log and broadcasts it. A delivery without a message
// returns (nil, nil). A body that is not JSON returns ErrMalformedPayload.
func (s *Service) Ingest(ctx context.Context, raw []byte) (*domain.MessageRecord, error) {
	if !webhook.Valid(raw) {
		return nil, domain.ErrMalformedPayload
	}

	record, ok := webhook.Normalize(raw)
	if !ok {
		s.logger.DebugContext(ctx, "Webhook delivery carried no text message")
		return nil, nil
	}

	s.store.Append(record)
	if err := s.broadcaster.Emit(ctx, domain.EventNewMessage, record); err != nil {
		return &record, fmt.Errorf("broadcast received message %s: %w", record.ID, err)
	}

	s.logger.InfoContext(ctx, "Received message", "id", record.ID, "from", record.From)
	return &record, nil
}

// Messages returns a snapshot of the log in arrival order.
func (s *Service) Messages() []domain.MessageRecord {
	return s.store.All()
}

// Clear empties the log and tells connected clients.
func (s *Service) Clear(ctx context.Context) error {
	s.store.Clear()
	if err := s.broadcaster.Emit(ctx, domain.EventMessagesCleared, nil); err != nil {
		return fmt.Errorf("broadcast clear: %w", err)
	}
	s.logger.InfoContext(ctx, "Message log cleared")
	return nil
}

// Send records a local echo of the message, broadcasts it, and only then
// calls the send API. The echo is kept whatever the API answers.
func (s *Service) Send(ctx context.Context, req outbound.SendRequest) outbound.Result {
	var localID string
	if req.To != "" && (req.Text != "" || req.TemplateName != "") {
		record := s.localEcho(req)
		localID = record.ID

		s.store.Append(record)
		if err := s.broadcaster.Emit(ctx, domain.EventNewMessage, record); err != nil {
			s.logger.ErrorContext(ctx, "Failed to broadcast local echo", "id", record.ID, "error", err)
		}
	}

	result := s.sender.Send(ctx, req)
	s.publishOutcome(ctx, req, localID, result)
	return result
}

func (s *Service) localEcho(req outbound.SendRequest) domain.MessageRecord {
	text := req.Text
	if text == "" {
		text = "Template: " + req.TemplateName
	}
	return domain.MessageRecord{
		ID:         s.newID(),
		From:       domain.LocalSender,
		SenderName: domain.LocalSenderName,
		To:         req.To,
		Text:       text,
		Timestamp:  domain.FormatTimestamp(s.now()),
		Type:       domain.MessageSent,
	}
}

func (s *Service) publishOutcome(ctx context.Context, req outbound.SendRequest, localID string, result outbound.Result) {
	if s.publisher == nil {
		return
	}

	outcome := SendOutcome{
		LocalID: localID,
		To:      req.To,
		Kind:    outbound.Build(req.To, req.Text, req.TemplateName).Type,
		Success: result.Success,
		Mocked:  result.Mocked,
	}
	if result.Error != nil {
		outcome.Error = errorString(result.Error)
	}

	if err := pubsub.Publish(ctx, s.publisher, SendCompleted, outcome); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish send outcome", "error", err)
	}
}

func errorString(detail any) string {
	if s, ok := detail.(string); ok {
		return s
	}
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Sprint(detail)
	}
	return string(data)
}
