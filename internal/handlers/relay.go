package handlers

import (
	"context"

	"github.com/nfrund/wabridge/internal/domain"
	"github.com/nfrund/wabridge/internal/outbound"
)

// Relay is the application service the HTTP handlers drive.
type Relay interface {
	Ingest(ctx context.Context, raw []byte) (*domain.MessageRecord, error)
	Messages() []domain.MessageRecord
	Clear(ctx context.Context) error
	Send(ctx context.Context, req outbound.SendRequest) outbound.Result
}
