package outbound

import (
	"context"
	"log/slog"

	"github.com/nfrund/wabridge/internal/domain"
)

// LogSender prints sends to the log instead of calling the platform. It is
// what the relay falls back to when no credentials are configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger means slog.Default().
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the payload that would have been sent and reports a mocked success.
func (s *LogSender) Send(ctx context.Context, req SendRequest) Result {
	payload := Build(req.To, req.Text, req.TemplateName)
	s.logger.InfoContext(ctx, "Send skipped",
		"to", payload.To,
		"type", payload.Type,
		"reason", domain.ErrMissingCredentials,
	)
	return Result{
		Success: true,
		Mocked:  true,
		Data:    payload,
	}
}
