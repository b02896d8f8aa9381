//go:generate go run go.uber.org/mock/mockgen -source=sender.go -destination=../mocks/mock_sender.go -package=mocks

package outbound

import (
	"context"
)

// SendRequest is an outbound send as submitted by a client.
type SendRequest struct {
	To           string
	Text         string
	TemplateName string
	// Token overrides the configured bearer credential for this request only.
	Token string
}

// Result is the outcome of a send attempt. A failed send is reported as data
// (Success false plus an Error detail), never as a Go error, because the
// local echo has already happened by the time the platform is called.
type Result struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
	// Mocked is set when no credentials were available and no call was made.
	Mocked bool `json:"mocked,omitempty"`
}

// Succeeded wraps the platform's response body.
func Succeeded(data any) Result {
	return Result{Success: true, Data: data}
}

// Failed wraps an error detail: an upstream error object or a message string.
func Failed(detail any) Result {
	return Result{Success: false, Error: detail}
}

// Sender defines the contract for delivering a message to the platform.
// This allows for different implementations (the Graph API, a logging stub).
type Sender interface {
	Send(ctx context.Context, req SendRequest) Result
}
