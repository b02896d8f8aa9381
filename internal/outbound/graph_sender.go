package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nfrund/wabridge/internal/config"
	"github.com/nfrund/wabridge/internal/domain"
)

// maxResponseBytes bounds how much of an upstream response is read.
const maxResponseBytes = 1 << 20

// GraphSender sends messages through the Cloud API's /messages endpoint.
type GraphSender struct {
	baseURL       string
	version       string
	phoneNumberID string
	accessToken   string
	client        *http.Client
	fallback      Sender
	logger        *slog.Logger
}

// GraphOption configures a GraphSender.
type GraphOption func(*GraphSender)

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) GraphOption {
	return func(s *GraphSender) {
		s.client = c
	}
}

// WithFallback sets the sender used when credentials are missing.
func WithFallback(f Sender) GraphOption {
	return func(s *GraphSender) {
		s.fallback = f
	}
}

// NewGraphSender creates a sender for the given API location and credentials.
func NewGraphSender(baseURL, version, phoneNumberID, accessToken string, timeout time.Duration, opts ...GraphOption) *GraphSender {
	s := &GraphSender{
		baseURL:       strings.TrimRight(baseURL, "/"),
		version:       version,
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		client:        &http.Client{Timeout: timeout},
		logger:        slog.Default().With("component", "graph_sender"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fallback == nil {
		s.fallback = NewLogSender(s.logger)
	}
	return s
}

// NewSender creates the application's Sender from configuration.
func NewSender(cfg config.Provider) Sender {
	return NewGraphSender(
		cfg.GetGraphBaseURL(),
		cfg.GetGraphVersion(),
		cfg.GetPhoneNumberID(),
		cfg.GetAccessToken(),
		cfg.GetGraphTimeout(),
	)
}

// Send dispatches the message. Without a token or phone number id it
// delegates to the fallback sender and makes no network call.
func (s *GraphSender) Send(ctx context.Context, req SendRequest) Result {
	token := req.Token
	if token == "" {
		token = s.accessToken
	}
	if token == "" || s.phoneNumberID == "" {
		return s.fallback.Send(ctx, req)
	}

	body, err := json.Marshal(Build(req.To, req.Text, req.TemplateName))
	if err != nil {
		return Failed(fmt.Sprintf("failed to marshal send payload: %v", err))
	}

	url := fmt.Sprintf("%s/%s/%s/messages", s.baseURL, s.version, s.phoneNumberID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Failed(fmt.Sprintf("failed to create send request: %v", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrSendFailed, err)
		s.logger.ErrorContext(ctx, "Send request failed", "to", req.To, "error", err)
		return Failed(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Failed(fmt.Sprintf("failed to read send response: %v", err))
	}
	decoded := decodeBody(raw)

	if resp.StatusCode >= 400 {
		s.logger.WarnContext(ctx, "Send API returned an error", "to", req.To, "status", resp.StatusCode)
		return Failed(errorDetail(decoded, resp.StatusCode))
	}

	s.logger.InfoContext(ctx, "Successfully sent message", "to", req.To)
	return Succeeded(decoded)
}

// decodeBody returns the JSON value of raw, or raw as a string when it is not JSON.
func decodeBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// errorDetail extracts the Graph "error" object when there is one.
func errorDetail(decoded any, status int) any {
	if obj, ok := decoded.(map[string]any); ok {
		if e, ok := obj["error"]; ok {
			return e
		}
		return obj
	}
	if s, ok := decoded.(string); ok && s != "" {
		return s
	}
	return fmt.Sprintf("send API returned status %d", status)
}
