// Package client is a small HTTP client for a running relay's API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nfrund/wabridge/internal/domain"
	"github.com/nfrund/wabridge/internal/outbound"
)

// SendRequest is the body of POST /api/send-message.
type SendRequest struct {
	To           string `json:"to"`
	Text         string `json:"text,omitempty"`
	TemplateName string `json:"templateName,omitempty"`
	Token        string `json:"token,omitempty"`
}

// Health is the relay's health report.
type Health struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// Client calls the relay's REST endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the relay at baseURL, e.g. "http://localhost:3001".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// StatusError is returned when the relay answers with an unexpected status.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Messages fetches the message log.
func (c *Client) Messages(ctx context.Context) ([]domain.MessageRecord, error) {
	var records []domain.MessageRecord
	if err := c.do(ctx, http.MethodGet, "/api/messages", nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.MessageRecord{}
	}
	return records, nil
}

// Clear empties the message log.
func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/messages", nil, nil)
}

// Send submits an outbound message. A failed send is reported in the Result.
func (c *Client) Send(ctx context.Context, req SendRequest) (outbound.Result, error) {
	var result outbound.Result
	err := c.do(ctx, http.MethodPost, "/api/send-message", req, &result)
	return result, err
}

// Health fetches the relay's health report.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var health Health
	err := c.do(ctx, http.MethodGet, "/api/health", nil, &health)
	return health, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
