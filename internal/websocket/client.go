package websocket

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// Client represents a single connected push-channel client.
type Client struct {
	ID         string
	RemoteAddr string

	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	// closeStatus is sent to the peer once the send channel has drained.
	closeStatus websocket.StatusCode
	closeReason string
}

func newClient(id, remoteAddr string, conn *websocket.Conn, buffer int, logger *slog.Logger) *Client {
	return &Client{
		ID:          id,
		RemoteAddr:  remoteAddr,
		conn:        conn,
		send:        make(chan []byte, buffer),
		logger:      logger.With("client_id", id),
		closeStatus: websocket.StatusNormalClosure,
	}
}

// SendMessage queues msg for delivery. It reports false when the client is
// closed or its buffer is full.
func (c *Client) SendMessage(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Close stops delivery to the client. Queued frames are still written before
// the connection is closed with status. It reports whether this call closed
// the client.
func (c *Client) Close(status websocket.StatusCode, reason string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	c.closed = true
	c.closeStatus = status
	c.closeReason = reason
	close(c.send)
	return true
}

// readPump reads until the peer goes away. Clients have no message contract,
// so anything they send is discarded.
func (c *Client) readPump(ctx context.Context) {
	for {
		_, _, err := c.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			switch {
			case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
				c.logger.Debug("WebSocket closed by client", "status", status)
			case errors.Is(err, io.EOF) || errors.Is(err, context.Canceled):
			default:
				c.logger.Debug("WebSocket read ended", "error", err)
			}
			return
		}
	}
}

// writePump writes queued frames until the send channel is closed.
func (c *Client) writePump(writeTimeout time.Duration) {
	for message := range c.send {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := c.conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			c.logger.Warn("WebSocket write error", "error", err)
			c.conn.CloseNow()
			return
		}
	}

	c.mu.Lock()
	status, reason := c.closeStatus, c.closeReason
	c.mu.Unlock()
	c.conn.Close(status, reason)
}
