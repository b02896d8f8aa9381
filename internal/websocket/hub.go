package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/nfrund/wabridge/internal/pubsub"
)

const (
	defaultSendBuffer   = 256
	defaultWriteTimeout = 10 * time.Second
)

// Hub maintains the set of connected push-channel clients and fans frames
// published on TopicDataBroadcast out to them. There is no replay: a client
// only sees frames published while it is connected.
type Hub struct {
	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber
	logger     *slog.Logger

	sendBuffer   int
	writeTimeout time.Duration

	mu      sync.RWMutex
	clients map[string]*Client
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithSendBuffer sets how many frames may be queued per client before it is dropped.
func WithSendBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

// WithWriteTimeout bounds each frame write.
func WithWriteTimeout(d time.Duration) HubOption {
	return func(h *Hub) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// NewHub creates a hub. Call Start to begin consuming broadcasts.
func NewHub(pub pubsub.Publisher, sub pubsub.Subscriber, opts ...HubOption) *Hub {
	h := &Hub{
		publisher:    pub,
		subscriber:   sub,
		logger:       slog.Default().With("component", "websocket_hub"),
		sendBuffer:   defaultSendBuffer,
		writeTimeout: defaultWriteTimeout,
		clients:      make(map[string]*Client),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start subscribes the hub to the broadcast topic. Delivery stops when ctx is canceled.
func (h *Hub) Start(ctx context.Context) error {
	err := h.subscriber.Subscribe(ctx, DataBroadcast.Name(), func(ctx context.Context, msg pubsub.Message) error {
		h.Broadcast(msg.Payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", DataBroadcast.Name(), err)
	}
	h.logger.Info("WebSocket hub started", "topic", DataBroadcast.Name())
	return nil
}

// Broadcast queues payload for every client connected at the time of the
// call and returns how many accepted it. Clients that cannot keep up are
// disconnected.
func (h *Hub) Broadcast(payload []byte) int {
	delivered := 0
	for _, client := range h.snapshot() {
		if client.SendMessage(payload) {
			delivered++
			continue
		}
		if client.Close(websocket.StatusPolicyViolation, "client too slow") {
			h.logger.Warn("Client send buffer full, disconnecting", "client_id", client.ID)
		}
	}
	h.logger.Debug("Broadcast frame", "recipients", delivered)
	return delivered
}

// snapshot copies the client set so fan-out never holds the lock while
// connects and disconnects happen.
func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return lo.Values(h.clients)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ClientIDs returns the ids of connected clients.
func (h *Hub) ClientIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return lo.Keys(h.clients)
}

func (h *Hub) register(client *Client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	return len(h.clients)
}

// unregister removes client and reports whether it was still registered.
func (h *Hub) unregister(client *Client) (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[client.ID]; !ok || current != client {
		return len(h.clients), false
	}
	delete(h.clients, client.ID)
	return len(h.clients), true
}

// Handler returns the echo handler that upgrades a request to a push-channel connection.
func (h *Hub) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Subscribers are unauthenticated; any origin may connect.
		})
		if err != nil {
			h.logger.Error("Failed to upgrade connection to WebSocket", "error", err)
			return nil
		}

		client := newClient(uuid.NewString(), c.RealIP(), conn, h.sendBuffer, h.logger)
		h.serve(client)
		return nil
	}
}

// serve runs the client until its connection ends.
func (h *Hub) serve(client *Client) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	count := h.register(client)
	h.logger.Info("Client connected", "client_id", client.ID, "clients", count)
	h.publishLifecycle(ClientConnected, client, count)

	go client.writePump(h.writeTimeout)
	client.readPump(ctx)

	if count, removed := h.unregister(client); removed {
		h.logger.Info("Client disconnected", "client_id", client.ID, "clients", count)
		h.publishLifecycle(ClientDisconnected, client, count)
	}
	client.Close(websocket.StatusNormalClosure, "")
}

func (h *Hub) publishLifecycle(event pubsub.Event[ClientEvent], client *Client, count int) {
	if h.publisher == nil {
		return
	}
	payload := ClientEvent{
		ClientID:   client.ID,
		RemoteAddr: client.RemoteAddr,
		Clients:    count,
	}
	if err := pubsub.PublishFor(context.Background(), h.publisher, event, client.ID, payload); err != nil {
		h.logger.Error("Failed to publish client lifecycle event", "topic", event.Name(), "error", err)
	}
}

// Shutdown disconnects every client with a going-away status.
func (h *Hub) Shutdown() {
	for _, client := range h.snapshot() {
		client.Close(websocket.StatusGoingAway, "server shutting down")
	}
}
