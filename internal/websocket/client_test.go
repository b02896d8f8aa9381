package websocket

import (
	"log/slog"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
)

func TestClient_SendMessageBufferFull(t *testing.T) {
	c := newClient("c1", "127.0.0.1", nil, 1, slog.Default())

	assert.True(t, c.SendMessage([]byte("a")))
	assert.False(t, c.SendMessage([]byte("b")), "second frame must not fit a buffer of one")
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	c := newClient("c1", "127.0.0.1", nil, 4, slog.Default())

	assert.True(t, c.Close(websocket.StatusPolicyViolation, "slow"))
	assert.False(t, c.Close(websocket.StatusNormalClosure, ""))
	assert.False(t, c.SendMessage([]byte("a")))
	assert.Equal(t, websocket.StatusPolicyViolation, c.closeStatus)
}

func TestHub_BroadcastDropsSlowClient(t *testing.T) {
	h := NewHub(nil, nil, WithSendBuffer(1), WithWriteTimeout(time.Second))
	fast := newClient("fast", "127.0.0.1", nil, 8, slog.Default())
	slow := newClient("slow", "127.0.0.1", nil, 1, slog.Default())
	h.register(fast)
	h.register(slow)

	assert.Equal(t, 2, h.Broadcast([]byte("1")))
	assert.Equal(t, 1, h.Broadcast([]byte("2")), "slow client buffer is full")

	assert.True(t, slow.closed)
	assert.Equal(t, websocket.StatusPolicyViolation, slow.closeStatus)
	assert.False(t, fast.closed)
	assert.Len(t, fast.send, 2)

	// The connection goroutine removes the client, not Broadcast.
	assert.ElementsMatch(t, []string{"fast", "slow"}, h.ClientIDs())
}

func TestHub_Options(t *testing.T) {
	h := NewHub(nil, nil, WithSendBuffer(0), WithWriteTimeout(-1))
	assert.Equal(t, defaultSendBuffer, h.sendBuffer)
	assert.Equal(t, defaultWriteTimeout, h.writeTimeout)

	h = NewHub(nil, nil, WithSendBuffer(4), WithWriteTimeout(time.Second))
	assert.Equal(t, 4, h.sendBuffer)
	assert.Equal(t, time.Second, h.writeTimeout)
}
