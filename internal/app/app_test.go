package app_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/wabridge/internal/app"
	"github.com/nfrund/wabridge/internal/config"
	"github.com/nfrund/wabridge/internal/domain"
	"github.com/nfrund/wabridge/internal/outbound"
)

const textDelivery = `{
  "object": "whatsapp_business_account",
  "entry": [{"changes": [{"value": {
    "contacts": [{"profile": {"name": "Ana"}}],
    "messages": [{"from": "1555", "id": "wamid.1", "timestamp": "1700000000", "type": "text", "text": {"body": "hi"}}]
  }}]}]
}`

func testConfig(graphURL, token, phoneID string) *config.Config {
	return &config.Config{
		Port:           3001,
		ServiceName:    "wabridge-test",
		VerifyToken:    config.DefaultVerifyToken,
		AccessToken:    token,
		PhoneNumberID:  phoneID,
		GraphBaseURL:   graphURL,
		GraphVersion:   "v18.0",
		GraphTimeout:   2 * time.Second,
		AllowedOrigins: []string{"*"},
		BodyLimit:      "1M",
	}
}

type relayEnv struct {
	server *httptest.Server
	ctx    context.Context
}

func startRelay(t *testing.T, cfg *config.Config) *relayEnv {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	a := app.New(cfg)
	srv, err := a.Start(ctx)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.E)
	t.Cleanup(func() {
		cancel()
		a.Shutdown()
		ts.Close()
	})
	return &relayEnv{server: ts, ctx: ctx}
}

func (env *relayEnv) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(env.ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	})

	// The handshake completes before the hub registers the client.
	time.Sleep(50 * time.Millisecond)
	return conn
}

type frame struct {
	Event string               `json:"event"`
	Data  domain.MessageRecord `json:"data"`
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, p, err := conn.ReadMessage()
	require.NoError(t, err)

	var f frame
	require.NoError(t, json.Unmarshal(p, &f))
	return f
}

func (env *relayEnv) request(t *testing.T, method, path, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(env.ctx, method, env.server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func (env *relayEnv) messages(t *testing.T) []domain.MessageRecord {
	t.Helper()

	code, body := env.request(t, http.MethodGet, "/api/messages", "")
	require.Equal(t, http.StatusOK, code)

	var records []domain.MessageRecord
	require.NoError(t, json.Unmarshal([]byte(body), &records))
	return records
}

func TestRelay_WebhookToPushChannel(t *testing.T) {
	env := startRelay(t, testConfig("http://127.0.0.1:1", "", ""))
	conn := env.dial(t)

	code, _ := env.request(t, http.MethodPost, "/webhook", textDelivery)
	require.Equal(t, http.StatusOK, code)

	f := readFrame(t, conn)
	assert.Equal(t, domain.EventNewMessage, f.Event)
	assert.Equal(t, "wamid.1", f.Data.ID)
	assert.Equal(t, "hi", f.Data.Text)
	assert.Equal(t, domain.MessageReceived, f.Data.Type)

	records := env.messages(t)
	require.Len(t, records, 1)
	assert.Equal(t, f.Data, records[0])
	assert.Equal(t, "2023-11-14T22:13:20.000Z", records[0].Timestamp)
}

func TestRelay_ClearIsBroadcast(t *testing.T) {
	env := startRelay(t, testConfig("http://127.0.0.1:1", "", ""))

	code, _ := env.request(t, http.MethodPost, "/webhook", textDelivery)
	require.Equal(t, http.StatusOK, code)

	conn := env.dial(t)
	code, body := env.request(t, http.MethodDelete, "/api/messages", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, body)

	f := readFrame(t, conn)
	assert.Equal(t, domain.EventMessagesCleared, f.Event, "a late client sees only events emitted after it connected")
	assert.Empty(t, env.messages(t))
}

func TestRelay_SendWithoutCredentialsIsMocked(t *testing.T) {
	env := startRelay(t, testConfig("http://127.0.0.1:1", "", ""))
	conn := env.dial(t)

	code, body := env.request(t, http.MethodPost, "/api/send-message", `{"to":"1555","text":"hello"}`)
	require.Equal(t, http.StatusOK, code)

	var result outbound.Result
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.True(t, result.Success)
	assert.True(t, result.Mocked)

	f := readFrame(t, conn)
	assert.Equal(t, domain.MessageSent, f.Data.Type)
	assert.Equal(t, domain.LocalSender, f.Data.From)
	assert.True(t, strings.HasPrefix(f.Data.ID, domain.LocalIDPrefix))
}

func TestRelay_SendFailureKeepsEcho(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token.","code":190}}`))
	}))
	defer upstream.Close()

	env := startRelay(t, testConfig(upstream.URL, "EAAB", "10987"))

	code, body := env.request(t, http.MethodPost, "/api/send-message", `{"to":"1555","templateName":"promo"}`)
	require.Equal(t, http.StatusOK, code)

	var result outbound.Result
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.False(t, result.Success)
	assert.Equal(t, map[string]any{"message": "Invalid OAuth access token.", "code": float64(190)}, result.Error)

	records := env.messages(t)
	require.Len(t, records, 1)
	assert.Equal(t, "Template: promo", records[0].Text)
}

func TestRelay_HealthAndVerify(t *testing.T) {
	env := startRelay(t, testConfig("http://127.0.0.1:1", "", ""))

	code, body := env.request(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"service":"wabridge-test"`)

	code, body = env.request(t, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=bellizy_token&hub.challenge=abc", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "abc", body)
}
