package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Messages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/messages", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"wamid.1","from":"1555","senderName":"Ana","text":"hi","timestamp":"2023-11-14T22:13:20.000Z","type":"received"}]`))
	}))
	defer srv.Close()

	records, err := New(srv.URL+"/", time.Second).Messages(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana", records[0].SenderName)
}

func TestClient_MessagesNullIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	records, err := New(srv.URL, time.Second).Messages(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestClient_Clear(t *testing.T) {
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, time.Second).Clear(context.Background()))
	assert.Equal(t, http.MethodDelete, method)
}

func TestClient_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req SendRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "1555", req.To)
		assert.Equal(t, "promo", req.TemplateName)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		_, _ = w.Write([]byte(`{"success":false,"error":"boom"}`))
	}))
	defer srv.Close()

	result, err := New(srv.URL, time.Second).Send(context.Background(), SendRequest{To: "1555", TemplateName: "promo"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "boom", result.Error)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Health(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Equal(t, "nope", statusErr.Body)
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok","service":"wabridge","timestamp":"2024-05-01T12:00:00.000Z"}`))
	}))
	defer srv.Close()

	health, err := New(srv.URL, time.Second).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Health{Status: "ok", Service: "wabridge", Timestamp: "2024-05-01T12:00:00.000Z"}, health)
}
