package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/wabridge/internal/domain"
	"github.com/nfrund/wabridge/internal/topicmgr"
)

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	Messages(&buf, []domain.MessageRecord{
		{ID: "wamid.1", From: "1555", SenderName: "Ana", Text: "hi", Timestamp: "2023-11-14T22:13:20.000Z", Type: domain.MessageReceived},
		{ID: "local_1", From: "me", SenderName: "Me", To: "1555", Text: "hello", Timestamp: "2023-11-14T22:14:00.000Z", Type: domain.MessageSent},
	})

	out := buf.String()
	assert.Contains(t, out, "TIMESTAMP")
	assert.Contains(t, out, "Ana (1555)")
	assert.Contains(t, out, "local_1")
}

func TestMessages_Empty(t *testing.T) {
	var buf bytes.Buffer
	Messages(&buf, nil)
	assert.Equal(t, "No messages\n", buf.String())
}

func TestTopicsJSON(t *testing.T) {
	var buf bytes.Buffer
	err := TopicsJSON(&buf, []topicmgr.Topic{
		topicmgr.DefineFramework(topicmgr.TopicConfig{Name: "ws.data.broadcast", Description: "fan-out"}),
	})
	require.NoError(t, err)

	var doc struct {
		Topics []TopicDisplay `json:"topics"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 1, doc.Count)
	assert.Equal(t, "framework", doc.Topics[0].Scope)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat("table"))
	assert.NoError(t, CheckFormat("json"))
	assert.Error(t, CheckFormat("yaml"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "a b", truncate("a\nb", 10))
}
