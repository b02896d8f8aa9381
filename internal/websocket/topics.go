package websocket

import (
	"errors"

	"github.com/nfrund/wabridge/internal/pubsub"
	"github.com/nfrund/wabridge/internal/topicmgr"
)

// Framework topics for the push channel.

var (
	// TopicDataBroadcast carries frames that are written to every connected client.
	TopicDataBroadcast = topicmgr.DefineFramework(topicmgr.TopicConfig{
		Name:        "ws.data.broadcast",
		Description: "Broadcast a JSON frame to all connected push-channel clients",
		Example:     `{"event":"new_message","data":{"id":"wamid.1","from":"1555","text":"hi"}}`,
	})

	// TopicClientConnected is published when a client has been added to the fan-out set.
	TopicClientConnected = topicmgr.DefineFramework(topicmgr.TopicConfig{
		Name:        "ws.client.connected",
		Description: "Published when a push-channel client connects",
		Example:     `{"clientId":"3f0c...","remoteAddr":"127.0.0.1:50412","clients":1}`,
	})

	// TopicClientDisconnected is published when a client has been removed from the fan-out set.
	TopicClientDisconnected = topicmgr.DefineFramework(topicmgr.TopicConfig{
		Name:        "ws.client.disconnected",
		Description: "Published when a push-channel client disconnects",
		Example:     `{"clientId":"3f0c...","remoteAddr":"127.0.0.1:50412","clients":0}`,
	})
)

// Typed events for the topics above.
var (
	DataBroadcast      = pubsub.NewEvent[Frame](TopicDataBroadcast)
	ClientConnected    = pubsub.NewEvent[ClientEvent](TopicClientConnected)
	ClientDisconnected = pubsub.NewEvent[ClientEvent](TopicClientDisconnected)
)

// RegisterTopicsWithManager registers the push-channel topics with manager.
// Topics that are already registered are skipped.
func RegisterTopicsWithManager(manager *topicmgr.Manager) error {
	topics := []topicmgr.Topic{
		TopicDataBroadcast,
		TopicClientConnected,
		TopicClientDisconnected,
	}

	for _, topic := range topics {
		if err := manager.Register(topic); err != nil {
			var topicErr *topicmgr.TopicError
			if errors.As(err, &topicErr) && topicErr.Type == topicmgr.ErrorDuplicateRegistration {
				continue
			}
			return err
		}
	}
	return nil
}
