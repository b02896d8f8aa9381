package relay

import (
	"errors"

	"github.com/nfrund/wabridge/internal/pubsub"
	"github.com/nfrund/wabridge/internal/topicmgr"
)

// TopicSendCompleted is published after every outbound send attempt.
var TopicSendCompleted = topicmgr.DefineModule(topicmgr.TopicConfig{
	Name:        "relay.send.completed",
	Module:      "relay",
	Description: "Outcome of an outbound send request",
	Example:     `{"localId":"local_0190...","to":"1555","kind":"text","success":true,"mocked":false}`,
})

// SendCompleted is the typed event for TopicSendCompleted.
var SendCompleted = pubsub.NewEvent[SendOutcome](TopicSendCompleted)

// SendOutcome summarises an outbound send for observers.
type SendOutcome struct {
	// LocalID is the id of the local echo record, empty when none was created.
	LocalID string `json:"localId,omitempty"`
	To      string `json:"to"`
	Kind    string `json:"kind"`
	Success bool   `json:"success"`
	Mocked  bool   `json:"mocked,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RegisterTopicsWithManager registers the relay's topics with manager.
// Topics that are already registered are skipped.
func RegisterTopicsWithManager(manager *topicmgr.Manager) error {
	if err := manager.Register(TopicSendCompleted); err != nil {
		var topicErr *topicmgr.TopicError
		if errors.As(err, &topicErr) && topicErr.Type == topicmgr.ErrorDuplicateRegistration {
			return nil
		}
		return err
	}
	return nil
}
