package topicmgr

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Registry is a concurrency-safe set of topics keyed by name.
type Registry struct {
	mu     sync.RWMutex
	topics map[string]Topic
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{topics: make(map[string]Topic)}
}

// Register adds topic. A second topic with the same name is rejected with
// an ErrorDuplicateRegistration TopicError.
func (r *Registry) Register(topic Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := topic.Name()
	if _, taken := r.topics[name]; taken {
		return &TopicError{
			Type:    ErrorDuplicateRegistration,
			Topic:   name,
			Message: fmt.Sprintf("topic already registered: %s", name),
		}
	}
	r.topics[name] = topic
	return nil
}

func (r *Registry) Get(name string) (Topic, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topic, ok := r.topics[name]
	return topic, ok
}

// List returns the registered topics ordered by name.
func (r *Registry) List() []Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.SortedFunc(maps.Values(r.topics), func(a, b Topic) int {
		return strings.Compare(a.Name(), b.Name())
	})
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.topics)
}
