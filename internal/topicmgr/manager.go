package topicmgr

import (
	"sync"

	"github.com/samber/lo"
)

// Manager validates topics and keeps them in a Registry.
type Manager struct {
	registry *Registry
}

// NewManager creates an empty manager. Tests use it to avoid touching Default().
func NewManager() *Manager {
	return &Manager{registry: NewRegistry()}
}

// Register validates a topic and adds it to the registry.
func (m *Manager) Register(topic Topic) error {
	if err := Validate(topic); err != nil {
		name := ""
		if topic != nil {
			name = topic.Name()
		}
		return &TopicError{
			Type:    ErrorValidationFailed,
			Topic:   name,
			Message: "topic validation failed",
			Cause:   err,
		}
	}
	return m.registry.Register(topic)
}

// Get retrieves a topic by name.
func (m *Manager) Get(name string) (Topic, bool) {
	return m.registry.Get(name)
}

// List returns all registered topics sorted by name.
func (m *Manager) List() []Topic {
	return m.registry.List()
}

// ListByScope returns topics for a specific scope.
func (m *Manager) ListByScope(scope TopicScope) []Topic {
	return lo.Filter(m.List(), func(t Topic, _ int) bool {
		return t.Scope() == scope
	})
}

// ListByModule returns topics owned by module.
func (m *Manager) ListByModule(module string) []Topic {
	return lo.Filter(m.List(), func(t Topic, _ int) bool {
		return t.Module() == module
	})
}

// Count returns the number of registered topics.
func (m *Manager) Count() int {
	return m.registry.Count()
}

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

// Default returns the process-wide manager that package-level topic declarations register with.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}
