// Package topicmgr keeps the catalogue of bus topics the relay publishes on,
// so that every topic is declared once and can be listed by tooling.
package topicmgr

// Topic is a declared bus topic.
type Topic interface {
	// Name returns the unique string identifier for this topic
	Name() string
	// Module returns the module that owns this topic (empty for framework topics)
	Module() string
	Description() string
	// Example returns a sample payload
	Example() string
	Scope() TopicScope
}

// TopicScope defines whether a topic belongs to framework or module level
type TopicScope string

const (
	ScopeFramework TopicScope = "framework" // push-channel plumbing
	ScopeModule    TopicScope = "module"    // relay domain events
)

// TopicConfig holds configuration for creating a new topic
type TopicConfig struct {
	Name        string `json:"name"`
	Module      string `json:"module"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// TypedTopic is the standard Topic implementation.
type TypedTopic struct {
	name        string
	module      string
	description string
	example     string
	scope       TopicScope
}

var _ Topic = (*TypedTopic)(nil)

func (t *TypedTopic) Name() string        { return t.name }
func (t *TypedTopic) Module() string      { return t.module }
func (t *TypedTopic) Description() string { return t.description }
func (t *TypedTopic) Example() string     { return t.example }
func (t *TypedTopic) Scope() TopicScope   { return t.scope }

// DefineFramework creates a topic for framework services.
func DefineFramework(cfg TopicConfig) Topic {
	return &TypedTopic{
		name:        cfg.Name,
		description: cfg.Description,
		example:     cfg.Example,
		scope:       ScopeFramework,
	}
}

// DefineModule creates a topic owned by a module.
func DefineModule(cfg TopicConfig) Topic {
	return &TypedTopic{
		name:        cfg.Name,
		module:      cfg.Module,
		description: cfg.Description,
		example:     cfg.Example,
		scope:       ScopeModule,
	}
}

// ErrorType defines the type of topic management error
type ErrorType string

const (
	ErrorDuplicateRegistration ErrorType = "duplicate_registration"
	ErrorValidationFailed      ErrorType = "validation_failed"
)

// TopicError represents structured errors in the topic management system
type TopicError struct {
	Type    ErrorType `json:"type"`
	Topic   string    `json:"topic"`
	Message string    `json:"message"`
	Cause   error     `json:"cause,omitempty"`
}

func (e *TopicError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *TopicError) Unwrap() error {
	return e.Cause
}
