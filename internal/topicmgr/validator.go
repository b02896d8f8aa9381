package topicmgr

import (
	"fmt"
	"regexp"
)

var (
	namePattern   = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)*$`)
	modulePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Validate checks a topic definition before registration.
func Validate(topic Topic) error {
	if topic == nil {
		return fmt.Errorf("topic is nil")
	}
	if !namePattern.MatchString(topic.Name()) {
		return fmt.Errorf("invalid topic name %q: use lowercase dot-separated segments", topic.Name())
	}
	if topic.Description() == "" {
		return fmt.Errorf("topic %q has no description", topic.Name())
	}

	switch topic.Scope() {
	case ScopeFramework:
		if topic.Module() != "" {
			return fmt.Errorf("framework topic %q must not declare a module", topic.Name())
		}
	case ScopeModule:
		if !modulePattern.MatchString(topic.Module()) {
			return fmt.Errorf("module topic %q has invalid module %q", topic.Name(), topic.Module())
		}
	default:
		return fmt.Errorf("topic %q has unknown scope %q", topic.Name(), topic.Scope())
	}
	return nil
}
