package store

import (
	"sync"

	"github.com/nfrund/wabridge/internal/domain"
)

// MemoryStore is an ordered, append-only message log held in process memory.
// It has no capacity bound and no eviction; its lifetime is the process lifetime.
type MemoryStore struct {
	mu       sync.RWMutex
	messages []domain.MessageRecord
}

// Compile-time interface compliance check
var _ domain.MessageStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages: make([]domain.MessageRecord, 0),
	}
}

// Append adds a record to the end of the log. Records with an id already
// present are kept as separate entries.
func (s *MemoryStore) Append(record domain.MessageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, record)
}

// All returns a copy of the log in insertion order. The result is never nil.
func (s *MemoryStore) All() []domain.MessageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.MessageRecord, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

// Clear atomically empties the log.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = make([]domain.MessageRecord, 0)
}

// Len reports the number of records currently held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.messages)
}
