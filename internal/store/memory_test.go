package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/wabridge/internal/domain"
)

func record(id, text string) domain.MessageRecord {
	return domain.MessageRecord{
		ID:         id,
		From:       "15550001",
		SenderName: "Alice",
		Text:       text,
		Timestamp:  "2023-11-14T22:13:20.000Z",
		Type:       domain.MessageReceived,
	}
}

func TestMemoryStore_AppendPreservesOrder(t *testing.T) {
	s := NewMemoryStore()
	r1 := record("wamid.1", "first")
	r2 := record("wamid.2", "second")

	s.Append(r1)
	s.Append(r2)

	assert.Equal(t, []domain.MessageRecord{r1, r2}, s.All())
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore()
	s.Append(record("wamid.1", "first"))

	s.Clear()
	all := s.All()
	require.NotNil(t, all)
	assert.Empty(t, all)

	t.Run("clearing an empty store is a no-op", func(t *testing.T) {
		s.Clear()
		assert.Empty(t, s.All())
	})

	t.Run("appends after clear start a fresh log", func(t *testing.T) {
		r := record("wamid.3", "third")
		s.Append(r)
		assert.Equal(t, []domain.MessageRecord{r}, s.All())
	})
}

func TestMemoryStore_DuplicateIDsAreKept(t *testing.T) {
	s := NewMemoryStore()
	r := record("wamid.1", "hi")

	s.Append(r)
	s.Append(r)

	assert.Len(t, s.All(), 2)
}

func TestMemoryStore_AllReturnsSnapshot(t *testing.T) {
	s := NewMemoryStore()
	s.Append(record("wamid.1", "original"))

	snapshot := s.All()
	snapshot[0].Text = "mutated"
	s.Append(record("wamid.2", "later"))

	assert.Len(t, snapshot, 1)
	assert.Equal(t, "original", s.All()[0].Text)
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	s := NewMemoryStore()
	const writers, perWriter = 8, 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.Append(record(fmt.Sprintf("wamid.%d.%d", w, i), "x"))
				_ = s.All()
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, s.Len())
}
