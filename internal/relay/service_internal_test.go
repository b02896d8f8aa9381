package relay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nfrund/wabridge/internal/domain"
	"github.com/nfrund/wabridge/internal/topicmgr"
)

func TestNewLocalID(t *testing.T) {
	a, b := newLocalID(), newLocalID()

	assert.True(t, strings.HasPrefix(a, domain.LocalIDPrefix))
	assert.NotEqual(t, a, b)
	assert.False(t, strings.HasPrefix(a, "wamid."))
}

func TestRegisterTopicsWithManager(t *testing.T) {
	m := topicmgr.NewManager()
	assert.NoError(t, RegisterTopicsWithManager(m))
	assert.NoError(t, RegisterTopicsWithManager(m))
	assert.Len(t, m.ListByModule("relay"), 1)
}
