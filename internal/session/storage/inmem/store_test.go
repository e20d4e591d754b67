package inmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	store := NewOf(map[string]string{"token": "abc"})

	value, ok := store.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	require.NoError(t, store.Set("username", "alice"))
	require.NoError(t, store.Remove("token"))
	require.NoError(t, store.Remove("token"))

	assert.Equal(t, map[string]string{"username": "alice"}, store.Snapshot())
}
