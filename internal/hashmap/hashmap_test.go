package hashmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalMap(t *testing.T) {
	obj := NewNormalOf(map[string]int{"a": 1})
	obj.Set("b", 2)

	assert.Equal(t, 2, obj.Size())
	assert.True(t, obj.Has("a"))
	assert.Equal(t, 2, obj.Get("b"))

	obj.Unset("a")
	_, ok := obj.Lookup("a")
	assert.False(t, ok)

	snapshot := obj.Snapshot()
	snapshot["c"] = 3
	assert.False(t, obj.Has("c"))

	obj.Clear()
	assert.Zero(t, obj.Size())
}

func TestExpiringMap(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	obj := NewExpiring[string, int](time.Minute)
	obj.now = func() time.Time { return now }

	obj.Set("a", 1)
	assert.Equal(t, 1, obj.Get("a"))

	now = now.Add(2 * time.Minute)
	obj.Set("b", 2)
	assert.False(t, obj.Has("a"))
	assert.Equal(t, map[string]int{"b": 2}, obj.Snapshot())
	obj.Unset("b")
	assert.Equal(t, 1, obj.Size())

	obj.cleanup()
	assert.Zero(t, obj.Size())
}
