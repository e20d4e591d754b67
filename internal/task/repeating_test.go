package task

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatingTask(t *testing.T) {
	t.Run("executes repeatedly until stopped", func(t *testing.T) {
		var n atomic.Int32
		task := NewRepeating(func() { n.Add(1) }, 5*time.Millisecond)

		task.Start()
		require.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, time.Millisecond)
		task.Stop(false)
		assert.False(t, task.Running())

		stopped := n.Load()
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, stopped, n.Load())
	})

	t.Run("forced execution on stop", func(t *testing.T) {
		var n atomic.Int32
		task := NewRepeating(func() { n.Add(1) }, time.Hour)

		task.Start()
		task.Stop(true)
		assert.Equal(t, int32(1), n.Load())
	})

	t.Run("stop without start is a no-op", func(t *testing.T) {
		task := NewRepeating(func() { t.Fatal("must not run") }, time.Hour)
		task.Stop(true)
	})
}
