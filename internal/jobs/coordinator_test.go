package jobs

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumenhq/lumen-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDeduplicatesSameKey(t *testing.T) {
	c := NewCoordinator(logger.NewNop())

	var calls int32
	release := make(chan struct{})

	started := c.Run("x", "u1", func() error {
		atomic.AddInt32(&calls, 1)
		<-release
		return nil
	})
	require.True(t, started)

	// Second submission while the first is still running is a no-op.
	started = c.Run("x", "u1", func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	assert.False(t, started)

	close(release)
	require.Eventually(t, func() bool {
		return !c.IsRunning("x", "u1")
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRunReleasesKeyAfterFailure(t *testing.T) {
	c := NewCoordinator(logger.NewNop())

	started := c.Run("x", "u1", func() error {
		return errors.New("boom")
	})
	require.True(t, started)

	require.Eventually(t, func() bool {
		return !c.IsRunning("x", "u1")
	}, time.Second, 5*time.Millisecond)

	// The key must be reusable after a failed run.
	assert.True(t, c.Run("x", "u1", func() error { return nil }))
}

func TestRunReleasesKeyAfterPanic(t *testing.T) {
	c := NewCoordinator(logger.NewNop())

	started := c.Run("x", "u1", func() error {
		panic("boom")
	})
	require.True(t, started)

	require.Eventually(t, func() bool {
		return !c.IsRunning("x", "u1")
	}, time.Second, 5*time.Millisecond)
}

func TestRunAllowsDifferentSubjects(t *testing.T) {
	c := NewCoordinator(logger.NewNop())

	release := make(chan struct{})
	defer close(release)

	require.True(t, c.Run("x", "u1", func() error { <-release; return nil }))
	assert.True(t, c.Run("x", "u2", func() error { <-release; return nil }))
	assert.True(t, c.Run("y", "u1", func() error { <-release; return nil }))
}
