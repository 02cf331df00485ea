package group_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/coordkit/pkg/dispatch"
	"github.com/dmitrymomot/coordkit/pkg/group"
)

func TestTracker_FiresOnceAfterLastLeave(t *testing.T) {
	t.Parallel()

	tr := group.NewTracker(3)
	var fired atomic.Int32
	require.NoError(t, tr.Notify(dispatch.Inline, func() { fired.Add(1) }))

	tr.Leave()
	tr.Leave()
	assert.Zero(t, fired.Load())
	assert.Equal(t, 1, tr.Pending())

	tr.Leave()
	assert.EqualValues(t, 1, fired.Load())
	assert.Zero(t, tr.Pending())

	select {
	case <-tr.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestTracker_EnterThenNotify(t *testing.T) {
	t.Parallel()

	tr := group.NewTracker(0)
	tr.Enter()
	tr.Enter()

	var fired atomic.Int32
	require.NoError(t, tr.Notify(nil, func() { fired.Add(1) }))
	tr.Leave()
	tr.Leave()
	assert.EqualValues(t, 1, fired.Load())
}

func TestTracker_NotifyAfterDrainFiresImmediately(t *testing.T) {
	t.Parallel()

	tr := group.NewTracker(1)
	tr.Leave()

	var fired atomic.Int32
	require.NoError(t, tr.Notify(dispatch.Inline, func() { fired.Add(1) }))
	assert.EqualValues(t, 1, fired.Load())
}

func TestTracker_ZeroFiresOnNotify(t *testing.T) {
	t.Parallel()

	tr := group.NewTracker(0)
	var fired atomic.Bool
	require.NoError(t, tr.Notify(dispatch.Inline, func() { fired.Store(true) }))
	assert.True(t, fired.Load())
	<-tr.Done()
}

func TestTracker_Errors(t *testing.T) {
	t.Parallel()

	t.Run("second notify", func(t *testing.T) {
		tr := group.NewTracker(1)
		require.NoError(t, tr.Notify(dispatch.Inline, func() {}))
		assert.ErrorIs(t, tr.Notify(dispatch.Inline, func() {}), group.ErrAlreadyNotified)
	})

	t.Run("nil continuation", func(t *testing.T) {
		tr := group.NewTracker(1)
		assert.ErrorIs(t, tr.Notify(dispatch.Inline, nil), group.ErrNilContinuation)
	})

	t.Run("leave below zero panics", func(t *testing.T) {
		tr := group.NewTracker(1)
		tr.Leave()
		assert.PanicsWithError(t, group.ErrNegativeCounter.Error(), tr.Leave)
	})

	t.Run("negative initial count panics", func(t *testing.T) {
		assert.PanicsWithError(t, group.ErrNegativeCounter.Error(), func() { group.NewTracker(-1) })
	})

	t.Run("enter after drain panics", func(t *testing.T) {
		tr := group.NewTracker(1)
		tr.Leave()
		assert.PanicsWithError(t, group.ErrDrained.Error(), tr.Enter)
	})
}

func TestTracker_ConcurrentLeaves(t *testing.T) {
	t.Parallel()

	for round := 0; round < 200; round++ {
		const n = 16
		tr := group.NewTracker(n)
		var fired atomic.Int32
		require.NoError(t, tr.Notify(dispatch.Inline, func() { fired.Add(1) }))

		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				tr.Leave()
			}()
		}
		close(start)
		wg.Wait()

		select {
		case <-tr.Done():
		case <-time.After(time.Second):
			t.Fatalf("round %d did not drain", round)
		}
		require.EqualValues(t, 1, fired.Load(), "round %d", round)
	}
}
