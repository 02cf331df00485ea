package group

import (
	"sync"

	"github.com/dmitrymomot/coordkit/pkg/dispatch"
)

// Tracker counts in-flight units and fires a single continuation when the
// count drops to zero. Unlike sync.WaitGroup it never blocks: the
// continuation is scheduled on an executor instead.
//
// A tracker is single-use. It drains when Leave brings the counter to zero,
// or when Notify finds it at zero. After that Enter panics.
type Tracker struct {
	mu       sync.Mutex
	pending  int
	drained  bool
	notified bool
	exec     dispatch.Executor
	fn       func()
	done     chan struct{}
}

// NewTracker returns a tracker with n units already entered.
// It panics with ErrNegativeCounter if n is negative.
func NewTracker(n int) *Tracker {
	if n < 0 {
		panic(ErrNegativeCounter)
	}
	return &Tracker{pending: n, done: make(chan struct{})}
}

// Enter records one more in-flight unit.
func (t *Tracker) Enter() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.drained {
		panic(ErrDrained)
	}
	t.pending++
}

// Leave records a finished unit. The call that brings the counter to zero
// schedules the continuation, if one is registered.
func (t *Tracker) Leave() {
	t.mu.Lock()
	if t.pending == 0 {
		t.mu.Unlock()
		panic(ErrNegativeCounter)
	}
	t.pending--
	if t.pending > 0 {
		t.mu.Unlock()
		return
	}
	exec, fn := t.drain()
	t.mu.Unlock()

	if fn != nil {
		exec.Execute(fn)
	}
}

// Notify registers fn to run on exec once the tracker drains. If the counter
// is already zero fn is scheduled immediately. A nil exec runs fn inline.
func (t *Tracker) Notify(exec dispatch.Executor, fn func()) error {
	if fn == nil {
		return ErrNilContinuation
	}
	if exec == nil {
		exec = dispatch.Inline
	}

	t.mu.Lock()
	if t.notified {
		t.mu.Unlock()
		return ErrAlreadyNotified
	}
	t.notified = true
	t.exec, t.fn = exec, fn
	if t.pending > 0 {
		t.mu.Unlock()
		return nil
	}
	exec, fn = t.drain()
	t.mu.Unlock()

	if fn != nil {
		exec.Execute(fn)
	}
	return nil
}

// drain marks the tracker drained and hands out the continuation at most
// once. Must be called with t.mu held.
func (t *Tracker) drain() (dispatch.Executor, func()) {
	if !t.drained {
		t.drained = true
		close(t.done)
	}
	exec, fn := t.exec, t.fn
	t.fn = nil
	return exec, fn
}

// Done returns a channel closed when the tracker drains.
func (t *Tracker) Done() <-chan struct{} {
	return t.done
}

// Pending returns the current in-flight count.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}
