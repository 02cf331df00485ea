package dispatch

import (
	"sync"
	"sync/atomic"
)

// Queue is a serial executor: functions run one at a time, in submission
// order, on a single dedicated goroutine. It plays the role of a UI-affine
// main queue. Never block inside a queued function waiting for other work
// queued behind it.
//
// All methods are safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pending  []func()
	closed   bool
	executed atomic.Uint64
	done     chan struct{}
}

// NewQueue starts the queue goroutine. Close must be called to stop it.
func NewQueue() *Queue {
	q := &Queue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// Execute schedules fn. It never blocks. After Close, fn is silently dropped.
func (q *Queue) Execute(fn func()) {
	q.TryExecute(fn)
}

// TryExecute schedules fn and reports whether it was accepted.
func (q *Queue) TryExecute(fn func()) bool {
	if fn == nil {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.pending = append(q.pending, fn)
	q.cond.Signal()
	return true
}

// Executed returns how many functions have finished running.
func (q *Queue) Executed() uint64 {
	return q.executed.Load()
}

// Close stops accepting work, runs everything already queued and waits for
// the queue goroutine to exit. It is safe to call Close multiple times.
// Calling Close from inside a queued function deadlocks.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cond.Broadcast()
	}
	q.mu.Unlock()
	<-q.done
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
		q.executed.Add(1)
	}
}
