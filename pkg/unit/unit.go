package unit

import (
	"context"
	"sync"

	"github.com/dmitrymomot/coordkit/pkg/async"
	"github.com/dmitrymomot/coordkit/pkg/fetch"
)

// Result is the outcome of one unit launch. Payload is nil when Err is set.
type Result struct {
	Payload []byte
	Err     error
}

// OK reports whether the unit succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Completion receives the result of a unit. It must be invoked exactly once
// per launch.
type Completion func(Result)

// Unit is an asynchronous operation. Start returns immediately and later
// invokes done exactly once, on an unspecified goroutine.
//
// A unit that never calls done stalls any coordinator that waits for it.
type Unit interface {
	Start(ctx context.Context, done Completion)
}

// Func adapts a plain function to the Unit interface.
type Func func(ctx context.Context, done Completion)

func (f Func) Start(ctx context.Context, done Completion) {
	f(ctx, done)
}

// FromFetcher returns a unit that runs f on a new goroutine and reports the
// payload or a *fetch.Error through done. The unit holds no state, so the same
// unit may be started concurrently.
func FromFetcher(f fetch.Fetcher) Unit {
	return Func(func(ctx context.Context, done Completion) {
		go func() {
			data, err := f.Fetch(ctx)
			if err != nil {
				done(Result{Err: fetch.Wrap(sourceOf(f), err)})
				return
			}
			done(Result{Payload: data})
		}()
	})
}

func sourceOf(f fetch.Fetcher) string {
	if s, ok := f.(interface{ Source() string }); ok {
		return s.Source()
	}
	return "unit"
}

// Once guards done so that only the first call is delivered. Every later call
// is dropped and reported through onDuplicate, which may be nil.
func Once(done Completion, onDuplicate func()) Completion {
	var once sync.Once
	return func(res Result) {
		delivered := false
		once.Do(func() {
			delivered = true
			done(res)
		})
		if !delivered && onDuplicate != nil {
			onDuplicate()
		}
	}
}

// Await starts u and returns a future resolved by its first completion.
func Await(ctx context.Context, u Unit) *async.Future[Result] {
	future, resolve := async.NewPromise[Result]()
	u.Start(ctx, func(res Result) {
		resolve(res, res.Err)
	})
	return future
}

// Step pairs a unit with the handler that runs inside its completion. Handle
// is where callers mutate shared state; it may be nil.
type Step struct {
	Name   string
	Unit   Unit
	Handle Completion
}

// Handler returns Handle, or a no-op when it is nil.
func (s Step) Handler() Completion {
	if s.Handle == nil {
		return func(Result) {}
	}
	return s.Handle
}
