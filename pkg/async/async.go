package async

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Future represents the eventual result of an asynchronous computation.
// It is resolved exactly once; later resolutions are ignored.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// resolve stores the outcome and reports whether this call won.
func (f *Future[U]) resolve(res U, err error) bool {
	won := false
	f.once.Do(func() {
		f.result = res
		f.err = err
		close(f.done)
		won = true
	})
	return won
}

// NewPromise returns an unresolved future together with the function that
// resolves it. It bridges callback-style completions into a Future: hand the
// resolve function to the callback and await the future elsewhere.
//
// Only the first call to resolve has an effect; it returns false for every
// subsequent call so callers can detect duplicate completions.
func NewPromise[U any]() (*Future[U], func(U, error) bool) {
	f := newFuture[U]()
	return f, f.resolve
}

// Done returns a channel that is closed once the future is resolved.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future is resolved and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for the future or for ctx to be done, whichever comes
// first. On cancellation the context error is joined with ErrCanceled.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, errors.Join(ErrCanceled, ctx.Err())
	}
}

// AwaitWithTimeout waits for the future for at most timeout.
// If the timeout elapses first, ErrTimeout is returned.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the future is resolved without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn on a new goroutine and returns a Future for its outcome.
// If ctx is already done, fn is not called and the future carries ctx.Err().
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		// Early exit prevents running work for an abandoned round
		select {
		case <-ctx.Done():
			var zero U
			f.resolve(zero, ctx.Err())
			return
		default:
		}

		res, err := fn(ctx, param)
		f.resolve(res, err)
	}()

	return f
}

// WaitAll waits for every future and returns their results in order.
// Unlike a fail-fast join, it always waits for all futures; the returned
// error joins every non-nil future error.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var errs []error

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			errs = append(errs, err)
		}
	}

	return results, errors.Join(errs...)
}
