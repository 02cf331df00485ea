// Package async provides small generic helpers for running work asynchronously
// and for turning callback-style completions into awaitable values.
//
// The package is centred around Future, the eventual result of an
// asynchronous operation. A Future is obtained either from Async, which starts
// the supplied function on its own goroutine, or from NewPromise, which hands
// back the resolve function so that any callback can complete the future:
//
//	fut, resolve := async.NewPromise[[]byte]()
//	fetchImage(func(data []byte, err error) {
//	    resolve(data, err)
//	})
//	data, err := fut.AwaitContext(ctx)
//
// A Future is resolved exactly once. Resolve reports false on every call after
// the first one, which lets callers detect completion callbacks that fire more
// than once.
//
// # Waiting
//
// Await blocks without limit, AwaitContext stops on context cancellation and
// AwaitWithTimeout stops after a fixed duration. IsComplete and Done allow
// polling or selecting on completion. WaitAll collects the results of many
// futures and joins their errors.
//
// # Error Handling
//
// Futures carry whatever error the work produced. The package itself only adds
// ErrTimeout and ErrCanceled for abandoned waits.
package async
