// Package unit defines the asynchronous operation that coordinators drive.
//
// A Unit is started with a Completion callback and must invoke that callback
// exactly once, from any goroutine, with a Result holding either the payload or
// the error. Units built with FromFetcher run a fetch.Fetcher on their own
// goroutine and hold no shared state, so sibling units may run concurrently.
//
// Step bundles a unit with the handler that runs inside its completion. The
// gate and group packages take steps rather than bare units because shared
// state is mutated from that handler.
//
// Once wraps a completion so duplicate invocations are dropped instead of
// corrupting coordinator state, and Await bridges a unit into an
// async.Future:
//
//	res, err := unit.Await(ctx, unit.FromFetcher(src)).AwaitContext(ctx)
package unit
