// Package group runs asynchronous units concurrently and reports when all of
// them have finished.
//
// Tracker is the primitive: a mutex-guarded in-flight counter with a single
// continuation that is scheduled on a dispatch.Executor when the counter
// reaches zero. Every decrement happens under the lock, so the continuation
// fires exactly once no matter how completions race.
//
// Group.Run builds a round on top of it. The counter is preset to the number
// of steps before any unit starts, each completion runs the step handler and
// then leaves, and the caller-supplied onComplete runs once afterwards:
//
//	q := dispatch.NewQueue()
//	defer q.Close()
//
//	_, err := group.New().Run(ctx, q, func() {
//	    log.Info("finished fetching images", "items", list.Snapshot())
//	}, steps...)
//
// Run never blocks. Handlers run concurrently with each other, so any state
// they share must be synchronised by the caller (see resource.Strict).
// Failed units count as finished.
package group
