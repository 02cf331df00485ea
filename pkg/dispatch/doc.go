// Package dispatch provides the execution contexts that coordinators hand
// their final continuations to.
//
// Executor is a single-method interface. Inline runs work on the calling
// goroutine, Goroutine spawns a goroutine per call and Queue is a serial queue
// backed by one long-lived goroutine, the equivalent of a UI main queue:
//
//	main := dispatch.NewQueue()
//	defer main.Close()
//
//	group.Run(ctx, main, func() {
//	    // runs on the queue goroutine, after every unit finished
//	}, steps...)
//
// Work submitted to a Queue must not block waiting on the outcome of work
// queued after it. Blocking coordinators such as the sequential gate belong on
// background goroutines, never on the queue.
package dispatch
