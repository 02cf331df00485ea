// Package gate runs asynchronous units strictly one after another.
//
// A Gate is a counting signal of capacity one that starts closed. For each
// step the driving loop starts the unit and then waits on the signal; the
// unit's completion runs the step handler and only then opens the signal.
// Unit i+1 therefore never starts before the handler of unit i has returned,
// and handlers that mutate shared state need no further locking.
//
//	g := gate.New(gate.WithUnitTimeout(10 * time.Second))
//	report, err := g.Run(ctx,
//	    unit.Step{Name: "1", Unit: img, Handle: func(unit.Result) { list.Append("1") }},
//	    unit.Step{Name: "2", Unit: img, Handle: func(unit.Result) { list.Append("2") }},
//	)
//
// Run blocks the calling goroutine; Start runs it in the background and
// returns an async.Future. A failed unit still opens the gate and is counted
// in Report.Failed.
//
// A unit that never completes blocks the round. With WithUnitTimeout the
// round fails with ErrStalled; otherwise only ctx cancellation ends it, with
// ErrCanceled. Once Run has failed, a late completion from the abandoned unit
// no longer runs its handler. Duplicate completions are dropped and logged.
//
// WithOnDone registers a callback fired on the configured dispatch.Executor
// after a round completes successfully.
package gate
