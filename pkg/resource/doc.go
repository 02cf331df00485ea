// Package resource implements the shared list that completion handlers mutate.
//
// A List is an ordered sequence of strings with append, bulk append, remove and
// remove-all operations. Its Mode decides who is responsible for safety:
//
//   - Strict locks around every operation. Individual operations are atomic,
//     yet handlers running concurrently still apply them in any order, so the
//     final state depends on completion order.
//   - Unguarded never locks. Use it only when access is already serialised,
//     for example by the sequential gate, which fully finishes one handler
//     before starting the next unit.
//
// The group tracker does not serialise handlers. Choosing Strict makes each
// mutation safe but leaves the result order-dependent; choosing Unguarded
// under the tracker is a data race.
//
// Outcomes enumerates every final state a set of mutations can produce when
// applied in arbitrary order, which is how non-deterministic rounds are
// checked:
//
//	muts := []resource.Mutation{
//	    resource.AppendOp("1"),
//	    resource.RemoveAllOp(),
//	    resource.AppendOp("3", "4", "5", "6"),
//	}
//	valid := resource.Outcomes(nil, muts...)
//	ok := resource.Contains(valid, list.Snapshot())
package resource
