package resource

import (
	"fmt"
	"slices"
)

// Mutation is one change applied to a list from a completion handler.
type Mutation func(*List)

// AppendOp appends values in a single operation.
func AppendOp(values ...string) Mutation {
	values = slices.Clone(values)
	return func(l *List) { l.Append(values...) }
}

// RemoveOp removes the first occurrence of value.
func RemoveOp(value string) Mutation {
	return func(l *List) { l.Remove(value) }
}

// RemoveAllOp empties the list.
func RemoveAllOp() Mutation {
	return func(l *List) { l.RemoveAll() }
}

// Outcomes applies muts to a copy of initial in every possible order and
// returns each distinct final state once, in order of first appearance.
// Concurrent handlers that each apply one mutation atomically always end in
// one of these states.
func Outcomes(initial []string, muts ...Mutation) [][]string {
	seen := make(map[string]struct{})
	var out [][]string

	order := make([]int, len(muts))
	for i := range order {
		order[i] = i
	}

	permute(order, 0, func(perm []int) {
		l := New(Unguarded, initial...)
		for _, i := range perm {
			muts[i](l)
		}
		state := l.Snapshot()
		key := fmt.Sprintf("%q", state)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, state)
	})

	return out
}

// permute calls visit for every permutation of order[k:] (Heap-style swap
// recursion). order is restored before returning.
func permute(order []int, k int, visit func([]int)) {
	if k >= len(order)-1 {
		visit(order)
		return
	}
	for i := k; i < len(order); i++ {
		order[k], order[i] = order[i], order[k]
		permute(order, k+1, visit)
		order[k], order[i] = order[i], order[k]
	}
}

// Contains reports whether state equals one of outcomes.
func Contains(outcomes [][]string, state []string) bool {
	return slices.ContainsFunc(outcomes, func(o []string) bool {
		return slices.Equal(o, state)
	})
}
