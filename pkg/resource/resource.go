package resource

import (
	"slices"
	"sync"
)

// Mode selects how a List protects its elements.
type Mode int

const (
	// Strict guards every operation with a mutex. Each operation is atomic,
	// but the order of operations issued from different goroutines is not.
	Strict Mode = iota
	// Unguarded performs no locking. It is only safe when callers serialise
	// access themselves, as the sequential gate does.
	Unguarded
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Unguarded:
		return "unguarded"
	default:
		return "unknown"
	}
}

// List is an ordered sequence of strings shared between completion handlers.
type List struct {
	mode  Mode
	mu    sync.Mutex
	items []string
}

// New creates a list in the given mode holding a copy of initial.
func New(mode Mode, initial ...string) *List {
	return &List{mode: mode, items: slices.Clone(initial)}
}

// Mode returns the synchronisation mode chosen at construction.
func (l *List) Mode() Mode {
	return l.mode
}

func (l *List) lock() {
	if l.mode == Strict {
		l.mu.Lock()
	}
}

func (l *List) unlock() {
	if l.mode == Strict {
		l.mu.Unlock()
	}
}

// Append adds values to the end of the list in one operation. Passing several
// values is the bulk append.
func (l *List) Append(values ...string) {
	if len(values) == 0 {
		return
	}
	l.lock()
	defer l.unlock()
	l.items = append(l.items, values...)
}

// Remove deletes the first occurrence of value and reports whether one was
// found.
func (l *List) Remove(value string) bool {
	l.lock()
	defer l.unlock()
	i := slices.Index(l.items, value)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// RemoveAll empties the list.
func (l *List) RemoveAll() {
	l.lock()
	defer l.unlock()
	l.items = l.items[:0]
}

// Snapshot returns a copy of the current elements. It never returns nil.
func (l *List) Snapshot() []string {
	l.lock()
	defer l.unlock()
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of elements.
func (l *List) Len() int {
	l.lock()
	defer l.unlock()
	return len(l.items)
}
