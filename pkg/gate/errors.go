package gate

import "errors"

var (
	// ErrStalled is returned when a unit does not complete within the unit timeout.
	ErrStalled = errors.New("gate: unit did not complete")

	// ErrCanceled is returned when the context ends while the gate is waiting.
	ErrCanceled = errors.New("gate: round canceled")

	// ErrNilUnit is returned when a step has no unit to start.
	ErrNilUnit = errors.New("gate: step has nil unit")
)
