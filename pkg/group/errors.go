package group

import "errors"

var (
	// ErrNegativeCounter is the panic value of Leave when called more often
	// than the tracker was entered.
	ErrNegativeCounter = errors.New("group: negative in-flight counter")

	// ErrDrained is the panic value of Enter on a tracker that already drained.
	ErrDrained = errors.New("group: tracker already drained")

	// ErrAlreadyNotified is returned when a second continuation is registered.
	ErrAlreadyNotified = errors.New("group: continuation already registered")

	// ErrNilContinuation is returned by Notify for a nil function.
	ErrNilContinuation = errors.New("group: nil continuation")

	// ErrNilUnit is returned when a step has no unit to start.
	ErrNilUnit = errors.New("group: step has nil unit")
)
