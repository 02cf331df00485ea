package fetch

import (
	"errors"
	"fmt"
)

var (
	ErrFetch           = errors.New("fetch: failed")
	ErrNotFound        = errors.New("fetch: resource not found")
	ErrBadStatus       = errors.New("fetch: unexpected response status")
	ErrPayloadTooLarge = errors.New("fetch: payload exceeds maximum size")
	ErrAccessDenied    = errors.New("fetch: access denied")
	ErrTimeout         = errors.New("fetch: timed out")
	ErrCanceled        = errors.New("fetch: canceled")
	ErrInvalidConfig   = errors.New("fetch: invalid configuration")
)

// Error is the single failure kind surfaced by fetch sources. Source names the
// fetched resource (a URL, bucket/key or redis key).
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

// Unwrap exposes both the cause and ErrFetch so that errors.Is(err, ErrFetch)
// holds for every fetch failure.
func (e *Error) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// Wrap turns err into an *Error for source. Nil stays nil and an existing
// *Error is returned unchanged.
func Wrap(source string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return &Error{Source: source, Err: err}
}
