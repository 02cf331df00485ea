package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxBytes caps payloads when a source is configured without a limit.
const DefaultMaxBytes int64 = 10 << 20

// Fetcher retrieves the payload of one fixed resource. Implementations hold no
// per-call state and are safe to invoke concurrently from sibling units.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// readLimited reads body up to limit bytes and fails with ErrPayloadTooLarge
// when more data is available.
func readLimited(body io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrPayloadTooLarge, limit)
	}
	return data, nil
}

// classifyContextError maps context failures onto package sentinels and
// reports whether err was one.
func classifyContextError(err error) (error, bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrTimeout, err), true
	case errors.Is(err, context.Canceled):
		return errors.Join(ErrCanceled, err), true
	default:
		return err, false
	}
}
