package roundid

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
)

// Key is the log attribute name used by LoggerExtractor.
const Key = "round_id"

const maxIDLength = 128

var validIDRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

type contextKey struct{}

// New returns a fresh round id.
func New() string {
	return uuid.New().String()
}

// Valid reports whether id may be used as a round id.
func Valid(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, ok := ctx.Value(contextKey{}).(string)
	if !ok {
		return ""
	}
	return id
}

// Ensure returns ctx unchanged when it already carries a valid round id.
// Otherwise a new id is generated and stored.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); Valid(id) {
		return ctx, id
	}
	id := New()
	return WithContext(ctx, id), id
}

// LoggerExtractor returns a context extractor for logger.WithContextExtractors.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String(Key, id), true
		}
		return slog.Attr{}, false
	}
}
