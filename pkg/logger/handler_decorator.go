package logger

import (
	"context"
	"log/slog"
	"maps"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// ContextHandler adds attributes pulled from the record's context, such as the
// round id of the coordinator that logged it. An extracted attribute is
// skipped when the record, or the logger it came from, already carries the
// same key, so an explicit logger.RoundID never shows up twice.
type ContextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
	// keys set through WithAttrs in the innermost open group, which is
	// where record and extracted attributes land too.
	preset map[string]struct{}
}

// NewContextHandler decorates next. Nil extractors are dropped.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &ContextHandler{next: next, extractors: clean}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle runs the extractors for every record, so values are read from the
// context in effect at the logging call.
func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.extractors) == 0 || ctx == nil {
		return h.next.Handle(ctx, rec)
	}

	var present map[string]struct{}
	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok || attr.Equal(slog.Attr{}) {
			continue
		}
		if present == nil {
			present = h.keys(rec)
		}
		if _, dup := present[attr.Key]; dup {
			continue
		}
		present[attr.Key] = struct{}{}
		rec.AddAttrs(attr)
	}
	return h.next.Handle(ctx, rec)
}

// keys collects the keys already attached to rec in its namespace.
func (h *ContextHandler) keys(rec slog.Record) map[string]struct{} {
	present := make(map[string]struct{}, len(h.preset)+rec.NumAttrs())
	maps.Copy(present, h.preset)
	rec.Attrs(func(a slog.Attr) bool {
		present[a.Key] = struct{}{}
		return true
	})
	return present
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	child := &ContextHandler{
		next:       h.next.WithAttrs(attrs),
		extractors: h.extractors,
		preset:     h.preset,
	}
	if len(attrs) > 0 {
		child.preset = make(map[string]struct{}, len(h.preset)+len(attrs))
		maps.Copy(child.preset, h.preset)
		for _, a := range attrs {
			child.preset[a.Key] = struct{}{}
		}
	}
	return child
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{
		next:       h.next.WithGroup(name),
		extractors: h.extractors,
	}
}
