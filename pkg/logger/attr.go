package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// RoundID records the coordination round identifier under the key "round_id".
// If id is empty, it returns an empty Attr.
func RoundID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("round_id", id)
}

// Step records the step name under the key "step".
func Step(name string) slog.Attr {
	return slog.String("step", name)
}

// Index records the position of a unit within its round under the key "index".
func Index(i int) slog.Attr {
	return slog.Int("index", i)
}

// Units records the number of units in a round under the key "units".
func Units(n int) slog.Attr {
	return slog.Int("units", n)
}

// Pending records the number of in-flight units under the key "pending".
func Pending(n int) slog.Attr {
	return slog.Int("pending", n)
}

// PayloadSize records a payload length in bytes under the key "payload_bytes".
func PayloadSize(n int) slog.Attr {
	return slog.Int("payload_bytes", n)
}
