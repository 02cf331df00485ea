package gate

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/coordkit/pkg/dispatch"
)

// Config is the environment-driven gate configuration.
type Config struct {
	// UnitTimeout bounds the wait for each completion. Zero waits until the
	// context ends.
	UnitTimeout time.Duration `env:"GATE_UNIT_TIMEOUT" envDefault:"0s"`
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}

// WithUnitTimeout makes Run fail with ErrStalled when a unit does not complete
// within d. Non-positive values disable the timeout.
func WithUnitTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.unitTimeout = d
		} else {
			g.unitTimeout = 0
		}
	}
}

// WithExecutor sets where the WithOnDone callback runs. Defaults to
// dispatch.Inline, i.e. the goroutine running Run.
func WithExecutor(exec dispatch.Executor) Option {
	return func(g *Gate) {
		if exec != nil {
			g.exec = exec
		}
	}
}

// WithOnDone registers a callback fired once after the last completion of a
// round has returned. It is not fired when Run fails.
func WithOnDone(fn func(Report)) Option {
	return func(g *Gate) {
		g.onDone = fn
	}
}

// WithConfig applies cfg.
func WithConfig(cfg Config) Option {
	return WithUnitTimeout(cfg.UnitTimeout)
}
