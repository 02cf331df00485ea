package group

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/coordkit/pkg/dispatch"
	"github.com/dmitrymomot/coordkit/pkg/logger"
	"github.com/dmitrymomot/coordkit/pkg/roundid"
	"github.com/dmitrymomot/coordkit/pkg/unit"
)

// Option configures a Group.
type Option func(*Group)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(g *Group) {
		if log != nil {
			g.log = log
		}
	}
}

// Group launches every step at once and fires a continuation after the last
// completion handler has returned. It holds no per-round state.
//
// Handlers of one round run concurrently; the group does not serialise their
// access to shared state.
type Group struct {
	log *slog.Logger
}

// New creates a group.
func New(opts ...Option) *Group {
	g := &Group{log: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(logger.Component("group"))
	return g
}

// Run starts all steps and returns without waiting for them. onComplete, which
// may be nil, runs exactly once on exec after every step's handler returned;
// with no steps it is scheduled before Run returns. A nil exec runs
// onComplete on the goroutine of the last completion.
//
// The returned tracker can be used to observe progress.
func (g *Group) Run(ctx context.Context, exec dispatch.Executor, onComplete func(), steps ...unit.Step) (*Tracker, error) {
	for i, step := range steps {
		if step.Unit == nil {
			return nil, fmt.Errorf("%w: step %q", ErrNilUnit, stepName(i, step))
		}
	}

	ctx, _ = roundid.Ensure(ctx)
	tracker := NewTracker(len(steps))

	g.log.DebugContext(ctx, "round started", logger.Units(len(steps)))
	err := tracker.Notify(exec, func() {
		g.log.DebugContext(ctx, "round finished", logger.Units(len(steps)))
		if onComplete != nil {
			onComplete()
		}
	})
	if err != nil {
		return nil, err
	}

	for i, step := range steps {
		g.launch(ctx, tracker, i, step)
	}
	return tracker, nil
}

func (g *Group) launch(ctx context.Context, tracker *Tracker, i int, step unit.Step) {
	log := g.log.With(logger.Step(stepName(i, step)), logger.Index(i))
	handle := step.Handler()

	done := unit.Once(func(res unit.Result) {
		defer tracker.Leave()
		if !res.OK() {
			log.WarnContext(ctx, "unit failed", logger.Error(res.Err))
		}
		handle(res)
	}, func() {
		log.WarnContext(ctx, "duplicate completion dropped")
	})

	step.Unit.Start(ctx, done)
}

// Run is shorthand for New().Run with the default logger.
func Run(ctx context.Context, exec dispatch.Executor, onComplete func(), steps ...unit.Step) (*Tracker, error) {
	return New().Run(ctx, exec, onComplete, steps...)
}

func stepName(i int, step unit.Step) string {
	if step.Name != "" {
		return step.Name
	}
	return strconv.Itoa(i + 1)
}
