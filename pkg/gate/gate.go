package gate

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/coordkit/pkg/async"
	"github.com/dmitrymomot/coordkit/pkg/dispatch"
	"github.com/dmitrymomot/coordkit/pkg/logger"
	"github.com/dmitrymomot/coordkit/pkg/roundid"
	"github.com/dmitrymomot/coordkit/pkg/unit"
)

// Report summarises one round.
type Report struct {
	RoundID   string
	Units     int
	Completed int
	Failed    int
	Duration  time.Duration
}

// Gate runs steps strictly one after another: step i+1 is started only after
// the completion handler of step i has returned. A Gate holds no per-round
// state and may run several rounds concurrently.
type Gate struct {
	log         *slog.Logger
	unitTimeout time.Duration
	exec        dispatch.Executor
	onDone      func(Report)
}

// New creates a gate.
func New(opts ...Option) *Gate {
	g := &Gate{
		log:  slog.Default(),
		exec: dispatch.Inline,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(logger.Component("gate"))
	return g
}

// Run executes steps in order and blocks until the last completion handler
// has returned, a unit stalls or ctx ends. Failed units still open the gate
// for the next step.
func (g *Gate) Run(ctx context.Context, steps ...unit.Step) (Report, error) {
	for i, step := range steps {
		if step.Unit == nil {
			return Report{Units: len(steps)}, fmt.Errorf("%w: step %q", ErrNilUnit, stepName(i, step))
		}
	}

	ctx, id := roundid.Ensure(ctx)
	r := &round{gate: g, ctx: ctx, id: id, started: time.Now(), units: len(steps)}

	// Capacity one, taken up front: the gate starts closed and only a
	// completion can open it.
	r.sem = semaphore.NewWeighted(1)
	_ = r.sem.Acquire(context.Background(), 1)

	g.log.InfoContext(ctx, "round started", logger.Units(len(steps)))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return r.fail(fmt.Errorf("%w: before step %q: %w", ErrCanceled, stepName(i, step), err))
		}
		r.launch(i, step)
		if err := r.wait(i, step); err != nil {
			return r.fail(err)
		}
	}

	report := r.report()
	g.log.InfoContext(ctx, "round finished",
		logger.Units(report.Units),
		slog.Int("failed", report.Failed),
		logger.Duration(report.Duration),
	)
	if g.onDone != nil {
		g.exec.Execute(func() { g.onDone(report) })
	}
	return report, nil
}

// Start runs the round on a background goroutine and returns its future.
func (g *Gate) Start(ctx context.Context, steps ...unit.Step) *async.Future[Report] {
	return async.Async(ctx, steps, func(ctx context.Context, steps []unit.Step) (Report, error) {
		return g.Run(ctx, steps...)
	})
}

type round struct {
	gate      *Gate
	ctx       context.Context
	sem       *semaphore.Weighted
	id        string
	started   time.Time
	units     int
	completed atomic.Int64
	failed    atomic.Int64

	// mu orders completion handlers against abort: once aborted is set no
	// handler of this round runs.
	mu      sync.Mutex
	aborted bool
}

func (r *round) launch(i int, step unit.Step) {
	log := r.gate.log.With(logger.Step(stepName(i, step)), logger.Index(i))
	handle := step.Handler()

	done := unit.Once(func(res unit.Result) {
		r.mu.Lock()
		if r.aborted {
			r.mu.Unlock()
			log.WarnContext(r.ctx, "late completion dropped", logger.Error(res.Err))
			return
		}
		if res.OK() {
			r.completed.Add(1)
		} else {
			r.failed.Add(1)
			log.WarnContext(r.ctx, "unit failed", logger.Error(res.Err))
		}
		handle(res)
		r.mu.Unlock()
		r.sem.Release(1)
	}, func() {
		log.WarnContext(r.ctx, "duplicate completion dropped")
	})

	log.DebugContext(r.ctx, "unit started")
	step.Unit.Start(r.ctx, done)
}

func (r *round) wait(i int, step unit.Step) error {
	waitCtx := r.ctx
	timeout := r.gate.unitTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(r.ctx, timeout)
		defer cancel()
	}

	if err := r.sem.Acquire(waitCtx, 1); err != nil {
		if ctxErr := r.ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: waiting for step %q: %w", ErrCanceled, stepName(i, step), ctxErr)
		}
		return fmt.Errorf("%w: step %q (#%d) within %s", ErrStalled, stepName(i, step), i, timeout)
	}
	return nil
}

func (r *round) fail(err error) (Report, error) {
	// Waits for a handler that is already running.
	r.mu.Lock()
	r.aborted = true
	r.mu.Unlock()

	report := r.report()
	r.gate.log.ErrorContext(r.ctx, "round aborted",
		logger.Error(err),
		slog.Int("completed", report.Completed+report.Failed),
		logger.Units(report.Units),
	)
	return report, err
}

func (r *round) report() Report {
	return Report{
		RoundID:   r.id,
		Units:     r.units,
		Completed: int(r.completed.Load()),
		Failed:    int(r.failed.Load()),
		Duration:  time.Since(r.started),
	}
}

func stepName(i int, step unit.Step) string {
	if step.Name != "" {
		return step.Name
	}
	return strconv.Itoa(i + 1)
}
