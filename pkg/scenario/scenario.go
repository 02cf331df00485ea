package scenario

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/coordkit/pkg/dispatch"
	"github.com/dmitrymomot/coordkit/pkg/gate"
	"github.com/dmitrymomot/coordkit/pkg/group"
	"github.com/dmitrymomot/coordkit/pkg/logger"
	"github.com/dmitrymomot/coordkit/pkg/resource"
	"github.com/dmitrymomot/coordkit/pkg/roundid"
	"github.com/dmitrymomot/coordkit/pkg/unit"
)

// SequentialMutations returns the list mutations of the sequential demo, one
// per fetched image.
func SequentialMutations() []resource.Mutation {
	return []resource.Mutation{
		resource.AppendOp("1"),
		resource.AppendOp("2"),
		resource.AppendOp("3"),
	}
}

// GroupedMutations returns the list mutations of the grouped demo, one per
// fetched image.
func GroupedMutations() []resource.Mutation {
	return []resource.Mutation{
		resource.AppendOp("1"),
		resource.RemoveAllOp(),
		resource.AppendOp("3", "4", "5", "6"),
	}
}

// Sequential fetches three images from src one after another under a gate.
// Each completion applies the matching SequentialMutations entry to list, so
// a successful run always leaves ["1", "2", "3"] appended. Mutations are
// applied for failed fetches too.
func Sequential(ctx context.Context, src unit.Unit, list *resource.List, log *slog.Logger, opts ...gate.Option) (gate.Report, error) {
	log = orDefault(log)
	ctx, _ = roundid.Ensure(ctx)
	steps := buildSteps(ctx, src, list, log, SequentialMutations())

	g := gate.New(append([]gate.Option{gate.WithLogger(log)}, opts...)...)
	future := g.Start(ctx, steps...)
	log.InfoContext(ctx, "start fetching images", logger.Units(len(steps)))
	return future.Await()
}

// Grouped fetches three images from src concurrently. Completions apply
// GroupedMutations to list in whatever order the fetches finish; once all of
// them have, "finished fetching images" is logged and onDone, which may be
// nil, runs on exec. Grouped returns without waiting.
func Grouped(ctx context.Context, src unit.Unit, list *resource.List, exec dispatch.Executor, log *slog.Logger, onDone func()) (*group.Tracker, error) {
	log = orDefault(log)
	ctx, _ = roundid.Ensure(ctx)
	steps := buildSteps(ctx, src, list, log, GroupedMutations())

	tracker, err := group.New(group.WithLogger(log)).Run(ctx, exec, func() {
		log.InfoContext(ctx, "finished fetching images", slog.Any("items", list.Snapshot()))
		if onDone != nil {
			onDone()
		}
	}, steps...)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "waiting for images to finish fetching", logger.Pending(tracker.Pending()))
	return tracker, nil
}

func buildSteps(ctx context.Context, src unit.Unit, list *resource.List, log *slog.Logger, muts []resource.Mutation) []unit.Step {
	out := make([]unit.Step, len(muts))
	for i, mut := range muts {
		n := i + 1
		out[i] = unit.Step{
			Name: "image-" + strconv.Itoa(n),
			Unit: src,
			Handle: func(res unit.Result) {
				log.InfoContext(ctx, "finished fetching image "+strconv.Itoa(n),
					logger.PayloadSize(len(res.Payload)),
					logger.Error(res.Err),
				)
				mut(list)
			},
		}
	}
	return out
}

func orDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
