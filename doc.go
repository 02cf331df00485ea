// Package coordkit coordinates asynchronous units of work that mutate shared
// state.
//
// It offers two strategies over the same unit abstraction (pkg/unit):
//
//   - pkg/gate runs units one after another. A unit starts only after the
//     completion handler of the previous one has returned, so handlers may
//     touch shared state without locks and the result is deterministic.
//   - pkg/group runs units concurrently and fires a single continuation on a
//     chosen executor (pkg/dispatch) once every completion handler returned.
//     Handlers race, so shared state must be synchronised and the result is
//     one of several valid interleavings (see resource.Outcomes).
//
// Units are usually built from a fetch.Fetcher that loads a payload over
// HTTP, from S3 or from redis:
//
//	f, err := fetch.NewHTTPFetcher(fetch.HTTPConfig{URL: "https://example.com/cat.png"})
//	if err != nil {
//		return err
//	}
//	img := unit.FromFetcher(f)
//
//	list := resource.New(resource.Unguarded)
//	report, err := gate.New().Run(ctx,
//		unit.Step{Name: "1", Unit: img, Handle: func(unit.Result) { list.Append("1") }},
//		unit.Step{Name: "2", Unit: img, Handle: func(unit.Result) { list.Append("2") }},
//	)
//
// Supporting packages: pkg/logger (slog factory), pkg/roundid (round
// correlation ids), pkg/config (env loading), pkg/async (futures) and
// pkg/scenario (the two image-fetch demos, also runnable via cmd/imagefetch).
package coordkit
