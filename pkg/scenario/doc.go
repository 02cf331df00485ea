// Package scenario wires the coordinators to the image-fetch demos.
//
// Sequential fetches three images through a gate and appends "1", "2" and
// "3" to a shared list, one per completion, so the list always ends up in
// that order. Grouped fetches three images concurrently, and their
// completions append "1", clear the list and append "3".."6" in whatever order
// the fetches finish; the continuation then logs the final contents.
// SequentialMutations and GroupedMutations expose the mutations so callers
// can enumerate the valid outcomes with resource.Outcomes.
//
// Any unit.Unit can serve as the image source. The demo binary uses
// unit.FromFetcher with an HTTP, S3 or redis fetcher.
package scenario
