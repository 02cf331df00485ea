// Package fetch provides the external sources that asynchronous units pull
// their payload from.
//
// Every source implements Fetcher, a context-aware call returning the payload
// bytes of one fixed resource:
//
//   - HTTPFetcher downloads a URL with GET.
//   - S3Fetcher downloads one object via aws-sdk-go-v2.
//   - RedisFetcher reads one key via go-redis.
//   - FetcherFunc adapts a plain function, mostly for tests.
//
// Sources keep no per-call state, so sibling units may invoke the same source
// concurrently.
//
// # Configuration
//
// HTTPConfig, S3Config and RedisConfig carry env tags and can be populated with
// the config package:
//
//	var cfg fetch.HTTPConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	src, err := fetch.NewHTTPFetcher(cfg)
//
// # Error Handling
//
// Every failure is returned as *Error, the single fetch error kind, which
// carries the source name and unwraps to ErrFetch plus a classified cause such
// as ErrNotFound, ErrAccessDenied, ErrTimeout or ErrPayloadTooLarge:
//
//	if errors.Is(err, fetch.ErrNotFound) {
//	    // the resource is gone
//	}
package fetch
