// Package logger builds the structured slog loggers used across coordkit.
//
// New creates a *slog.Logger configured by Option functions:
//
//   - WithDevelopment / WithStaging / WithProduction / WithEnvironment select a
//     preset (text at debug level for development, JSON at info otherwise).
//   - WithConfig applies a preset plus LOG_LEVEL / LOG_FORMAT overrides from an
//     env-populated Config.
//   - WithFormat, WithLevel, WithOutput and WithAttr tune the handler.
//   - WithContextExtractors / WithContextValue inject attributes from the
//     context passed to InfoContext and friends.
//
// The handler returned by New is wrapped in a ContextHandler, which is how the
// round id stored by the roundid package ends up on every record a coordinator
// logs:
//
//	log := logger.New(
//	    logger.WithDevelopment("image-demo"),
//	    logger.WithContextExtractors(roundid.LoggerExtractor()),
//	)
//	ctx := roundid.WithContext(ctx, roundid.New())
//	log.InfoContext(ctx, "round started", logger.Units(3))
//
// Attribute helpers (Component, Step, Index, Pending, Duration, Error, ...)
// keep key names consistent. Error and Errors return an empty attribute for
// nil errors, so they can be passed unconditionally.
package logger
