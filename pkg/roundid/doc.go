// Package roundid tags a coordination round with a correlation identifier.
//
// Every gate or group run stores a round id in its context (see Ensure), so
// log records produced by the coordinator, its units and its completion
// handlers can be correlated. Ids are UUIDv4 strings unless the caller
// supplies its own through WithContext; ids that are empty, longer than 128
// characters or contain characters outside [a-zA-Z0-9_-] are replaced.
//
// LoggerExtractor plugs into the logger package:
//
//	log := logger.New(logger.WithContextExtractors(roundid.LoggerExtractor()))
//	ctx, _ := roundid.Ensure(context.Background())
//	log.InfoContext(ctx, "started") // ... round_id=<uuid>
package roundid
