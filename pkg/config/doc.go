// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files. With no arguments the default .env
//     in the working directory is loaded, and Load does that implicitly once.
//   - Load parses the environment into any struct annotated with env tags and
//     caches the result per type, so later calls are served from memory.
//   - MustLoad and MustLoadEnv panic instead of returning errors.
//   - ForceReloadConfig and ResetCache drop cached values, mainly for tests.
//
// Configuration structs live next to their consumers: fetch.HTTPConfig,
// fetch.S3Config, fetch.RedisConfig, gate.Config and logger.Config.
//
//	var gcfg gate.Config
//	config.MustLoad(&gcfg)
//	g := gate.New(gate.WithConfig(gcfg))
//
// Errors can be matched with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile, ErrNilPointer and ErrConfigNotLoaded.
package config
