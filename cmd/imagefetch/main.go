// Command imagefetch runs the sequential and grouped image-fetch demos
// against an HTTP, S3, redis or mongo source configured through the environment.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/coordkit/pkg/config"
	"github.com/dmitrymomot/coordkit/pkg/dispatch"
	"github.com/dmitrymomot/coordkit/pkg/fetch"
	"github.com/dmitrymomot/coordkit/pkg/gate"
	"github.com/dmitrymomot/coordkit/pkg/logger"
	"github.com/dmitrymomot/coordkit/pkg/resource"
	"github.com/dmitrymomot/coordkit/pkg/roundid"
	"github.com/dmitrymomot/coordkit/pkg/scenario"
	"github.com/dmitrymomot/coordkit/pkg/unit"
)

type demoConfig struct {
	Source    string `env:"FETCH_SOURCE" envDefault:"http"`
	Mode      string `env:"DEMO_MODE" envDefault:"both"`
	HTTPDebug bool   `env:"FETCH_HTTP_DEBUG" envDefault:"false"`
}

const (
	modeSequential = "sequential"
	modeGrouped    = "grouped"
	modeBoth       = "both"
)

func (c demoConfig) validate() error {
	switch c.Mode {
	case modeSequential, modeGrouped, modeBoth:
	default:
		return fmt.Errorf("%w: unknown mode %q", fetch.ErrInvalidConfig, c.Mode)
	}
	switch c.Source {
	case "http", "s3", "redis", "mongo":
	default:
		return fmt.Errorf("%w: unknown source %q", fetch.ErrInvalidConfig, c.Source)
	}
	return nil
}

func (c demoConfig) runs(mode string) bool {
	return c.Mode == mode || c.Mode == modeBoth
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.New(
		logger.WithConfig(logCfg),
		logger.WithContextExtractors(roundid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(ctx, log); err != nil {
		log.Error("demo failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var cfg demoConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	var gateCfg gate.Config
	if err := config.Load(&gateCfg); err != nil {
		return err
	}

	src, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	if cfg.runs(modeSequential) {
		list := resource.New(resource.Unguarded)
		report, err := scenario.Sequential(ctx, src, list, log, gate.WithConfig(gateCfg))
		if err != nil {
			return err
		}
		log.Info("sequential demo finished",
			logger.RoundID(report.RoundID),
			slog.Any("items", list.Snapshot()),
			slog.Int("failed", report.Failed),
			logger.Duration(report.Duration),
		)
	}

	if cfg.runs(modeGrouped) {
		mainQueue := dispatch.NewQueue()
		defer mainQueue.Close()

		list := resource.New(resource.Strict)
		tracker, err := scenario.Grouped(ctx, src, list, mainQueue, log, nil)
		if err != nil {
			return err
		}
		select {
		case <-tracker.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func newSource(ctx context.Context, cfg demoConfig) (unit.Unit, func(), error) {
	noop := func() {}

	switch cfg.Source {
	case "http":
		var httpCfg fetch.HTTPConfig
		if err := config.Load(&httpCfg); err != nil {
			return nil, nil, err
		}
		var opts []fetch.HTTPOption
		if cfg.HTTPDebug {
			opts = append(opts, fetch.WithHTTPDebug(os.Stderr))
		}
		f, err := fetch.NewHTTPFetcher(httpCfg, opts...)
		if err != nil {
			return nil, nil, err
		}
		return unit.FromFetcher(f), noop, nil

	case "s3":
		var s3Cfg fetch.S3Config
		if err := config.Load(&s3Cfg); err != nil {
			return nil, nil, err
		}
		f, err := fetch.NewS3Fetcher(ctx, s3Cfg)
		if err != nil {
			return nil, nil, err
		}
		return unit.FromFetcher(f), noop, nil

	case "redis":
		var redisCfg fetch.RedisConfig
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, err
		}
		f, client, err := fetch.ConnectRedis(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return unit.FromFetcher(f), func() { _ = client.Close() }, nil

	case "mongo":
		var mongoCfg fetch.MongoConfig
		if err := config.Load(&mongoCfg); err != nil {
			return nil, nil, err
		}
		f, client, err := fetch.ConnectMongo(ctx, mongoCfg)
		if err != nil {
			return nil, nil, err
		}
		return unit.FromFetcher(f), func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown source %q", fetch.ErrInvalidConfig, cfg.Source)
	}
}
