package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisGetter defines the redis command used by RedisFetcher.
// *redis.Client satisfies it.
type RedisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisConfig identifies a payload stored under a single redis key.
type RedisConfig struct {
	ConnectionURL  string        `env:"FETCH_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Key            string        `env:"FETCH_REDIS_KEY,required"`
	ConnectTimeout time.Duration `env:"FETCH_REDIS_CONNECT_TIMEOUT" envDefault:"5s"`
	MaxBytes       int64         `env:"FETCH_MAX_BYTES" envDefault:"10485760"`
}

// RedisFetcher reads a fixed key. It is safe for concurrent use.
type RedisFetcher struct {
	client   RedisGetter
	key      string
	maxBytes int64
}

// NewRedisFetcher wraps an existing client.
func NewRedisFetcher(client RedisGetter, cfg RedisConfig) (*RedisFetcher, error) {
	if client == nil || cfg.Key == "" {
		return nil, ErrInvalidConfig
	}
	return &RedisFetcher{client: client, key: cfg.Key, maxBytes: cfg.MaxBytes}, nil
}

// ConnectRedis parses cfg.ConnectionURL, pings the server and returns a
// fetcher backed by the new client. The caller owns the returned client.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*RedisFetcher, *redis.Client, error) {
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, nil, errors.Join(ErrInvalidConfig, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, Wrap(cfg.ConnectionURL, err)
	}

	f, err := NewRedisFetcher(client, cfg)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return f, client, nil
}

// Source returns the key as "redis:key".
func (f *RedisFetcher) Source() string {
	return "redis:" + f.key
}

// Fetch reads the key. A missing key fails with ErrNotFound.
func (f *RedisFetcher) Fetch(ctx context.Context) ([]byte, error) {
	data, err := f.client.Get(ctx, f.key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, Wrap(f.Source(), ErrNotFound)
	case err != nil:
		classified, _ := classifyContextError(err)
		return nil, Wrap(f.Source(), classified)
	}

	limit := f.maxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	if int64(len(data)) > limit {
		return nil, Wrap(f.Source(), ErrPayloadTooLarge)
	}
	return data, nil
}
