package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/match-predictions/internal/platform/logging"
	"github.com/riskibarqy/match-predictions/internal/platform/resilience"
)

type RedisConfig struct {
	KeyPrefix string
	TTL       time.Duration
	Breaker   *resilience.CircuitBreaker
}

// Redis keeps values in a local Store and shares them across replicas through
// redis. Redis failures fall through to the loader.
type Redis[T any] struct {
	client  redis.Cmdable
	local   *Store
	prefix  string
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
	flight  singleflight.Group
}

func NewRedis[T any](client redis.Cmdable, local *Store, cfg RedisConfig, logger *logging.Logger) *Redis[T] {
	if logger == nil {
		logger = logging.Default()
	}
	if local == nil {
		local = NewStore(cfg.TTL)
	}

	return &Redis[T]{
		client:  client,
		local:   local,
		prefix:  cfg.KeyPrefix,
		ttl:     cfg.TTL,
		breaker: cfg.Breaker,
		logger:  logger,
	}
}

func (c *Redis[T]) GetOrLoad(ctx context.Context, key string, load Loader[T]) (T, error) {
	var zero T
	if load == nil {
		return zero, fmt.Errorf("loader is required")
	}

	if value, ok := c.local.Get(ctx, key); ok {
		if typed, ok := value.(T); ok {
			return typed, nil
		}
	}

	value, err, _ := c.flight.Do(key, func() (any, error) {
		if remote, remaining, ok := c.readRemote(ctx, key); ok {
			c.local.SetWithTTL(ctx, key, remote, remaining)
			return remote, nil
		}

		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.writeRemote(ctx, key, loaded)
		c.local.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return value.(T), nil
}

// readRemote returns the shared value and how long redis keeps it. The local
// copy must not outlive the remote one.
func (c *Redis[T]) readRemote(ctx context.Context, key string) (T, time.Duration, bool) {
	var out T
	var raw []byte
	var remaining time.Duration

	err := c.breaker.Execute(func() error {
		var err error
		raw, err = c.client.Get(ctx, c.prefix+key).Bytes()
		if err != nil {
			return err
		}
		remaining, err = c.client.PTTL(ctx, c.prefix+key).Result()
		return err
	}, isRedisFailure)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "redis cache read failed", "key", key, "error", err)
		}
		return out, 0, false
	}
	// -1 (no expiry) and -2 (gone since GET) come back as tiny negative durations.
	if remaining <= 0 {
		remaining = c.ttl
	}
	if c.ttl > 0 && remaining > c.ttl {
		remaining = c.ttl
	}

	if err := sonic.Unmarshal(raw, &out); err != nil {
		c.logger.WarnContext(ctx, "redis cache decode failed", "key", key, "error", err)
		return out, 0, false
	}
	return out, remaining, true
}

func (c *Redis[T]) writeRemote(ctx context.Context, key string, value T) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "redis cache encode failed", "key", key, "error", err)
		return
	}

	err = c.breaker.Execute(func() error {
		return c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err()
	}, isRedisFailure)
	if err != nil {
		c.logger.WarnContext(ctx, "redis cache write failed", "key", key, "error", err)
	}
}

func isRedisFailure(err error) bool {
	return err != nil && !errors.Is(err, redis.Nil)
}
