package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type healthcheckConfig struct {
	timeout  time.Duration
	writeKey string
}

// HealthcheckOption configures Healthcheck.
type HealthcheckOption func(*healthcheckConfig)

// WithHealthcheckTimeout bounds each check. Zero keeps the caller's deadline.
func WithHealthcheckTimeout(d time.Duration) HealthcheckOption {
	return func(c *healthcheckConfig) { c.timeout = d }
}

// WithWriteCheck makes the check also write key with a short TTL and read it
// back, so a read-only replica or a full instance reports not ready.
func WithWriteCheck(key string) HealthcheckOption {
	return func(c *healthcheckConfig) { c.writeKey = key }
}

// Healthcheck returns a readiness check that pings client and, with
// WithWriteCheck, verifies the instance accepts writes.
func Healthcheck(client redis.UniversalClient, opts ...HealthcheckOption) func(context.Context) error {
	cfg := &healthcheckConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(ctx context.Context) error {
		if cfg.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
			defer cancel()
		}

		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if cfg.writeKey == "" {
			return nil
		}

		stamp := time.Now().UTC().Format(time.RFC3339Nano)
		if err := client.Set(ctx, cfg.writeKey, stamp, 10*time.Second).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		got, err := client.Get(ctx, cfg.writeKey).Result()
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if got != stamp {
			return errors.Join(ErrHealthcheckFailed, errors.New("write check read back a different value"))
		}
		return nil
	}
}
