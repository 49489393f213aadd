// Package cache invalidates the blog's Redis read cache after the store was seeded.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"blogseed/internal/observability"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

type metricsHook struct {
	errors *prometheus.CounterVec
}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) && h.errors != nil {
			h.errors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) && h.errors != nil {
			h.errors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// InitRedis connects to addr, which is either host:port or a redis:// URL. When the
// address is empty or the server cannot be reached the cache stays disabled and every
// invalidation is a no-op. Command errors are counted into errs when it is non-nil.
func InitRedis(addr string, errs *prometheus.CounterVec) {
	client = nil
	if addr == "" {
		return
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			observability.Logger.Warn("invalid REDIS_URL, continuing without cache",
				slog.String("error", err.Error()))
			return
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	c := redis.NewClient(opts)
	c.AddHook(metricsHook{errors: errs})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		observability.Logger.Warn("redis unreachable, continuing without cache",
			slog.String("error", err.Error()))
		_ = c.Close()
		return
	}
	client = c
	observability.Logger.Info("redis connected")
}

// GetClient returns the current Redis client, nil when the cache is disabled.
func GetClient() *redis.Client {
	return client
}

// Close releases the client if one is open.
func Close() {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		observability.Logger.Error("error closing redis", slog.String("error", err.Error()))
	}
	client = nil
}
