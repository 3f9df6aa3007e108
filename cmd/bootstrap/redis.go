package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"tablebook/internal/infra/cache"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewAvailabilityCache,
		func(c queries.AvailabilityCache) commands.AvailabilityInvalidator { return c },
	),
)

// NewAvailabilityCache wires Redis when configured and a noop otherwise, so
// the engine runs fine without a cache tier.
func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config) queries.AvailabilityCache {
	if cfg.Redis.Addr == "" {
		slog.Info("redis not configured, availability caching disabled")
		return cache.NoopAvailabilityCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	slog.Info("availability cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	return cache.NewAvailabilityCache(client, cfg.Redis)
}
