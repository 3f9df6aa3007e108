// Package cache holds the Redis-backed read caches. Every operation is
// best-effort: a cache outage degrades to recomputation, never to an error.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/queries"
)

type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, cfg config.RedisConfig) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: cfg.TTL}
}

func availabilityKey(tenantID uuid.UUID, date reservation.Date, partySize int) string {
	return fmt.Sprintf("availability:%s:%s:%d", tenantID, date, partySize)
}

// dateIndexKey tracks every cached key for a tenant+date so invalidation
// does not need a keyspace scan.
func dateIndexKey(tenantID uuid.UUID, date reservation.Date) string {
	return fmt.Sprintf("availability-index:%s:%s", tenantID, date)
}

func (c *AvailabilityCache) Get(ctx context.Context, tenantID uuid.UUID, date reservation.Date, partySize int) (*queries.AvailabilityView, bool) {
	raw, err := c.client.Get(ctx, availabilityKey(tenantID, date, partySize)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.WarnContext(ctx, "availability cache read failed", "error", err)
		}
		return nil, false
	}
	var view queries.AvailabilityView
	if err := json.Unmarshal(raw, &view); err != nil {
		slog.WarnContext(ctx, "availability cache entry is corrupt, dropping", "error", err)
		c.client.Del(ctx, availabilityKey(tenantID, date, partySize))
		return nil, false
	}
	return &view, true
}

func (c *AvailabilityCache) Set(ctx context.Context, tenantID uuid.UUID, date reservation.Date, partySize int, view *queries.AvailabilityView) {
	raw, err := json.Marshal(view)
	if err != nil {
		slog.WarnContext(ctx, "availability cache encode failed", "error", err)
		return
	}
	key := availabilityKey(tenantID, date, partySize)
	index := dateIndexKey(tenantID, date)

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, raw, c.ttl)
	pipe.SAdd(ctx, index, key)
	pipe.Expire(ctx, index, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.WarnContext(ctx, "availability cache write failed", "error", err)
	}
}

func (c *AvailabilityCache) InvalidateDate(ctx context.Context, tenantID uuid.UUID, date reservation.Date) {
	index := dateIndexKey(tenantID, date)
	keys, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		slog.WarnContext(ctx, "availability cache invalidation failed", "error", err)
		return
	}
	keys = append(keys, index)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.WarnContext(ctx, "availability cache invalidation failed", "error", err)
	}
}

// NoopAvailabilityCache is wired when Redis is not configured.
type NoopAvailabilityCache struct{}

func (NoopAvailabilityCache) Get(context.Context, uuid.UUID, reservation.Date, int) (*queries.AvailabilityView, bool) {
	return nil, false
}

func (NoopAvailabilityCache) Set(context.Context, uuid.UUID, reservation.Date, int, *queries.AvailabilityView) {
}

func (NoopAvailabilityCache) InvalidateDate(context.Context, uuid.UUID, reservation.Date) {}
