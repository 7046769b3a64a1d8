// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// stats.go provides a Valkey-backed cache for the dashboard analytics
// summary. The summary aggregates article counts per status plus view and
// click totals; recomputing it on every dashboard load hits several tables,
// so the serialized result is cached and invalidated on article mutations.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// statsKey is the Valkey key holding the serialized summary.
	statsKey = "stats:summary"

	// DefaultStatsTTL bounds staleness even if an invalidation is missed.
	DefaultStatsTTL = 2 * time.Minute
)

// StatsCache caches the dashboard analytics summary in Valkey.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a stats cache backed by the given Valkey client.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl == 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Get unmarshals the cached summary into dst. Returns false on miss.
func (sc *StatsCache) Get(ctx context.Context, dst any) bool {
	val, err := sc.client.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("stats cache get error", "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		slog.Warn("stats cache decode error", "error", err)
		return false
	}
	slog.Debug("stats cache hit")
	return true
}

// Set stores the summary with the configured TTL.
func (sc *StatsCache) Set(ctx context.Context, summary any) {
	payload, err := json.Marshal(summary)
	if err != nil {
		slog.Warn("stats cache encode error", "error", err)
		return
	}
	if err := sc.client.Set(ctx, statsKey, payload, sc.ttl).Err(); err != nil {
		slog.Warn("stats cache set error", "error", err)
	}
}

// Invalidate drops the cached summary. Called after any article mutation —
// the next dashboard load recomputes from Postgres.
func (sc *StatsCache) Invalidate(ctx context.Context) {
	if err := sc.client.Del(ctx, statsKey).Err(); err != nil {
		slog.Warn("stats cache invalidate error", "error", err)
	}
	slog.Debug("stats cache invalidated")
}
