package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fbsts/stats-api/internal/metrics"
)

// Cache is a short-TTL read-through JSON cache over Redis. It is strictly
// advisory: every failure path degrades to re-running the query, and there is
// no invalidation beyond expiry.
type Cache struct {
	rdb    RedisClient
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewCache(rdb RedisClient, ttl time.Duration, logger *zap.SugaredLogger) *Cache {
	if ttl <= 0 {
		ttl = 90 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

// Key builds a cache key from the endpoint name and its distinguishing parts.
func Key(endpoint string, parts ...string) string {
	return "fbsts:" + endpoint + ":" + strings.Join(parts, ":")
}

// Get unmarshals a cached payload into dst, reporting whether it was a hit.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.Inc()
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		c.logger.Warnw("Discarding undecodable cache entry", "key", key, "error", err)
		metrics.CacheMisses.Inc()
		return false
	}
	metrics.CacheHits.Inc()
	return true
}

// Set stores a payload under key for the cache TTL. Errors are logged and
// swallowed.
func (c *Cache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Warnw("Failed to marshal cache entry", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warnw("Failed to store cache entry", "key", key, "error", err)
	}
}

// ModeKey renders the common (season, competition, mode) tuple for cache keys.
func ModeKey(f MatchFilter, mode Mode) string {
	return fmt.Sprintf("%s:%s:%s", f.Season, f.Competition, mode)
}
