package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	activeListKey = "profiles:active"
	cacheTTL      = 5 * time.Minute
)

// Cache is a read-through cache for the active profile list. The catalog
// is read on every storefront render, so the list is kept hot in redis
// and invalidated on any profile mutation.
type Cache struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewCache creates a profile cache on top of the given redis client
func NewCache(rdb *redis.Client, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{rdb: rdb, logger: logger}
}

// GetActiveList returns the cached active profile list, or ok=false on miss
func (c *Cache) GetActiveList(ctx context.Context) ([]*Profile, bool) {
	data, err := c.rdb.Get(ctx, activeListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("profile cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var profiles []*Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		c.logger.Warn("profile cache entry corrupt, dropping", zap.Error(err))
		c.rdb.Del(ctx, activeListKey)
		return nil, false
	}

	return profiles, true
}

// SetActiveList stores the active profile list with a TTL
func (c *Cache) SetActiveList(ctx context.Context, profiles []*Profile) {
	data, err := json.Marshal(profiles)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, activeListKey, data, cacheTTL).Err(); err != nil {
		c.logger.Warn("profile cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached list after a profile mutation
func (c *Cache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, activeListKey).Err(); err != nil {
		c.logger.Warn("profile cache invalidation failed", zap.Error(err))
	}
}
