package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"
)

// RedisStoreOperations is the slice of Redis behaviour the dashboard cache
// depends on.
type RedisStoreOperations interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (interface{}, error)
	Delete(ctx context.Context, keys ...string) error
	SAdd(ctx context.Context, key string, members ...interface{}) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// DashboardCache memoizes dashboard stats per (role, requester). Every
// written key is tracked in a Redis set so invalidation removes exactly the
// dashboard entries and nothing else sharing the database.
type DashboardCache struct {
	redisClient RedisStoreOperations

	hits          atomic.Int64
	misses        atomic.Int64
	invalidations atomic.Int64
}

type CacheStats struct {
	Hits          int64    `json:"hits"`
	Misses        int64    `json:"misses"`
	Invalidations int64    `json:"invalidations"`
	TrackedKeys   []string `json:"trackedKeys"`
}

func NewDashboardCache(redisClient RedisStoreOperations) *DashboardCache {
	return &DashboardCache{redisClient: redisClient}
}

// Key builds the cache key for a requester's dashboard view.
func Key(role string, userID string) string {
	return fmt.Sprintf("%s%s:%s", consts.DashboardCacheKeyPrefix, role, userID)
}

// Get returns the cached stats for the requester, or found=false on any
// miss, decode failure or Redis error.
func (c *DashboardCache) Get(ctx context.Context, role string, userID string) (*models.DashboardStats, bool) {
	key := Key(role, userID)

	raw, err := c.redisClient.Get(ctx, key)
	if err != nil {
		c.misses.Add(1)
		return nil, false
	}

	data, ok := raw.([]byte)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	var stats models.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		logger.Warn(ctx, "Dashboard cache entry %s failed to decode: %v", key, err)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return &stats, true
}

// Put stores the stats under the requester's key and tracks the key for
// later invalidation.
func (c *DashboardCache) Put(ctx context.Context, role string, userID string, stats *models.DashboardStats) error {
	key := Key(role, userID)

	data, err := json.Marshal(stats)
	if err != nil {
		logger.Error(ctx, "Error marshaling dashboard stats: %v", err)
		return err
	}

	ttl := time.Duration(configs.DASHBOARD_CACHE_TTL_MINUTES) * time.Minute
	if err := c.redisClient.Set(ctx, key, data, ttl); err != nil {
		logger.Error(ctx, "Error saving dashboard stats to redis: %v", err)
		return err
	}

	if err := c.redisClient.SAdd(ctx, consts.DashboardCacheKeySet, key); err != nil {
		logger.Error(ctx, "Error tracking dashboard cache key %s: %v", key, err)
		return err
	}

	logger.Info(ctx, "Successfully saved dashboard stats to redis with key %s", key)
	return nil
}

// Invalidate drops every tracked dashboard entry. Called after any write
// that changes loan or payment data.
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	keys, err := c.redisClient.SMembers(ctx, consts.DashboardCacheKeySet)
	if err != nil {
		logger.Error(ctx, "Error listing dashboard cache keys: %v", err)
		return err
	}

	if len(keys) > 0 {
		if err := c.redisClient.Delete(ctx, keys...); err != nil {
			logger.Error(ctx, "Error deleting dashboard cache entries: %v", err)
			return err
		}
	}

	if err := c.redisClient.Delete(ctx, consts.DashboardCacheKeySet); err != nil {
		logger.Error(ctx, "Error clearing dashboard cache key set: %v", err)
		return err
	}

	c.invalidations.Add(1)
	logger.Info(ctx, "Invalidated %d dashboard cache entries", len(keys))
	return nil
}

// Stats reports counters plus the currently tracked keys.
func (c *DashboardCache) Stats(ctx context.Context) CacheStats {
	keys, err := c.redisClient.SMembers(ctx, consts.DashboardCacheKeySet)
	if err != nil {
		logger.Warn(ctx, "Error listing dashboard cache keys: %v", err)
		keys = nil
	}

	return CacheStats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Invalidations: c.invalidations.Load(),
		TrackedKeys:   keys,
	}
}
