// Package cache implements ports.PlanCache (spec §4.7): a Redis-backed,
// ephemeral memoizer for solved plans, grounded on the teacher's unused
// go-redis/v9 require and on other_examples' fleettracker-backend
// cache-key/cache-round-trip shape (generateCacheKey/getCachedRoute/
// cacheRoute), here given a real call site in the POST /plans handler
// (internal/api/handlers.PlanHandler).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/platform/obs"
)

// RedisPlanCache is a redis.Client-backed implementation of ports.PlanCache.
type RedisPlanCache struct {
	Client *redis.Client
}

// NewRedisPlanCache wraps an already-configured redis.Client.
func NewRedisPlanCache(client *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{Client: client}
}

// Get fetches a cached plan by key. A miss is reported via ok=false, err=nil.
func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ *domain.Plan, ok bool, err error) {
	defer obs.Time(ctx, "plancache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("plan cache: get %q: %w", key, err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, false, fmt.Errorf("plan cache: decode %q: %w", key, err)
	}
	return &plan, true, nil
}

// Put stores a plan under key with the given TTL (0 means no expiration).
func (c *RedisPlanCache) Put(ctx context.Context, key string, plan *domain.Plan, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "plancache.Put")(&err)

	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}
	if plan == nil {
		return errors.New("plan cache: plan is nil")
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("plan cache: encode %q: %w", key, err)
	}

	if err := c.Client.Set(ctx, cacheKey(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("plan cache: set %q: %w", key, err)
	}
	return nil
}

func cacheKey(key string) string {
	return "plan:" + key
}

// NoOpPlanCache is a ports.PlanCache that never hits, for deployments run
// without REDIS_ADDR configured.
type NoOpPlanCache struct{}

func (NoOpPlanCache) Get(ctx context.Context, key string) (*domain.Plan, bool, error) {
	return nil, false, nil
}

func (NoOpPlanCache) Put(ctx context.Context, key string, plan *domain.Plan, ttl time.Duration) error {
	return nil
}
