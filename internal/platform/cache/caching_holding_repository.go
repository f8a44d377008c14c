// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"cryptofolio/internal/feature/portfolio/domain/entity"
	"cryptofolio/internal/feature/portfolio/usecase"
)

const defaultTTL = 30 * time.Second

var _ usecase.HoldingRepository = (*CachingHoldingRepository)(nil)

// CachingHoldingRepository decorates a HoldingRepository with Redis caching.
// The full list and symbol lookups are cached; every write drops the whole namespace.
type CachingHoldingRepository struct {
	inner     usecase.HoldingRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingHoldingRepository decorates a HoldingRepository with Redis caching.
// If ttl is 0, it defaults to 30 seconds. If namespace is empty, it uses "holdings".
func NewCachingHoldingRepository(rdb *redis.Client, ttl time.Duration, inner usecase.HoldingRepository, namespace string) *CachingHoldingRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = "holdings"
	}
	return &CachingHoldingRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns all holdings, checking the cache first.
func (c *CachingHoldingRepository) List(ctx context.Context) ([]entity.Holding, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}
	key := c.namespace + ":list"

	var out []entity.Holding
	if readThrough(ctx, c.rdb, key, &out) {
		return out, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	store(ctx, c.rdb, key, out, c.ttl)
	return out, nil
}

// FindBySymbol looks a holding up by symbol, checking the cache first.
// Misses from the store are not cached.
func (c *CachingHoldingRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Holding, error) {
	if c.rdb == nil {
		return c.inner.FindBySymbol(ctx, symbol)
	}
	key := fmt.Sprintf("%s:symbol:%s", c.namespace, safe(symbol))

	var out entity.Holding
	if readThrough(ctx, c.rdb, key, &out) {
		return &out, nil
	}

	h, err := c.inner.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	store(ctx, c.rdb, key, h, c.ttl)
	return h, nil
}

// FindByID is not cached.
func (c *CachingHoldingRepository) FindByID(ctx context.Context, id int64) (*entity.Holding, error) {
	return c.inner.FindByID(ctx, id)
}

// Create inserts a holding and invalidates the namespace.
func (c *CachingHoldingRepository) Create(ctx context.Context, h *entity.Holding) error {
	if err := c.inner.Create(ctx, h); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update applies the patch and invalidates the namespace.
func (c *CachingHoldingRepository) Update(ctx context.Context, id int64, patch entity.HoldingPatch, at time.Time) (*entity.Holding, error) {
	h, err := c.inner.Update(ctx, id, patch, at)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return h, nil
}

// Delete removes the holding and invalidates the namespace.
func (c *CachingHoldingRepository) Delete(ctx context.Context, id int64) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingHoldingRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	// Best effort: a stale entry expires with its TTL
	_ = deleteByPattern(ctx, c.rdb, c.namespace+":*")
}

// readThrough decodes the cached value at key into out.
// A corrupted entry is deleted and reported as a miss.
func readThrough(ctx context.Context, rdb *redis.Client, key string, out any) bool {
	b, err := rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, out); err == nil {
		return true
	}
	_ = rdb.Del(ctx, key).Err()
	return false
}

// store writes v to key (best effort).
func store(ctx context.Context, rdb *redis.Client, key string, v any, ttl time.Duration) {
	if b, err := json.Marshal(v); err == nil {
		_ = rdb.Set(ctx, key, b, ttl).Err()
	}
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func deleteByPattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return strings.ToUpper(s)
}
