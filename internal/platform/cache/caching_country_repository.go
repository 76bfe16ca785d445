// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"worldexplorer/internal/feature/countries/domain/entity"
	"worldexplorer/internal/feature/countries/usecase"
)

// Observer is notified of every cache lookup result.
type Observer interface {
	CacheHit()
	CacheMiss()
}

// CachingCountryRepository decorates a CountryRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Failed lookups are never cached.
type CachingCountryRepository struct {
	inner     usecase.CountryRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	observer  Observer
}

var _ usecase.CountryRepository = (*CachingCountryRepository)(nil)

// NewCachingCountryRepository decorates a CountryRepository with Redis caching.
// If ttl is 0, it defaults to 6 hours. If namespace is empty, it uses "countries".
// A nil rdb disables caching; a nil observer is allowed.
func NewCachingCountryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CountryRepository, namespace string, observer Observer) *CachingCountryRepository {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	if namespace == "" {
		namespace = "countries"
	}
	return &CachingCountryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		observer:  observer,
	}
}

// All returns every country, cached under a single key.
func (c *CachingCountryRepository) All(ctx context.Context) ([]entity.Country, error) {
	return cached(ctx, c, c.cacheKey("all"), c.inner.All)
}

// ByName caches per lower-cased search term.
func (c *CachingCountryRepository) ByName(ctx context.Context, name string) ([]entity.Country, error) {
	return cached(ctx, c, c.cacheKey("name", strings.ToLower(name)), func(ctx context.Context) ([]entity.Country, error) {
		return c.inner.ByName(ctx, name)
	})
}

// ByRegion caches per region.
func (c *CachingCountryRepository) ByRegion(ctx context.Context, region string) ([]entity.Country, error) {
	return cached(ctx, c, c.cacheKey("region", strings.ToLower(region)), func(ctx context.Context) ([]entity.Country, error) {
		return c.inner.ByRegion(ctx, region)
	})
}

// ByCode caches per upper-cased code.
func (c *CachingCountryRepository) ByCode(ctx context.Context, code string) (*entity.Country, error) {
	return cached(ctx, c, c.cacheKey("alpha", strings.ToUpper(code)), func(ctx context.Context) (*entity.Country, error) {
		return c.inner.ByCode(ctx, code)
	})
}

// ByCodes caches per code set, independent of the order codes are given in.
func (c *CachingCountryRepository) ByCodes(ctx context.Context, codes []string) ([]entity.Country, error) {
	sorted := slices.Clone(codes)
	slices.Sort(sorted)
	return cached(ctx, c, c.cacheKey("codes", strings.Join(sorted, ",")), func(ctx context.Context) ([]entity.Country, error) {
		return c.inner.ByCodes(ctx, codes)
	})
}

// cached checks the cache first, then falls back to load and stores its result.
func cached[T any](ctx context.Context, c *CachingCountryRepository, key string, load func(context.Context) (T, error)) (T, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load(ctx)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			c.hit()
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && err != redis.Nil {
		slog.Warn("country cache read failed", "key", key, "error", err)
	}
	c.miss()

	// 2) Fallback to upstream
	out, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// cacheKey generates a cache key from the namespace and escaped parts.
func (c *CachingCountryRepository) cacheKey(parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, c.namespace)
	for _, p := range parts {
		escaped = append(escaped, safe(p))
	}
	return strings.Join(escaped, ":")
}

func (c *CachingCountryRepository) hit() {
	if c.observer != nil {
		c.observer.CacheHit()
	}
}

func (c *CachingCountryRepository) miss() {
	if c.observer != nil {
		c.observer.CacheMiss()
	}
}
