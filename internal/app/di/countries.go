package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"worldexplorer/internal/app/config"
	"worldexplorer/internal/feature/countries/usecase"
	"worldexplorer/internal/platform/cache"
	"worldexplorer/internal/platform/externalapi/restcountries"
	infrahttp "worldexplorer/internal/platform/http"
	"worldexplorer/internal/shared/ratelimiter"
)

// NewCountryRepository creates the REST Countries client, wrapped in the
// Redis cache when rdb is non-nil.
func NewCountryRepository(cfg config.Countries, rdb *redis.Client, observer cache.Observer) usecase.CountryRepository {
	rcCfg := restcountries.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
	}
	httpClient := infrahttp.NewHTTPClient(rcCfg.Timeout, "")
	limiter := ratelimiter.NewRateLimiter(rcCfg.RateLimit, time.Minute)
	upstream := restcountries.NewRestCountriesRepository(rcCfg, httpClient, limiter)

	// Redisキャッシュでラップ
	if rdb == nil {
		return upstream
	}
	return cache.NewCachingCountryRepository(rdb, cfg.CacheTTL, upstream, "countries", observer)
}
