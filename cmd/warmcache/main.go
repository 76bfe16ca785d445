// Command warmcache prefetches country data into Redis so the first
// requests after a deploy are served from cache.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"worldexplorer/internal/app/config"
	"worldexplorer/internal/app/di"
	"worldexplorer/internal/feature/countries/usecase"
	"worldexplorer/internal/platform/logger"
	infraredis "worldexplorer/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rdb, err := infraredis.NewRedisClient(ctx, infraredis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Error("Redis is required to warm the cache", "error", err)
		os.Exit(1)
	}
	defer func() { _ = rdb.Close() }()

	uc := usecase.NewCountriesUsecase(di.NewCountryRepository(cfg.Countries, rdb, nil))

	res := uc.Warm(ctx)
	log.Info("warm cache finished", "loaded", res.Loaded, "failed", res.Failed)
	if res.Failed > 0 {
		os.Exit(1)
	}
}
