package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"worldexplorer/internal/app/config"
	"worldexplorer/internal/app/di"
	"worldexplorer/internal/app/router"
	authhandler "worldexplorer/internal/feature/auth/transport/handler"
	authusecase "worldexplorer/internal/feature/auth/usecase"
	countrieshandler "worldexplorer/internal/feature/countries/transport/handler"
	countriesusecase "worldexplorer/internal/feature/countries/usecase"
	"worldexplorer/internal/platform/http/middleware"
	jwtmw "worldexplorer/internal/platform/jwt"
	"worldexplorer/internal/platform/logger"
	"worldexplorer/internal/platform/password"
	infraredis "worldexplorer/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	userRepo, closeDB, err := di.NewUserRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB(context.Background())

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		log.Warn("Redis unavailable. Running without cache.", "reason", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	metrics := middleware.NewMetrics()

	// Repository
	countryRepo := di.NewCountryRepository(cfg.Countries, rdb, metrics)

	// Usecase
	tokens := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expire)
	authUC := authusecase.NewAuthUsecase(userRepo, password.NewBcryptHasher(cfg.BcryptCost), tokens)
	countriesUC := countriesusecase.NewCountriesUsecase(countryRepo)

	// ルータ生成
	engine := router.NewRouter(router.Deps{
		Environment: cfg.Environment,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
		Metrics:     metrics,
		Tokens:      tokens,
		Users:       authUC,
		Auth:        authhandler.NewAuthHandler(authUC),
		Countries:   countrieshandler.NewCountriesHandler(countriesUC),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "environment", cfg.Environment, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
