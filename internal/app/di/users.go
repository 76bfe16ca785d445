// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"worldexplorer/internal/app/config"
	authadapters "worldexplorer/internal/feature/auth/adapters"
	"worldexplorer/internal/feature/auth/usecase"
	"worldexplorer/internal/platform/db"
	platformmongo "worldexplorer/internal/platform/mongo"
)

// CloseFunc releases the resources behind a repository.
type CloseFunc func(ctx context.Context)

// NewUserRepository opens the credential store selected by DATABASE_DRIVER.
// MongoDB is the default; postgres, mysql and sqlite go through GORM.
func NewUserRepository(ctx context.Context, cfg *config.Config) (usecase.UserRepository, CloseFunc, error) {
	if cfg.Database.Driver == config.DriverMongo {
		client, database, err := platformmongo.Connect(ctx, platformmongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		repo := authadapters.NewUserMongo(database)
		// メール一意性はインデックスが保証するため常に作成する
		if err := repo.EnsureIndexes(ctx); err != nil {
			platformmongo.Disconnect(ctx, client)
			return nil, nil, err
		}
		return repo, func(ctx context.Context) { platformmongo.Disconnect(ctx, client) }, nil
	}

	gdb, err := db.OpenDB(db.Config{
		Driver:        cfg.Database.Driver,
		DSN:           cfg.Database.DSN,
		RunMigrations: cfg.RunMigrations,
	})
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	closeFn := func(context.Context) {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}
	return authadapters.NewUserGorm(gdb), closeFn, nil
}
