// Package db opens the relational credential store through GORM.
package db

import (
	"fmt"
	"log/slog"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"worldexplorer/internal/feature/auth/domain/entity"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// Config selects the SQL dialect and its connection string.
type Config struct {
	Driver         string
	DSN            string
	RunMigrations  bool
	ConnectTimeout time.Duration
}

// Opener opens a gorm connection for a DSN. Tests swap it out.
type Opener func(dsn string) (*gorm.DB, error)

// Dialector returns the gorm dialector for a driver name.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return gmysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewOpener returns an Opener for driver with duplicate-key translation enabled.
func NewOpener(driver string) (Opener, error) {
	if _, err := Dialector(driver, ""); err != nil {
		return nil, err
	}
	return func(dsn string) (*gorm.DB, error) {
		d, _ := Dialector(driver, dsn)
		return gorm.Open(d, &gorm.Config{
			// gorm.ErrDuplicatedKey をドライバー横断で受け取るため
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Warn),
		})
	}, nil
}

// OpenDB connects (retrying until cfg.ConnectTimeout) and migrates when asked.
func OpenDB(cfg Config) (*gorm.DB, error) {
	opener, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	db, err := ConnectWithRetry(cfg.DSN, timeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying...", "error", err)
		time.Sleep(retryInterval)
	}
}

// Migrate はユーザーテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.User{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
