// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/stackit/cliparse"
	"github.com/danielhkuo/stackit/models"
)

// Open connects to the configured store and wraps the pool in gorm.
// The caller owns the returned handle; close it with Close.
func Open(cfg cliparse.Config) (*gorm.DB, error) {
	var driver string
	switch cfg.DatabaseType {
	case cliparse.DatabaseSQLite:
		driver = "sqlite"
	case cliparse.DatabasePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	sqlDB, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%s ping failed: %w", driver, err)
	}

	var dialector gorm.Dialector
	if driver == "sqlite" {
		// One writer at a time; transactions carry their own connection
		sqlDB.SetMaxOpenConns(1)
		dialector = sqlite.Dialector{DriverName: "sqlite", Conn: sqlDB}
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger()})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialise gorm: %w", err)
	}

	return gdb, nil
}

// Migrate creates or updates every table. Safe to call multiple times.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(models.Tables()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newLogger routes gorm's messages through the default slog handler.
func newLogger() logger.Interface {
	return logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}
