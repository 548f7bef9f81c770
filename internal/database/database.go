// Package database opens the gorm connection for the configured driver.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/crmboard/internal/config"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table the service owns, parents first.
var Models = []any{
	&model.Pipeline{},
	&model.Stage{},
	&model.Client{},
	&model.Card{},
	&model.CalendarEvent{},
	&model.ActivityLog{},
}

// Open connects with the configured driver and verifies the connection.
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		dialector = postgres.Open(cfg.PostgresDSN())
	}

	db, err := gorm.Open(dialector, gormConfig(cfg.Database.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	if cfg.Database.Driver == config.DriverSQLite {
		// one writer at a time; a shared in-memory database lives as long as a connection does
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	slog.InfoContext(ctx, "database connected", "driver", cfg.Database.Driver)
	return db, nil
}

// AutoMigrate creates the schema from the models. PostgreSQL deployments use
// the versioned migrations instead.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto-migrating schema: %w", err)
	}
	return nil
}

func gormConfig(level string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel(level)),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
