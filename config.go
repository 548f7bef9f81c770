package crmboard

import (
	"context"
	"database/sql"
	"log/slog"
)

// Config holds the settings shared by the schema migrator.
type Config struct {
	// ctx is the context for all operations.
	ctx context.Context

	// logger is the logger used for logging messages.
	logger *slog.Logger

	// MigrationsTable is the table recording applied schema versions.
	// Default is "schema_migrations".
	MigrationsTable string

	// db is the database connection used for migrations.
	db *sql.DB
}

func NewConfig(ctx context.Context, db *sql.DB) *Config {
	return &Config{
		ctx:             ctx,
		logger:          slog.Default(),
		MigrationsTable: "schema_migrations",
		db:              db,
	}
}

// SetMigrationsTable sets the version bookkeeping table.
func (c *Config) SetMigrationsTable(name string) {
	c.MigrationsTable = name
}

// SetDB sets the database connection.
func (c *Config) SetDB(db *sql.DB) {
	c.db = db
}

// SetLogger sets the logger.
func (c *Config) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// Context returns the context migrations run under.
func (c *Config) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Logger returns the configured logger.
func (c *Config) Logger() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// DB returns the migration connection.
func (c *Config) DB() *sql.DB {
	return c.db
}
