package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "public", cfg.Database.SearchPath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://*", "http://*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.Equal(t, "@every 1m", cfg.Reminder.Schedule)
	assert.Contains(t, cfg.PostgresDSN(), "dbname=crmboard")
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_SCHEMA", "crm")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "crm", cfg.Database.SearchPath)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "SG.key", cfg.Sendgrid.APIKey)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "db:\n  driver: sqlite\n  dsn: file:crm.db\nredis:\n  url: redis://localhost:6379/0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crmboard.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:crm.db", cfg.Database.DSN)
	assert.Equal(t, "file:crm.db", cfg.PostgresDSN())
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "unsupported database driver")
}
