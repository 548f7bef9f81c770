// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	configFileName = "crmboard"
	configFileType = "yaml"
)

type Config struct {
	Database struct {
		Driver     string `mapstructure:"driver"`
		DSN        string `mapstructure:"dsn"`
		Host       string `mapstructure:"host"`
		Port       string `mapstructure:"port"`
		User       string `mapstructure:"user"`
		Password   string `mapstructure:"password"`
		Name       string `mapstructure:"name"`
		SSLMode    string `mapstructure:"sslmode"`
		SearchPath string `mapstructure:"schema"`
		LogLevel   string `mapstructure:"log_level"`
	} `mapstructure:"db"`
	JWT struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"jwt"`
	Server struct {
		Port         string        `mapstructure:"port"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
		CORSOrigins  []string      `mapstructure:"cors_origins"`
	} `mapstructure:"server"`
	Sendgrid struct {
		APIKey string `mapstructure:"api_key"`
		From   string `mapstructure:"from"`
	} `mapstructure:"sendgrid"`
	SMTP struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		From     string `mapstructure:"from"`
	} `mapstructure:"smtp"`
	Redis struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"redis"`
	Cache struct {
		Size int           `mapstructure:"size"`
		TTL  time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`
	Reminder struct {
		Schedule string `mapstructure:"schedule"`
		Batch    int    `mapstructure:"batch"`
	} `mapstructure:"reminder"`
	BaseURL string `mapstructure:"base_url"`
}

// PostgresDSN builds a key/value DSN from the discrete settings unless an
// explicit DSN was given.
func (c *Config) PostgresDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
		c.Database.SearchPath,
	)
}

// Load reads defaults, an optional crmboard.yaml from the working directory
// or /etc/crmboard, and environment variables, in increasing precedence.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	if len(paths) == 0 {
		paths = []string{".", "/etc/crmboard"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// DB_HOST maps to db.host, SERVER_PORT to server.port and so on.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range v.AllKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	if err := v.BindEnv("server.cors_origins", "CORS_ORIGINS"); err != nil {
		return nil, fmt.Errorf("bind env CORS_ORIGINS: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if raw := v.GetString("server.cors_origins"); raw != "" {
		cfg.Server.CORSOrigins = splitList(raw)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Database configuration
	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "crmboard")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.schema", "public")
	v.SetDefault("db.log_level", "warn")

	// JWT configuration
	v.SetDefault("jwt.secret", "your-secret-key")

	// Server configuration
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.cors_origins", "https://*,http://*")

	// Email configuration
	v.SetDefault("sendgrid.api_key", "")
	v.SetDefault("sendgrid.from", "")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")

	v.SetDefault("redis.url", "")
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("reminder.schedule", "@every 1m")
	v.SetDefault("reminder.batch", 100)
	v.SetDefault("base_url", "http://localhost:3000")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == DriverSQLite && c.Database.DSN == "" {
		return errors.New("DB_DSN is required for the sqlite driver")
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
