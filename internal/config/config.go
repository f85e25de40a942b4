// Package config loads service configuration from an optional config.toml and INV_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all configuration for the service.
type Config struct {
	App       AppConfig
	Log       LogConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Allocator AllocatorConfig
	Audit     AuditConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name    string
	Env     string // development, production
	Port    string
	Version string
}

// IsProduction reports whether the service runs in production.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// StorageConfig selects the storage driver.
type StorageConfig struct {
	Driver string // postgres or memory
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	URL         string
	MaxConns    int32
	MinConns    int32
	AutoMigrate bool
}

// RedisConfig holds Redis settings. An empty Addr selects the in-process lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// JWTConfig holds bearer token settings.
type JWTConfig struct {
	Secret         string
	Issuer         string
	AccessTokenTTL time.Duration
}

// AllocatorConfig holds kode ID allocation settings.
type AllocatorConfig struct {
	// MaxAttempts bounds re-allocation after a unique violation
	MaxAttempts int
	// LockTTL bounds how long a crashed holder keeps a bucket locked (Redis only)
	LockTTL time.Duration
	// LockWait bounds how long a request waits for a busy bucket
	LockWait time.Duration
}

// AuditConfig holds change journal settings.
type AuditConfig struct {
	// CompressThreshold is the change payload size in bytes above which it is stored zstd-compressed
	CompressThreshold int
}

const devJWTSecret = "dev-secret-change-me"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "devinventory")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.version", "0.1.0")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("storage.driver", StoragePostgres)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", devJWTSecret)
	v.SetDefault("jwt.issuer", "devinventory")
	v.SetDefault("jwt.access_token_ttl", "8h")

	v.SetDefault("allocator.max_attempts", 3)
	v.SetDefault("allocator.lock_ttl", "5s")
	v.SetDefault("allocator.lock_wait", "3s")

	v.SetDefault("audit.compress_threshold", 10*1024)
}

// Load reads configuration. Environment variables override the file:
// INV_DATABASE_URL sets database.url.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/devinventory")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("INV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
			Version: v.GetString("app.version"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
		},
		Database: DatabaseConfig{
			URL:         v.GetString("database.url"),
			MaxConns:    v.GetInt32("database.max_conns"),
			MinConns:    v.GetInt32("database.min_conns"),
			AutoMigrate: v.GetBool("database.auto_migrate"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("jwt.secret"),
			Issuer:         v.GetString("jwt.issuer"),
			AccessTokenTTL: v.GetDuration("jwt.access_token_ttl"),
		},
		Allocator: AllocatorConfig{
			MaxAttempts: v.GetInt("allocator.max_attempts"),
			LockTTL:     v.GetDuration("allocator.lock_ttl"),
			LockWait:    v.GetDuration("allocator.lock_wait"),
		},
		Audit: AuditConfig{
			CompressThreshold: v.GetInt("audit.compress_threshold"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case StoragePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("database.url is required for the postgres storage driver"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}

	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	} else if c.App.IsProduction() && c.JWT.Secret == devJWTSecret {
		errs = append(errs, errors.New("jwt.secret must be set in production"))
	}

	if c.Allocator.MaxAttempts < 1 {
		errs = append(errs, errors.New("allocator.max_attempts must be at least 1"))
	}
	if c.Allocator.LockTTL <= 0 {
		errs = append(errs, errors.New("allocator.lock_ttl must be positive"))
	}

	return errors.Join(errs...)
}
