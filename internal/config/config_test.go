package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with memory storage", func(t *testing.T) {
		t.Setenv("INV_STORAGE_DRIVER", "memory")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "devinventory", cfg.App.Name)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, StorageMemory, cfg.Storage.Driver)
		assert.Equal(t, 3, cfg.Allocator.MaxAttempts)
		assert.Equal(t, 5*time.Second, cfg.Allocator.LockTTL)
		assert.Equal(t, 8*time.Hour, cfg.JWT.AccessTokenTTL)
		assert.Equal(t, 10*1024, cfg.Audit.CompressThreshold)
		assert.False(t, cfg.Redis.Enabled())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("INV_DATABASE_URL", "postgres://u:p@db:5432/inventory")
		t.Setenv("INV_DATABASE_MAX_CONNS", "25")
		t.Setenv("INV_REDIS_ADDR", "redis:6379")
		t.Setenv("INV_ALLOCATOR_MAX_ATTEMPTS", "5")
		t.Setenv("INV_ALLOCATOR_LOCK_WAIT", "750ms")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
		assert.Equal(t, "postgres://u:p@db:5432/inventory", cfg.Database.URL)
		assert.EqualValues(t, 25, cfg.Database.MaxConns)
		assert.True(t, cfg.Redis.Enabled())
		assert.Equal(t, 5, cfg.Allocator.MaxAttempts)
		assert.Equal(t, 750*time.Millisecond, cfg.Allocator.LockWait)
	})

	t.Run("postgres without url fails", func(t *testing.T) {
		t.Setenv("INV_STORAGE_DRIVER", "postgres")
		t.Setenv("INV_DATABASE_URL", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.url")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:       AppConfig{Env: "production"},
			Storage:   StorageConfig{Driver: StorageMemory},
			JWT:       JWTConfig{Secret: "s3cret"},
			Allocator: AllocatorConfig{MaxAttempts: 3, LockTTL: time.Second},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.JWT.Secret = devJWTSecret
	assert.ErrorContains(t, cfg.Validate(), "production")

	cfg = valid()
	cfg.Storage.Driver = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "unknown storage.driver")

	cfg = valid()
	cfg.Allocator.MaxAttempts = 0
	cfg.JWT.Secret = ""
	err := cfg.Validate()
	assert.ErrorContains(t, err, "max_attempts")
	assert.ErrorContains(t, err, "jwt.secret is required")
}
