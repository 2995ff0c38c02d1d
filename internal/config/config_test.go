package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.True(t, cfg.DB.Migrate)
	assert.False(t, cfg.Broker.Enabled)
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.True(t, cfg.IsLocal())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FYYUR_PRIMARY_ENV", "prod")
	t.Setenv("FYYUR_SERVER_PORT", "9090")
	t.Setenv("FYYUR_SERVER_READ_TIMEOUT", "3s")
	t.Setenv("FYYUR_DB_DRIVER", "mysql")
	t.Setenv("FYYUR_DB_HOST", "db")
	t.Setenv("FYYUR_DB_USER", "fyyur")
	t.Setenv("FYYUR_DB_NAME", "fyyur")
	t.Setenv("FYYUR_DB_MAX_OPEN_CONNS", "7")
	t.Setenv("FYYUR_REDIS_ADDR", "redis:6379")
	t.Setenv("FYYUR_RATELIMIT_CAPACITY", "5")
	t.Setenv("FYYUR_RATELIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("FYYUR_BROKER_ENABLED", "true")
	t.Setenv("FYYUR_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "3306", cfg.DB.Port)
	assert.Equal(t, 7, cfg.DB.MaxOpenConns)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.RateLimit.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.RefillInterval)
	assert.True(t, cfg.Broker.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.IsLocal())
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("FYYUR_DB_DRIVER", "oracle")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("mysql without user", func(t *testing.T) {
		t.Setenv("FYYUR_DB_DRIVER", "mysql")
		t.Setenv("FYYUR_DB_NAME", "fyyur")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("FYYUR_PRIMARY_ENV", "staging")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestRateLimitNormalize(t *testing.T) {
	r := RateLimitConfig{Capacity: 0, RefillTokens: -3, RefillInterval: 0, TTL: time.Second}
	r.normalize()
	assert.Equal(t, 1, r.Capacity)
	assert.Equal(t, 1, r.RefillTokens)
	assert.Equal(t, time.Second, r.RefillInterval)
	assert.Equal(t, 5*time.Second, r.TTL)
	assert.Equal(t, "rl", r.Prefix)
}

func TestNewRedisClientDisabled(t *testing.T) {
	assert.Nil(t, NewRedisClient(RedisConfig{}))
}
