package config

// This file defines the Redis client constructor.  Redis backs the
// distributed rate limiter.  If the server cannot be reached at startup
// the constructor returns nil and callers run without rate limiting.

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis connection settings.  An empty Addr
// disables Redis entirely.
type RedisConfig struct {
	Addr     string `koanf:"addr" validate:"omitempty,hostname_port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
	TLS      bool   `koanf:"tls"`
}

// NewRedisClient connects to Redis and pings it with a short timeout.
// The returned client is nil when Redis is not configured or not
// reachable.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	var tlsConf *tls.Config
	if cfg.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
