package config

import "time"

// RateLimitConfig configures the Redis token bucket that guards form
// submissions.  Each client/route pair owns a bucket of Capacity tokens
// refilled by RefillTokens every RefillInterval.
type RateLimitConfig struct {
	Enabled        bool          `koanf:"enabled"`
	Capacity       int           `koanf:"capacity"`
	RefillTokens   int           `koanf:"refill_tokens"`
	RefillInterval time.Duration `koanf:"refill_interval"`
	TTL            time.Duration `koanf:"ttl"`
	Prefix         string        `koanf:"prefix"`
	Debug          bool          `koanf:"debug"`
}

func defaultRateLimit() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        true,
		Capacity:       60,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            10 * time.Minute,
		Prefix:         "rl",
	}
}

// normalize clamps values that would make the bucket useless.  The TTL
// must outlive a few refill intervals or idle buckets vanish too early.
func (r *RateLimitConfig) normalize() {
	if r.Capacity < 1 {
		r.Capacity = 1
	}
	if r.RefillTokens < 1 {
		r.RefillTokens = 1
	}
	if r.RefillInterval <= 0 {
		r.RefillInterval = time.Second
	}
	if minTTL := 5 * r.RefillInterval; r.TTL < minTTL {
		r.TTL = minTTL
	}
	if r.Prefix == "" {
		r.Prefix = "rl"
	}
}
