// Package config loads server configuration from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Port string `env:"PORT, default=8080"`

	// RelayURL is the fetch proxy every upstream request is routed through.
	RelayURL     string `env:"RELAY_URL, default=https://fetch-url.onrender.com/fetch-url"`
	UpstreamHost string `env:"UPSTREAM_HOST, default=https://huggingface.co"`

	// SubscribeURL is the newsletter provider endpoint. Empty disables
	// subscriptions.
	SubscribeURL string `env:"SUBSCRIBE_URL"`

	CacheTTL       time.Duration `env:"CACHE_TTL, default=600s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=30s"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=*"`

	// Redis backs the distributed rate limiter. Empty address falls back to
	// the in-memory limiter.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB, default=0"`

	RateLimitPerMinute int  `env:"RATE_LIMIT_PER_MINUTE, default=120"`
	RateLimitEnabled   bool `env:"RATE_LIMIT_ENABLED, default=true"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}
	if cfg.RateLimitPerMinute <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", cfg.RateLimitPerMinute)
	}

	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
