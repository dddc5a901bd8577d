package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "https://fetch-url.onrender.com/fetch-url", cfg.RelayURL)
	assert.Equal(t, "https://huggingface.co", cfg.UpstreamHost)
	assert.Empty(t, cfg.SubscribeURL)
	assert.Equal(t, 600*time.Second, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.True(t, cfg.RateLimitEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RELAY_URL", "https://relay.internal/fetch")
	t.Setenv("CACHE_TTL", "120s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://relay.internal/fetch", cfg.RelayURL)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero cache ttl", key: "CACHE_TTL", value: "0s"},
		{name: "negative rate limit", key: "RATE_LIMIT_PER_MINUTE", value: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load(context.Background())
			assert.Error(t, err)
		})
	}
}
