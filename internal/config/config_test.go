package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "redis", cfg.QueueBackend)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
	assert.False(t, cfg.DBFailFast)
	assert.Equal(t, 15*time.Minute, cfg.SessionCacheTTL)
	assert.Equal(t, 256, cfg.QRSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("DB_FAIL_FAST", "true")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")
	t.Setenv("SESSION_CACHE_TTL", "1m")
	t.Setenv("BASE_URL", "https://attendify.example.com")

	cfg := Load()
	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.True(t, cfg.DBFailFast)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
	assert.Equal(t, time.Minute, cfg.SessionCacheTTL)
	assert.Equal(t, "https://attendify.example.com", cfg.BaseURL)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")
	t.Setenv("SESSION_CACHE_TTL", "soon")
	t.Setenv("DB_FAIL_FAST", "maybe")

	cfg := Load()
	assert.Equal(t, 120, cfg.RateLimitPerMin)
	assert.Equal(t, 15*time.Minute, cfg.SessionCacheTTL)
	assert.False(t, cfg.DBFailFast)
}
