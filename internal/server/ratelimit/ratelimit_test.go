package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointConfig{
			{Path: "/api/analyze", Limit: 60, Window: time.Minute, Burst: 2},
		},
	}
}

func TestLimiter_BurstExhaustion(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	ok, _ := l.Allow("1.2.3.4", "/api/analyze")
	assert.True(t, ok)
	ok, _ = l.Allow("1.2.3.4", "/api/analyze")
	assert.True(t, ok)

	ok, info := l.Allow("1.2.3.4", "/api/analyze")
	assert.False(t, ok)
	assert.Equal(t, 60, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		ok, _ := l.Allow("1.2.3.4", "/api/analyze")
		require.True(t, ok)
	}
	ok, _ := l.Allow("1.2.3.4", "/api/analyze")
	require.False(t, ok)

	ok, _ = l.Allow("5.6.7.8", "/api/analyze")
	assert.True(t, ok, "a different client has its own bucket")
}

func TestLimiter_DefaultTierForUnknownPath(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	ok, info := l.Allow("1.2.3.4", "/api/unknown")
	assert.True(t, ok)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 1000; i++ {
		ok, _ := l.Allow("1.2.3.4", "/api/analyze")
		require.True(t, ok)
	}
}

func TestLimiter_TokensRefill(t *testing.T) {
	cfg := testConfig()
	// 100 tokens per second so the bucket refills within the test.
	cfg.Endpoints = []EndpointConfig{
		{Path: "/api/analyze", Limit: 100, Window: time.Second, Burst: 1},
	}
	l := NewLimiter(cfg)
	defer l.Stop()

	ok, _ := l.Allow("1.2.3.4", "/api/analyze")
	require.True(t, ok)
	ok, _ = l.Allow("1.2.3.4", "/api/analyze")
	require.False(t, ok)

	time.Sleep(50 * time.Millisecond)
	ok, _ = l.Allow("1.2.3.4", "/api/analyze")
	assert.True(t, ok, "bucket should refill over time")
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	cfg := testConfig()
	cfg.CleanupInterval = time.Minute
	l := NewLimiter(cfg)

	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
