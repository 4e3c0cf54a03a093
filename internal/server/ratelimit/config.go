package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is a per-endpoint rate limit tier. Path matching is by
// prefix, first match wins.
type EndpointConfig struct {
	Path   string
	Limit  int
	Window time.Duration
	Burst  int // defaults to Limit when zero
}

// Config holds rate limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Endpoints       []EndpointConfig
}

// DefaultConfig returns the built-in limiter settings: analysis is the
// expensive operation and gets the tightest tier.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Endpoints: []EndpointConfig{
			{Path: "/api/analyze", Limit: 30, Window: time.Minute, Burst: 5},
			{Path: "/api/chat", Limit: 120, Window: time.Minute, Burst: 20},
			{Path: "/api/health", Limit: 600, Window: time.Minute},
		},
	}
}

// LoadConfig builds limiter settings from environment variables, starting
// from DefaultConfig.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	return cfg
}

// lookup returns the limit, window and burst for a path.
func (c *Config) lookup(path string) (limit int, window time.Duration, burst int) {
	for _, ep := range c.Endpoints {
		if strings.HasPrefix(path, ep.Path) {
			burst = ep.Burst
			if burst == 0 {
				burst = ep.Limit
			}
			return ep.Limit, ep.Window, burst
		}
	}
	return c.DefaultLimit, c.DefaultWindow, c.DefaultLimit
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
