package config

import (
	"strings"
	"time"
)

// CacheConfig drives the Redis response cache sitting in front of the
// public search and status routes. Those queries read an eventually
// consistent catalog anyway, so short staleness is acceptable and the
// default TTL is kept small. MaxBodyBytes caps how large a response is
// worth storing; bigger bodies pass through uncached.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* environment variables with defaults
// tuned for the search endpoints.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      methodSet(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 20*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "airdesk:search"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 256<<10),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 20 * time.Second
	}
	if cfg.MaxBodyBytes < 0 {
		cfg.MaxBodyBytes = 0
	}
	return cfg
}

func methodSet(s string) map[string]bool {
	m := make(map[string]bool)
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			m[p] = true
		}
	}
	return m
}
