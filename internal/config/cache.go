package config

import (
    "strings"
    "time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is disabled.
// Methods lists the HTTP methods to cache and Paths the route prefixes whose
// responses are public enough to share between callers (room and event
// catalogues).  KeyStrategy determines which parts of the request contribute
// to the cache key.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    Paths        []string
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables.  All methods are upper-cased.
func LoadCacheConfig() CacheConfig {
    methods := map[string]bool{}
    for _, m := range envList("CACHE_METHODS", "GET") {
        methods[strings.ToUpper(m)] = true
    }
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      methods,
        Paths:        envList("CACHE_PATHS", "/api/rooms,/api/events"),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       envStr("CACHE_PREFIX", "hotel:cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

// Cacheable reports whether a request path falls under one of the cached prefixes.
func (c CacheConfig) Cacheable(path string) bool {
    for _, p := range c.Paths {
        if strings.HasPrefix(path, p) {
            return true
        }
    }
    return false
}
