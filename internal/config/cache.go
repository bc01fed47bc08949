package config

import (
	"time"
)

// CacheConfig controls the Redis response cache that fronts the public
// events listing. TTL bounds how stale a cached listing may be; Prefix
// namespaces the keys; MaxBodyBytes caps the size of a cached response.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* environment variables, with defaults
// suitable for a low-traffic listing (30s TTL, 1 MiB body cap).
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		TTL:          parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}
