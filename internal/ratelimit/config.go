package ratelimit

import "strings"

// holds API rate limiting configuration
type Config struct {
	// whether rate limiting is active
	Enabled bool

	// ulule formatted rate, e.g. "120-M" for 120 requests per minute
	Rate string

	// paths that bypass rate limiting (health checks, etc.)
	ExemptPaths []string
}

// returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Rate:    "120-M",
		ExemptPaths: []string{
			"/health",
			"/metrics",
		},
	}
}

// checks if a path bypasses rate limiting
func (c *Config) IsExemptPath(path string) bool {
	for _, ep := range c.ExemptPaths {
		if path == ep || strings.HasPrefix(path, ep+"/") {
			return true
		}
	}

	return false
}
