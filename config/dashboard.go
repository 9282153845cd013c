package config

import "time"

// DashboardConfig tunes the dashboard counts. Variables use the DASHBOARD_ prefix.
type DashboardConfig struct {
	// CacheTTL keeps counts in Redis between writes made through the API.
	// Zero disables the cache.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`
}
