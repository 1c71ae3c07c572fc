// Package config defines pipeline configuration and its loading hooks.
package config

import (
	"time"
)

// Cache backends.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
)

// Throttle strategies for upstream requests.
const (
	ThrottleDelay       = "delay"
	ThrottleTokenBucket = "token_bucket"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// APIBaseURL is the catalog API root, e.g. https://mlb25.theshow.com/apis.
	APIBaseURL string `koanf:"api_base_url"`

	// HTTPTimeoutMS bounds each upstream request.
	HTTPTimeoutMS int `koanf:"http_timeout_ms"`

	// UserAgent is sent with every upstream request.
	UserAgent string `koanf:"user_agent"`

	// CacheBackend selects the attribute cache: file or redis.
	CacheBackend string `koanf:"cache_backend"`

	// CacheDir holds one JSON file per identifier when CacheBackend is file.
	CacheDir string `koanf:"cache_dir"`

	// RedisAddr and RedisPrefix configure the redis cache backend.
	RedisAddr   string `koanf:"redis_addr"`
	RedisPrefix string `koanf:"redis_prefix"`

	// Throttle selects the courtesy limiter: delay or token_bucket.
	Throttle string `koanf:"throttle"`

	// RequestDelayMS is the fixed pause after each upstream attribute fetch.
	RequestDelayMS int `koanf:"request_delay_ms"`

	// RequestsPerSecond and Burst configure the token bucket limiter.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// LHPStatsPath and RHPStatsPath point at the handedness split CSV files.
	LHPStatsPath string `koanf:"lhp_stats_path"`
	RHPStatsPath string `koanf:"rhp_stats_path"`

	// StatsNameColumn and StatsIDColumn name the key columns of the split files.
	StatsNameColumn string `koanf:"stats_name_column"`
	StatsIDColumn   string `koanf:"stats_id_column"`

	// StatsDropColumns are removed from each split file on load.
	StatsDropColumns []string `koanf:"stats_drop_columns"`

	// OutputDir receives hitters.csv and pitchers.csv when set.
	OutputDir string `koanf:"output_dir"`

	// MetricsPath receives a Prometheus textfile after each run when set.
	MetricsPath string `koanf:"metrics_path"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		APIBaseURL:        "https://mlb25.theshow.com/apis",
		HTTPTimeoutMS:     20_000,
		UserAgent:         "rosterlab/1.0",
		CacheBackend:      CacheBackendFile,
		CacheDir:          "data/cache",
		RedisAddr:         "localhost:6379",
		RedisPrefix:       "rosterlab:item:",
		Throttle:          ThrottleDelay,
		RequestDelayMS:    250,
		RequestsPerSecond: 4,
		Burst:             1,
		StatsNameColumn:   "Name",
		StatsIDColumn:     "playerId",
		StatsDropColumns:  []string{"PA", "wOBA", "wRC+", "OPS", "ISO", "BABIP"},
	}
}

// HTTPTimeout returns HTTPTimeoutMS as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// RequestDelay returns RequestDelayMS as a duration.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}
