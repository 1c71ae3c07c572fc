package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ROSTERLAB_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ROSTERLAB_CONFIG is set
//  3. env (prefix ROSTERLAB_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// ROSTERLAB_CACHE_DIR -> cache_dir. Underscores are kept to match the
	// flat koanf tags.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "stats_drop_columns" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the pipeline cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("%w: api_base_url must not be empty", ErrInvalidConfig)
	}
	switch c.CacheBackend {
	case CacheBackendFile:
		if c.CacheDir == "" {
			return fmt.Errorf("%w: cache_dir must not be empty", ErrInvalidConfig)
		}
	case CacheBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis_addr must not be empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown cache_backend %q", ErrInvalidConfig, c.CacheBackend)
	}
	switch c.Throttle {
	case ThrottleDelay:
		if c.RequestDelayMS < 0 {
			return fmt.Errorf("%w: request_delay_ms must not be negative", ErrInvalidConfig)
		}
	case ThrottleTokenBucket:
		if c.RequestsPerSecond <= 0 || c.Burst <= 0 {
			return fmt.Errorf("%w: token bucket needs positive requests_per_second and burst", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown throttle %q", ErrInvalidConfig, c.Throttle)
	}
	if c.StatsNameColumn == "" || c.StatsIDColumn == "" {
		return fmt.Errorf("%w: stats name and id columns must be set", ErrInvalidConfig)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
