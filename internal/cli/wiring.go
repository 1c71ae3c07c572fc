package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/okian/rosterlab/internal/adapters/catalog"
	"github.com/okian/rosterlab/internal/adapters/repository"
	"github.com/okian/rosterlab/internal/adapters/throttle"
	"github.com/okian/rosterlab/internal/config"
	"github.com/okian/rosterlab/internal/domain/extstats"
	"github.com/okian/rosterlab/internal/fetch"
	"github.com/okian/rosterlab/pkg/logger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newStore opens the configured attribute cache. The closer releases any
// connection it holds.
func newStore(ctx context.Context, cfg *config.Config) (repository.Store, io.Closer, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return repository.NewRedisStore(client, repository.WithKeyPrefix(cfg.RedisPrefix)), client, nil
	default:
		s, err := repository.NewFileStore(cfg.CacheDir)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	}
}

func newLimiter(cfg *config.Config) throttle.Limiter {
	if cfg.Throttle == config.ThrottleTokenBucket {
		return throttle.NewTokenBucket(cfg.RequestsPerSecond, cfg.Burst)
	}
	return throttle.NewDelay(cfg.RequestDelay())
}

func newClient(cfg *config.Config, log logger.Logger) *catalog.Client {
	return catalog.New(cfg.APIBaseURL,
		catalog.WithTimeout(cfg.HTTPTimeout()),
		catalog.WithUserAgent(cfg.UserAgent),
		catalog.WithLogger(log.Named("catalog")),
	)
}

func newResolver(store repository.Store, client *catalog.Client, cfg *config.Config, log logger.Logger) *fetch.Resolver {
	return fetch.NewResolver(store, client,
		fetch.WithLimiter(newLimiter(cfg)),
		fetch.WithLogger(log.Named("fetch")),
	)
}

func schemaFrom(cfg *config.Config) extstats.Schema {
	return extstats.Schema{
		NameColumn: cfg.StatsNameColumn,
		IDColumn:   cfg.StatsIDColumn,
		Drop:       cfg.StatsDropColumns,
	}
}
