package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "rosterlab:item:"

// RedisClient is the subset of the go-redis client used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps payloads as plain string keys without expiry, for runs
// on several hosts that share one cache.
type RedisStore struct {
	client RedisClient
	prefix string
}

// NewRedisStore wraps client.
func NewRedisStore(client RedisClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the redis key that holds id.
func (s *RedisStore) Key(id string) string { return s.prefix + id }

// Get fetches the cached payload for id.
func (s *RedisStore) Get(ctx context.Context, id string) ([]byte, error) {
	if err := validateKey(id); err != nil {
		return nil, err
	}
	raw, err := s.client.Get(ctx, s.Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	return raw, nil
}

// Put stores raw under id with no TTL.
func (s *RedisStore) Put(ctx context.Context, id string, raw []byte) error {
	if err := validateKey(id); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.Key(id), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", id, err)
	}
	return nil
}
