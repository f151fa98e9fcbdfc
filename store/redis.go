package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Hash fields used by RedisStore. The write time is kept beside the
// payload as store metadata rather than inside it.
const (
	redisFieldData  = "data"
	redisFieldMtime = "mtime"
)

// DefaultRedisPrefix namespaces RedisStore keys within a shared server.
const DefaultRedisPrefix = "memo:"

// RedisStore is a Store backed by a Redis server. Each key maps to one
// hash holding the payload and its last-write time (unix nanoseconds).
// Entries have no Redis TTL; staleness is the engine's decision.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a RedisStore on an existing client. If prefix is
// empty, DefaultRedisPrefix is used.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

// Key returns the Redis key an entry key maps to.
func (s *RedisStore) Key(key string) string { return s.prefix + key }

// EnsureNamespace is a no-op; the Redis keyspace is flat.
func (s *RedisStore) EnsureNamespace(context.Context, string) error { return nil }

// Exists reports whether a hash is present for key.
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.Key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("store: exists %q: %w", key, err)
	}
	return n > 0, nil
}

// Age returns time elapsed since the entry for key was last written.
func (s *RedisStore) Age(ctx context.Context, key string) (time.Duration, error) {
	nanos, err := s.client.HGet(ctx, s.Key(key), redisFieldMtime).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("store: age of %q: %w", key, ErrNotExist)
		}
		return 0, fmt.Errorf("store: age of %q: %w", key, err)
	}
	return s.now().Sub(time.Unix(0, nanos)), nil
}

// Read returns the stored payload for key.
func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.HGet(ctx, s.Key(key), redisFieldData).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("store: read %q: %w", key, ErrNotExist)
		}
		return nil, fmt.Errorf("store: read %q: %w", key, err)
	}
	return data, nil
}

// Write replaces the payload for key and stamps the write time.
func (s *RedisStore) Write(ctx context.Context, key string, data []byte) error {
	err := s.client.HSet(ctx, s.Key(key),
		redisFieldData, data,
		redisFieldMtime, s.now().UnixNano(),
	).Err()
	if err != nil {
		return fmt.Errorf("store: write %q: %w", key, err)
	}
	return nil
}

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)
