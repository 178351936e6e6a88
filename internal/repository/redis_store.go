package repository

import (
	"context"

	"github.com/GTDGit/paydii_api/internal/cache"
)

const redisKeyPrefix = "paydii:kv"

// RedisStore keeps every map as plain Redis strings. A commit is sent as one
// MULTI/EXEC block.
type RedisStore struct {
	redis *cache.RedisClient
}

// NewRedisStore wraps a connected Redis client.
func NewRedisStore(redis *cache.RedisClient) *RedisStore {
	return &RedisStore{redis: redis}
}

func redisKey(m Map, key string) string {
	return redisKeyPrefix + ":" + string(m) + ":" + key
}

// Get returns the value stored under key.
func (s *RedisStore) Get(ctx context.Context, m Map, key string) ([]byte, bool, error) {
	v, ok, err := s.redis.Get(ctx, redisKey(m, key))
	if err != nil || !ok {
		return nil, false, err
	}
	return []byte(v), true, nil
}

// Commit writes every entry in one transaction without expiry.
func (s *RedisStore) Commit(ctx context.Context, writes []Write) error {
	entries := make([]cache.Entry, 0, len(writes))
	for _, w := range writes {
		entries = append(entries, cache.Entry{Key: redisKey(w.Map, w.Key), Value: string(w.Value)})
	}
	return s.redis.SetAtomic(ctx, entries, 0)
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.redis.Close()
}
