package cache

import (
	"context"
	"fmt"
	"time"
)

// NamespacedEntry is a cache entry addressed by namespace and key.
type NamespacedEntry struct {
	Namespace string
	Key       string
	Value     []byte
}

// EntryCache is a read-through cache of store entries kept in Redis.
// Key format: paydii:cache:{namespace}:{key}
type EntryCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewEntryCache creates a new EntryCache whose entries expire after ttl.
func NewEntryCache(redis *RedisClient, ttl time.Duration) *EntryCache {
	return &EntryCache{
		redis: redis,
		ttl:   ttl,
	}
}

func (c *EntryCache) key(namespace, key string) string {
	return fmt.Sprintf("paydii:cache:%s:%s", namespace, key)
}

// Get returns the cached value.
func (c *EntryCache) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	v, ok, err := c.redis.Get(ctx, c.key(namespace, key))
	if err != nil || !ok {
		return nil, false, err
	}
	return []byte(v), true, nil
}

// Fill caches one value unless the key is already cached.
func (c *EntryCache) Fill(ctx context.Context, namespace, key string, value []byte) error {
	_, err := c.redis.SetNX(ctx, c.key(namespace, key), string(value), c.ttl)
	return err
}

// SetMany caches several values in one transaction.
func (c *EntryCache) SetMany(ctx context.Context, entries []NamespacedEntry) error {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{Key: c.key(e.Namespace, e.Key), Value: string(e.Value)})
	}
	return c.redis.SetAtomic(ctx, out, c.ttl)
}

// Delete evicts entries.
func (c *EntryCache) Delete(ctx context.Context, entries ...NamespacedEntry) error {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, c.key(e.Namespace, e.Key))
	}
	return c.redis.Delete(ctx, keys...)
}
