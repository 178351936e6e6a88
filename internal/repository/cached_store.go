package repository

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/cache"
)

// CachedStore serves reads from a Redis cache in front of another store.
// Writes go to the inner store first and are then written through to the
// cache; a failed cache write evicts the affected keys instead.
type CachedStore struct {
	inner Store
	cache *cache.EntryCache
}

// NewCachedStore fronts inner with entries.
func NewCachedStore(inner Store, entries *cache.EntryCache) *CachedStore {
	return &CachedStore{inner: inner, cache: entries}
}

// Get tries the cache, then the inner store, filling the cache on a miss.
// A miss only fills an empty slot, so a slow read never replaces a value
// written through by a later commit. Contexts marked by WithSourceReads skip
// the cache entirely.
func (s *CachedStore) Get(ctx context.Context, m Map, key string) ([]byte, bool, error) {
	if SourceReads(ctx) {
		return s.inner.Get(ctx, m, key)
	}

	if v, ok, err := s.cache.Get(ctx, string(m), key); err == nil && ok {
		return v, true, nil
	} else if err != nil {
		log.Warn().Err(err).Str("map", string(m)).Str("key", key).Msg("cache read failed")
	}

	v, ok, err := s.inner.Get(ctx, m, key)
	if err != nil || !ok {
		return v, ok, err
	}
	if err := s.cache.Fill(ctx, string(m), key, v); err != nil {
		log.Warn().Err(err).Str("map", string(m)).Str("key", key).Msg("cache fill failed")
	}
	return v, true, nil
}

// Commit writes to the inner store and then refreshes the cache.
func (s *CachedStore) Commit(ctx context.Context, writes []Write) error {
	if err := s.inner.Commit(ctx, writes); err != nil {
		return err
	}

	entries := make([]cache.NamespacedEntry, 0, len(writes))
	for _, w := range writes {
		entries = append(entries, cache.NamespacedEntry{Namespace: string(w.Map), Key: w.Key, Value: w.Value})
	}
	if err := s.cache.SetMany(ctx, entries); err != nil {
		log.Warn().Err(err).Int("keys", len(entries)).Msg("cache write-through failed, evicting")
		if err := s.cache.Delete(ctx, entries...); err != nil {
			log.Error().Err(err).Int("keys", len(entries)).Msg("cache eviction failed")
		}
	}
	return nil
}

// Close closes the inner store. The cache client is owned by the caller.
func (s *CachedStore) Close() error {
	return s.inner.Close()
}
