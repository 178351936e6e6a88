package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/paydii_api/internal/config"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(&config.RedisConfig{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisClientGetSet(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)

	_, ok, err := client.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, client.Set(ctx, "k", "v", 0))
	v, ok, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, client.Delete(ctx, "k"))
	_, ok, err = client.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, client.Ping(ctx))
}

func TestRedisClientSetAtomic(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)

	require.NoError(t, client.SetAtomic(ctx, []Entry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, time.Minute))
	assert.Equal(t, "1", mustGet(t, mr, "a"))
	assert.Equal(t, "2", mustGet(t, mr, "b"))
	assert.Equal(t, time.Minute, mr.TTL("a"))

	assert.NoError(t, client.SetAtomic(ctx, nil, 0))
}

func TestNewRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := NewRedisClient(&config.RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}

func TestEntryCache(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	c := NewEntryCache(client, 10*time.Minute)

	require.NoError(t, c.SetMany(ctx, []NamespacedEntry{
		{Namespace: "products", Key: "p1", Value: []byte(`{"id":"p1"}`)},
		{Namespace: "products", Key: "p2", Value: []byte(`{"id":"p2"}`)},
	}))
	assert.Equal(t, `{"id":"p1"}`, mustGet(t, mr, "paydii:cache:products:p1"))

	v, ok, err := c.Get(ctx, "products", "p2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"p2"}`, string(v))

	require.NoError(t, c.Delete(ctx, NamespacedEntry{Namespace: "products", Key: "p1"}))
	_, ok, err = c.Get(ctx, "products", "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(11 * time.Minute)
	_, ok, err = c.Get(ctx, "products", "p2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
