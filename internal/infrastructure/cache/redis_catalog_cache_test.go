package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires Redis running on localhost:6379.
const testRedisAddr = "localhost:6379"

func setupRedisCache(t *testing.T) *RedisCatalogCache {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}
	prefix := "test:bundle:catalog:"
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		_ = client.Close()
	})
	return NewRedisCatalogCache(client, prefix, time.Minute)
}

func TestRedisCatalogCache(t *testing.T) {
	c := setupRedisCache(t)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, sampleConfig("p-1")))
	cfg, found, err := c.Get(ctx, "p-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, sampleConfig("p-1"), cfg)

	require.NoError(t, c.Invalidate(ctx, "p-1"))
	_, found, err = c.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewRedisCatalogCache_DefaultPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	defer client.Close()

	c := NewRedisCatalogCache(client, "", time.Minute)
	assert.Equal(t, defaultPrefix, c.prefix)
}
