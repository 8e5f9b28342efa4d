//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/balance-service/internal/testutil"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_RedisCache(t *testing.T) {
	ctx := context.Background()
	container, err := testutil.SetupRedis(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Cleanup(ctx) })

	client := redis.NewClient(&redis.Options{Addr: container.Addr})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisCache(client, time.Second, WithKeyPrefix("it:"))
	require.NoError(t, c.Check(context.Background()))

	t.Run("round trip", func(t *testing.T) {
		c.Set("k1", sampleResult())

		got, ok := c.Get("k1")
		require.True(t, ok)
		assert.Equal(t, sampleResult(), got)
	})

	t.Run("expires", func(t *testing.T) {
		c.Set("k2", sampleResult())
		assert.Eventually(t, func() bool {
			_, ok := c.Get("k2")
			return !ok
		}, 5*time.Second, 100*time.Millisecond)
	})

	t.Run("clear keeps foreign keys", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "other:key", "keep", 0).Err())
		c.Set("k3", sampleResult())

		c.Clear()

		_, ok := c.Get("k3")
		assert.False(t, ok)
		n, err := client.Exists(ctx, "other:key").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}
