package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time { return c.t }

func newTestIdempotencyCache(ttl time.Duration, max int) (*idempotencyCache, *stepClock) {
	clock := &stepClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := newIdempotencyCache(ttl, max)
	c.now = clock.now
	return c, clock
}

func TestIdempotencyCache_GetSet(t *testing.T) {
	c, clock := newTestIdempotencyCache(time.Minute, 10)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", &cachedResponse{StatusCode: 201, Body: []byte("{}")})
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 201, got.StatusCode)
	assert.Equal(t, clock.t, got.StoredAt)

	clock.t = clock.t.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestIdempotencyCache_EvictsOldestWhenFull(t *testing.T) {
	c, clock := newTestIdempotencyCache(time.Hour, 2)

	c.Set("a", &cachedResponse{})
	clock.t = clock.t.Add(time.Second)
	c.Set("b", &cachedResponse{})
	clock.t = clock.t.Add(time.Second)
	c.Set("c", &cachedResponse{})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestIdempotencyCache_EvictsExpiredFirst(t *testing.T) {
	c, clock := newTestIdempotencyCache(time.Minute, 2)

	c.Set("old", &cachedResponse{})
	clock.t = clock.t.Add(2 * time.Minute)
	c.Set("fresh", &cachedResponse{})
	c.Set("newest", &cachedResponse{})

	_, ok := c.Get("fresh")
	assert.True(t, ok)
	_, ok = c.Get("newest")
	assert.True(t, ok)
}

func TestNewIdempotencyCache_DefaultMax(t *testing.T) {
	c := newIdempotencyCache(time.Minute, 0)
	assert.Equal(t, DefaultIdempotencyMaxEntries, c.maxEntries)
}
