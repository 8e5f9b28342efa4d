package middleware

import (
	"sync"
	"time"
)

// cachedResponse is a replayable 2xx response.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
	StoredAt    time.Time
}

// idempotencyCache keeps responses for ttl, holding at most maxEntries.
// When full, expired entries are evicted first, then the oldest one.
type idempotencyCache struct {
	mu         sync.Mutex
	items      map[string]*cachedResponse
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newIdempotencyCache(ttl time.Duration, maxEntries int) *idempotencyCache {
	if maxEntries <= 0 {
		maxEntries = DefaultIdempotencyMaxEntries
	}
	return &idempotencyCache{
		items:      make(map[string]*cachedResponse),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *idempotencyCache) Get(key string) (*cachedResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(resp.StoredAt) > c.ttl {
		delete(c.items, key)
		return nil, false
	}
	return resp, true
}

func (c *idempotencyCache) Set(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp.StoredAt = c.now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxEntries {
		c.evictLocked()
	}
	c.items[key] = resp
}

func (c *idempotencyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *idempotencyCache) evictLocked() {
	now := c.now()
	var oldestKey string
	var oldest time.Time
	for k, v := range c.items {
		if now.Sub(v.StoredAt) > c.ttl {
			delete(c.items, k)
			continue
		}
		if oldestKey == "" || v.StoredAt.Before(oldest) {
			oldestKey, oldest = k, v.StoredAt
		}
	}
	if len(c.items) >= c.maxEntries && oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
