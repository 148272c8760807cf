package middleware

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// defaultIdempotencyEntries bounds the replay cache.
const defaultIdempotencyEntries = 10000

// cachedResponse stores a completed response for replay.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// idempotencyCache keeps recent responses keyed by request fingerprint.
type idempotencyCache struct {
	lru *expirable.LRU[string, *cachedResponse]
}

func newIdempotencyCache(size int, ttl time.Duration) *idempotencyCache {
	if size <= 0 {
		size = defaultIdempotencyEntries
	}
	return &idempotencyCache{
		lru: expirable.NewLRU[string, *cachedResponse](size, nil, ttl),
	}
}

// Get returns a live cached response.
func (c *idempotencyCache) Get(key string) (*cachedResponse, bool) {
	return c.lru.Get(key)
}

// Set stores resp, evicting the oldest entry when full.
func (c *idempotencyCache) Set(key string, resp *cachedResponse) {
	c.lru.Add(key, resp)
}

// Len returns the number of live entries.
func (c *idempotencyCache) Len() int {
	return c.lru.Len()
}
