package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyCache_GetSet(t *testing.T) {
	c := newIdempotencyCache(10, time.Minute)
	resp := &cachedResponse{StatusCode: 200, ContentType: "application/json", Body: []byte(`{"ok":true}`)}

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", resp)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, resp, got)
	assert.Equal(t, 1, c.Len())
}

func TestIdempotencyCache_Expires(t *testing.T) {
	c := newIdempotencyCache(10, 20*time.Millisecond)
	c.Set("k", &cachedResponse{StatusCode: 200})

	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestIdempotencyCache_EvictsOldestWhenFull(t *testing.T) {
	c := newIdempotencyCache(2, time.Minute)
	c.Set("a", &cachedResponse{StatusCode: 200})
	c.Set("b", &cachedResponse{StatusCode: 200})
	c.Set("c", &cachedResponse{StatusCode: 200})

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestNewIdempotencyCache_DefaultSize(t *testing.T) {
	c := newIdempotencyCache(0, time.Minute)
	for i := 0; i < 3; i++ {
		c.Set(string(rune('a'+i)), &cachedResponse{})
	}
	assert.Equal(t, 3, c.Len())
}
