// Package service contains the business logic for the load optimizer.
package service

import (
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/guttosm/load-optimizer/internal/domain/model"
	"github.com/guttosm/load-optimizer/internal/metrics"
	"github.com/guttosm/load-optimizer/internal/service/cache"
)

// ShardedCache spreads plan entries across independent LRU shards to reduce lock contention.
type ShardedCache struct {
	shards    []*ttlCache
	shardMask uint32
}

// NewShardedCache creates a sharded cache with the given total capacity and TTL.
// numShards is rounded up to a power of two; non-positive values mean 16.
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*ttlCache, n)
	for i := range shards {
		shards[i] = newTTLCache(perShard, ttl)
	}

	return &ShardedCache{
		shards:    shards,
		shardMask: uint32(n - 1),
	}
}

func (sc *ShardedCache) shard(key string) *ttlCache {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.shardMask]
}

// Get retrieves a plan from the owning shard.
func (sc *ShardedCache) Get(key string) (model.LoadPlan, bool) {
	return sc.shard(key).Get(key)
}

// Set stores a plan in the owning shard.
func (sc *ShardedCache) Set(key string, value model.LoadPlan) {
	sc.shard(key).Set(key, value)
}

// Invalidate removes a key from the owning shard.
func (sc *ShardedCache) Invalidate(key string) {
	sc.shard(key).Invalidate(key)
}

// Clear removes all entries from all shards.
func (sc *ShardedCache) Clear() {
	for _, s := range sc.shards {
		s.Clear()
	}
}

// Stop releases every shard.
func (sc *ShardedCache) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// Metrics returns aggregated metrics from all shards.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// ttlCache is a size-bounded LRU whose entries also expire after ttl.
// A zero ttl disables expiry.
type ttlCache struct {
	lru       *expirable.LRU[string, model.LoadPlan]
	capacity  int
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func newTTLCache(capacity int, ttl time.Duration) *ttlCache {
	if capacity < 1 {
		capacity = 1
	}
	return &ttlCache{
		lru:      expirable.NewLRU[string, model.LoadPlan](capacity, nil, ttl),
		capacity: capacity,
	}
}

// Get returns the cached plan. Expired entries count as misses.
func (c *ttlCache) Get(key string) (model.LoadPlan, bool) {
	plan, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return model.LoadPlan{}, false
	}

	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return clonePlan(plan), true
}

// Set adds or refreshes a plan, evicting the least recently used entry at capacity.
func (c *ttlCache) Set(key string, value model.LoadPlan) {
	if c.lru.Add(key, clonePlan(value)) {
		c.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

func (c *ttlCache) Invalidate(key string) {
	if c.lru.Remove(key) {
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear drops all entries and resets counters.
func (c *ttlCache) Clear() {
	c.lru.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	metrics.RecordCacheOperation("clear", "success")
}

// Stop purges the cache. The LRU's expiry goroutine is owned by the library.
func (c *ttlCache) Stop() {
	c.lru.Purge()
}

func (c *ttlCache) Metrics() cache.Metrics {
	return cache.Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.lru.Len(),
		Capacity:  c.capacity,
	}
}

// clonePlan copies the ID slice so callers cannot mutate cached state.
func clonePlan(p model.LoadPlan) model.LoadPlan {
	ids := make([]string, len(p.SelectedOrderIDs))
	copy(ids, p.SelectedOrderIDs)
	p.SelectedOrderIDs = ids
	return p
}
