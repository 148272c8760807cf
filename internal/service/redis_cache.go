package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/load-optimizer/internal/domain/model"
	"github.com/guttosm/load-optimizer/internal/metrics"
)

const (
	defaultRedisPrefix    = "load-optimizer:"
	defaultRedisOpTimeout = 500 * time.Millisecond
	redisScanCount        = 200
)

// RedisCache stores plans in Redis so replicas share results.
// Redis failures degrade to cache misses.
type RedisCache struct {
	client    *redis.Client
	prefix    string
	ttl       time.Duration
	opTimeout time.Duration
}

// NewRedisCache connects using a redis:// URL and verifies the connection.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	c := NewRedisCacheWithClient(redis.NewClient(opts), ttl)
	if err := c.HealthCheck(ctx); err != nil {
		_ = c.client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return c, nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client:    client,
		prefix:    defaultRedisPrefix,
		ttl:       ttl,
		opTimeout: defaultRedisOpTimeout,
	}
}

func (c *RedisCache) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.opTimeout)
}

// Get returns the plan stored under key.
func (c *RedisCache) Get(key string) (model.LoadPlan, bool) {
	ctx, cancel := c.context()
	defer cancel()

	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("Redis cache get failed")
			metrics.RecordCacheOperation("get", "error")
			return model.LoadPlan{}, false
		}
		metrics.RecordCacheOperation("get", "miss")
		return model.LoadPlan{}, false
	}

	var plan model.LoadPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cached plan")
		metrics.RecordCacheOperation("get", "error")
		return model.LoadPlan{}, false
	}
	if plan.SelectedOrderIDs == nil {
		plan.SelectedOrderIDs = []string{}
	}

	metrics.RecordCacheOperation("get", "hit")
	return plan, true
}

// Set stores the plan with the configured TTL; zero TTL means no expiry.
func (c *RedisCache) Set(key string, value model.LoadPlan) {
	raw, err := json.Marshal(value)
	if err != nil {
		metrics.RecordCacheOperation("set", "error")
		return
	}

	ctx, cancel := c.context()
	defer cancel()

	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache set failed")
		metrics.RecordCacheOperation("set", "error")
		return
	}
	metrics.RecordCacheOperation("set", "success")
}

// Invalidate removes one key.
func (c *RedisCache) Invalidate(key string) {
	ctx, cancel := c.context()
	defer cancel()

	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis cache invalidate failed")
		return
	}
	metrics.RecordCacheOperation("invalidate", "success")
}

// Clear deletes every key under the cache prefix. Other keys in the database are left alone.
func (c *RedisCache) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*c.opTimeout)
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", redisScanCount).Result()
		if err != nil {
			log.Warn().Err(err).Msg("Redis cache clear failed")
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				log.Warn().Err(err).Msg("Redis cache clear failed")
				return
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	metrics.RecordCacheOperation("clear", "success")
}

// Stop closes the client.
func (c *RedisCache) Stop() {
	if err := c.client.Close(); err != nil {
		log.Warn().Err(err).Msg("Error closing Redis client")
	}
}

// HealthCheck pings Redis.
func (c *RedisCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
