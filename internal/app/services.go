// Package app provides service initialization.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/load-optimizer/config"
	"github.com/guttosm/load-optimizer/internal/service"
	"github.com/guttosm/load-optimizer/internal/service/cache"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Optimizer *service.LoadOptimizerService
	// Redis is set when plans are cached in Redis.
	Redis *service.RedisCache
}

// InitializeServices builds the optimization service and its plan cache.
// An unreachable Redis falls back to the in-memory cache.
func InitializeServices(ctx context.Context, cfg config.Config) *ServiceComponents {
	components := &ServiceComponents{}

	opts := []service.Option{
		service.WithMaxOrders(cfg.Optimizer.MaxOrders),
		service.WithTimeout(cfg.Optimizer.Timeout),
	}

	if c := initializeCache(ctx, cfg.Cache, components); c != nil {
		opts = append(opts, service.WithCacheInterface(c))
	}

	components.Optimizer = service.NewLoadOptimizerService(opts...)
	return components
}

func initializeCache(ctx context.Context, cfg config.CacheConfig, components *ServiceComponents) cache.Cache {
	switch cfg.Backend {
	case config.CacheBackendNone:
		log.Info().Msg("Plan cache disabled")
		return nil
	case config.CacheBackendRedis:
		rc, err := service.NewRedisCache(ctx, cfg.RedisURL, cfg.TTL)
		if err == nil {
			log.Info().Dur("ttl", cfg.TTL).Msg("Using Redis plan cache")
			components.Redis = rc
			return rc
		}
		log.Error().Err(err).Msg("Failed to connect to Redis - falling back to in-memory cache")
	}

	if cfg.Size <= 0 {
		return nil
	}
	log.Info().Int("size", cfg.Size).Dur("ttl", cfg.TTL).Msg("Using in-memory plan cache")
	return service.NewShardedCache(cfg.Size, cfg.TTL, cfg.Shards)
}

// Close releases cache resources, including the Redis client.
func (s *ServiceComponents) Close() {
	if s == nil || s.Optimizer == nil {
		return
	}
	s.Optimizer.Close()
}
