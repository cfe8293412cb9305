package cache

import (
	"fmt"

	"github.com/pms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SummaryCacheFactory creates summary caches based on configuration
type SummaryCacheFactory struct {
	cacheConfig         config.CacheConfig
	redisConfig         config.RedisConfig
	logger              *zap.Logger
	allowMemoryFallback bool
}

// SummaryCacheFactoryOption is a functional option for configuring the factory
type SummaryCacheFactoryOption func(*SummaryCacheFactory)

// WithLogger sets the logger for the factory and the caches it creates
func WithLogger(logger *zap.Logger) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.logger = logger
	}
}

// WithMemoryFallback controls falling back to the in-memory cache when Redis
// is unavailable. Default is true.
func WithMemoryFallback(allow bool) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.allowMemoryFallback = allow
	}
}

// NewSummaryCacheFactory creates a new factory
func NewSummaryCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...SummaryCacheFactoryOption) *SummaryCacheFactory {
	f := &SummaryCacheFactory{
		cacheConfig:         cacheCfg,
		redisConfig:         redisCfg,
		logger:              zap.NewNop(),
		allowMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache creates the configured cache backend. The "redis" backend
// falls back to in-memory when Redis is unreachable and fallback is allowed;
// the service keeps serving either way.
func (f *SummaryCacheFactory) CreateCache() (SummaryCache, error) {
	switch f.cacheConfig.Backend {
	case "memory":
		f.logger.Info("using in-memory summary cache")
		return NewInMemorySummaryCache(f.cacheConfig.MemorySize, f.cacheConfig.SummaryTTL), nil

	case "redis":
		redisCache, err := NewRedisSummaryCache(f.redisConfig, WithCacheLogger(f.logger))
		if err == nil {
			f.logger.Info("using Redis summary cache")
			return redisCache, nil
		}

		if !f.allowMemoryFallback {
			return nil, fmt.Errorf("Redis required for summary cache but unavailable: %w", err)
		}

		f.logger.Warn("Redis unavailable, falling back to in-memory summary cache. "+
			"Entries will not be shared across instances.",
			zap.Error(err),
		)
		return NewInMemorySummaryCache(f.cacheConfig.MemorySize, f.cacheConfig.SummaryTTL), nil

	default:
		return nil, fmt.Errorf("unknown cache backend: %q", f.cacheConfig.Backend)
	}
}
