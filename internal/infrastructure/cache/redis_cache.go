package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/revenue"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// defaultScanBatchSize bounds SCAN page size during invalidation
const defaultScanBatchSize = 100

// RedisSummaryCache implements SummaryCache using Redis
type RedisSummaryCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	logger     *zap.Logger
}

// RedisSummaryCacheOption is a functional option for configuring the cache
type RedisSummaryCacheOption func(*RedisSummaryCache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisSummaryCacheOption {
	return func(c *RedisSummaryCache) {
		c.logger = logger
	}
}

// NewRedisSummaryCache creates a new Redis-based summary cache
func NewRedisSummaryCache(cfg config.RedisConfig, opts ...RedisSummaryCacheOption) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisSummaryCache{
		client:     client,
		ownsClient: true,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisSummaryCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisSummaryCacheWithClient(client *redis.Client, opts ...RedisSummaryCacheOption) *RedisSummaryCache {
	cache := &RedisSummaryCache{
		client:     client,
		ownsClient: false,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get retrieves a summary from cache
func (c *RedisSummaryCache) Get(ctx context.Context, key Key) (*revenue.Summary, error) {
	cacheKey := key.String()

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for revenue summary", zap.String("key", cacheKey))
		return nil, ErrCacheMiss
	}
	if err != nil {
		c.logger.Error("Failed to get summary from cache",
			zap.String("key", cacheKey),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get summary from cache: %w", err)
	}

	var summary revenue.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Error("Failed to unmarshal cached summary",
			zap.String("key", cacheKey),
			zap.Error(err))
		// Drop the corrupted entry and treat it as a miss
		_ = c.client.Del(ctx, cacheKey)
		return nil, ErrCacheMiss
	}

	c.logger.Debug("Cache hit for revenue summary", zap.String("key", cacheKey))
	return &summary, nil
}

// Set stores a summary in cache
func (c *RedisSummaryCache) Set(ctx context.Context, key Key, summary *revenue.Summary, ttl time.Duration) error {
	if summary == nil {
		return nil
	}

	cacheKey := key.String()

	data, err := json.Marshal(summary)
	if err != nil {
		c.logger.Error("Failed to marshal summary",
			zap.String("key", cacheKey),
			zap.Error(err))
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set summary in cache",
			zap.String("key", cacheKey),
			zap.Error(err))
		return fmt.Errorf("failed to set summary in cache: %w", err)
	}

	c.logger.Debug("Cached revenue summary",
		zap.String("key", cacheKey),
		zap.Duration("ttl", ttl))
	return nil
}

// InvalidateProperty removes every cached summary of one property under one
// tenant. SCAN keeps Redis responsive; the prefix carries the tenant, so the
// pattern cannot match other tenants' keys.
func (c *RedisSummaryCache) InvalidateProperty(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID) error {
	deleted, err := c.deleteByPrefix(ctx, PropertyPrefix(tctx, SummaryKind, propertyID))
	if err != nil {
		return err
	}

	c.logger.Debug("Invalidated property summaries",
		zap.String("property_id", propertyID.String()),
		zap.Int64("deleted_count", deleted))
	return nil
}

// InvalidateTenant removes every cached entry of one tenant
func (c *RedisSummaryCache) InvalidateTenant(ctx context.Context, tctx tenancy.Context) error {
	deleted, err := c.deleteByPrefix(ctx, TenantPrefix(tctx))
	if err != nil {
		return err
	}

	c.logger.Debug("Invalidated tenant cache entries",
		zap.String("tenant_id", tctx.TenantID().String()),
		zap.Int64("deleted_count", deleted))
	return nil
}

func (c *RedisSummaryCache) deleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	pattern := prefix + "*"

	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan summary keys", zap.Error(err))
			return deletedCount, fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete summary keys", zap.Error(err))
				return deletedCount, fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	return deletedCount, nil
}

// Close releases any resources held by the cache
func (c *RedisSummaryCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisSummaryCache) GetClient() *redis.Client {
	return c.client
}

var _ SummaryCache = (*RedisSummaryCache)(nil)
