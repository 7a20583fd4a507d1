// Package cache keeps bundle catalogs close to the service so that opening a
// session does not always hit the storefront backend.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "bundle:catalog:"

// RedisCatalogCache stores catalogs as JSON under prefix+productID.
type RedisCatalogCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ interfaces.ICatalogCache = (*RedisCatalogCache)(nil)

func NewRedisCatalogCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCatalogCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisCatalogCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCatalogCache) Get(ctx context.Context, productID string) (entities.BundleConfig, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+productID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entities.BundleConfig{}, false, nil
		}
		return entities.BundleConfig{}, false, fmt.Errorf("cache get error: %w", err)
	}

	var cfg entities.BundleConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return entities.BundleConfig{}, false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return cfg, true, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, cfg entities.BundleConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+cfg.ProductID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context, productID string) error {
	if err := c.client.Del(ctx, c.prefix+productID).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// Ping checks if the Redis connection is healthy.
func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
