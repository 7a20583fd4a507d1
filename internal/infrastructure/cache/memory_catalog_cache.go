package cache

import (
	"context"
	"time"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/usecase/interfaces"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryCatalogCache is the in-process cache used when no Redis is configured.
type MemoryCatalogCache struct {
	items *ttlcache.Cache[string, entities.BundleConfig]
}

var _ interfaces.ICatalogCache = (*MemoryCatalogCache)(nil)

// NewMemoryCatalogCache returns a cache whose entries expire after ttl. Expired
// entries are dropped lazily on access.
func NewMemoryCatalogCache(ttl time.Duration) *MemoryCatalogCache {
	return &MemoryCatalogCache{
		items: ttlcache.New[string, entities.BundleConfig](
			ttlcache.WithTTL[string, entities.BundleConfig](ttl),
			ttlcache.WithDisableTouchOnHit[string, entities.BundleConfig](),
		),
	}
}

func (c *MemoryCatalogCache) Get(_ context.Context, productID string) (entities.BundleConfig, bool, error) {
	item := c.items.Get(productID)
	if item == nil {
		return entities.BundleConfig{}, false, nil
	}
	return item.Value(), true, nil
}

func (c *MemoryCatalogCache) Set(_ context.Context, cfg entities.BundleConfig) error {
	c.items.Set(cfg.ProductID, cfg, ttlcache.DefaultTTL)
	return nil
}

func (c *MemoryCatalogCache) Invalidate(_ context.Context, productID string) error {
	c.items.Delete(productID)
	return nil
}
