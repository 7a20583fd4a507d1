package cache

import (
	"context"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/infrastructure/metrics"
	"storefront_bundles/internal/usecase/interfaces"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// CachingCatalogProvider applies cache-aside in front of a catalog provider.
// Concurrent misses for the same product share one upstream fetch.
//
// Cache failures never fail a fetch; they degrade to the upstream call.
type CachingCatalogProvider struct {
	next   interfaces.IBundleCatalogProvider
	cache  interfaces.ICatalogCache
	group  singleflight.Group
	logger *zap.Logger
}

var _ interfaces.IBundleCatalogProvider = (*CachingCatalogProvider)(nil)

func NewCachingCatalogProvider(next interfaces.IBundleCatalogProvider, cache interfaces.ICatalogCache, logger *zap.Logger) *CachingCatalogProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingCatalogProvider{next: next, cache: cache, logger: logger}
}

func (p *CachingCatalogProvider) Fetch(ctx context.Context, productID string) (entities.BundleConfig, error) {
	cfg, found, err := p.cache.Get(ctx, productID)
	switch {
	case err != nil:
		metrics.RecordCatalogCache(resultError)
		p.logger.Warn("[bundle][cache] get failed", zap.String("product_id", productID), zap.Error(err))
	case found:
		metrics.RecordCatalogCache(resultHit)
		return cfg, nil
	default:
		metrics.RecordCatalogCache(resultMiss)
	}

	// The shared fetch outlives any single caller: one caller giving up must
	// not fail the others. The upstream client bounds it with its own timeout.
	ch := p.group.DoChan(productID, func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		cfg, err := p.next.Fetch(fetchCtx, productID)
		if err != nil {
			return entities.BundleConfig{}, err
		}
		if err := p.cache.Set(fetchCtx, cfg); err != nil {
			p.logger.Warn("[bundle][cache] set failed", zap.String("product_id", productID), zap.Error(err))
		}
		return cfg, nil
	})

	select {
	case <-ctx.Done():
		return entities.BundleConfig{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return entities.BundleConfig{}, res.Err
		}
		if res.Shared {
			p.logger.Debug("[bundle][cache] shared upstream fetch", zap.String("product_id", productID))
		}
		return res.Val.(entities.BundleConfig), nil
	}
}

// Invalidate forgets the cached catalog so the next fetch goes upstream.
func (p *CachingCatalogProvider) Invalidate(ctx context.Context, productID string) error {
	return p.cache.Invalidate(ctx, productID)
}
