package interfaces

import (
	"context"
	"errors"
	"storefront_bundles/internal/domain/entities"
)

// ErrBundleNotFound is returned when a product has no bundle configuration.
var ErrBundleNotFound = errors.New("bundle configuration not found")

// IBundleCatalogProvider supplies the selectable items and nominal size of a
// product's bundle. Implementations return configs with every item id resolved.
type IBundleCatalogProvider interface {
	Fetch(ctx context.Context, productID string) (entities.BundleConfig, error)
}

// ICatalogCache stores bundle configs between fetches.
//
// Get reports found=false on a miss; errors are reserved for cache failures.
type ICatalogCache interface {
	Get(ctx context.Context, productID string) (cfg entities.BundleConfig, found bool, err error)
	Set(ctx context.Context, cfg entities.BundleConfig) error
	Invalidate(ctx context.Context, productID string) error
}
