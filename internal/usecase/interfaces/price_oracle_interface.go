package interfaces

import (
	"context"
	"errors"
	"storefront_bundles/internal/domain/entities"
)

// ErrInvalidSelection is returned when the backend rejects a selection, e.g.
// because it violates the bundle size server-side.
var ErrInvalidSelection = errors.New("invalid bundle selection")

// IPriceOracle computes the total of a bundle selection. The backend is the
// source of truth for pricing.
type IPriceOracle interface {
	Quote(ctx context.Context, productID string, itemIDs []string) (entities.PriceCalculation, error)
}
