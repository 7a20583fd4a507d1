package interfaces

import (
	"context"
	"storefront_bundles/internal/domain/entities"
)

// ICartRepository abstracts DynamoDB persistence for cart lines.
//
// Lookups return a zero-value line (empty ID) when nothing matches.
type ICartRepository interface {
	Create(ctx context.Context, line entities.CartLineItem) (entities.CartLineItem, error)
	GetByID(ctx context.Context, id string) (entities.CartLineItem, error)
	ListByCartID(ctx context.Context, cartID string) ([]entities.CartLineItem, error)
	UpdateSelection(ctx context.Context, id string, itemIDs []string) (entities.CartLineItem, error)
	Delete(ctx context.Context, id string) error
}
