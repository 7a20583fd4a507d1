package interfaces

import (
	"context"
	"storefront_bundles/internal/domain/entities"
)

// ICheckoutPaymentRepository abstracts DynamoDB persistence for CheckoutPayment.
type ICheckoutPaymentRepository interface {
	Create(ctx context.Context, p entities.CheckoutPayment) (entities.CheckoutPayment, error)
	GetByID(ctx context.Context, id string) (entities.CheckoutPayment, error)
	ListByCartID(ctx context.Context, cartID string) ([]entities.CheckoutPayment, error)
}
