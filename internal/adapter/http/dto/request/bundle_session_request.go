package request

import "strings"

type CreateSessionRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type ChangeProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type ToggleItemRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

type SelectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type SizeLimitRequest struct {
	SizeLimit int `json:"size_limit" binding:"required,gt=0"`
}

// AddToCartRequest places the session's bundle in a cart. Quantity defaults to 1.
type AddToCartRequest struct {
	CartID   string `json:"cart_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"gte=0"`
}

func (r AddToCartRequest) ResolveCartID() string {
	return strings.TrimSpace(r.CartID)
}

func (r AddToCartRequest) ResolveQuantity() int {
	if r.Quantity == 0 {
		return 1
	}
	return r.Quantity
}
