package response

import (
	"time"

	"storefront_bundles/internal/domain/entities"
)

type CartLineResponse struct {
	LineID             string    `json:"line_id"`
	CartID             string    `json:"cart_id"`
	ProductID          string    `json:"product_id"`
	Quantity           int       `json:"quantity"`
	BundleSize         int       `json:"bundle_size"`
	SelectedItemIDs    []string  `json:"selected_item_ids"`
	NeedsCustomization bool      `json:"needs_customization"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CartResponse struct {
	CartID          string             `json:"cart_id"`
	Lines           []CartLineResponse `json:"lines"`
	IncompleteLines int                `json:"incomplete_lines"`
	CanCheckout     bool               `json:"can_checkout"`
}

func FromCartLine(l entities.CartLineItem) CartLineResponse {
	ids := l.SelectedItemIDs
	if ids == nil {
		ids = []string{}
	}
	return CartLineResponse{
		LineID:             l.ID,
		CartID:             l.CartID,
		ProductID:          l.ProductID,
		Quantity:           l.Quantity,
		BundleSize:         l.BundleSize,
		SelectedItemIDs:    ids,
		NeedsCustomization: l.NeedsCustomization(),
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func FromCartLines(cartID string, lines []entities.CartLineItem) CartResponse {
	res := CartResponse{CartID: cartID, Lines: make([]CartLineResponse, 0, len(lines))}
	for _, l := range lines {
		if l.NeedsCustomization() {
			res.IncompleteLines++
		}
		res.Lines = append(res.Lines, FromCartLine(l))
	}
	res.CanCheckout = len(lines) > 0 && res.IncompleteLines == 0
	return res
}
