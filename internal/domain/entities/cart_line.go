package entities

import "time"

// CartLineItem is a bundle product placed in a cart.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (cart_id-index): cart_id
//
// SelectedItemIDs keeps the selection order the customer built. A line without
// a selection needs customization and blocks checkout.
type CartLineItem struct {
	ID              string    `json:"id"`
	CartID          string    `json:"cart_id"`
	ProductID       string    `json:"product_id"`
	Quantity        int       `json:"quantity"`
	BundleSize      int       `json:"bundle_size"`
	SelectedItemIDs []string  `json:"selected_item_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (l CartLineItem) NeedsCustomization() bool {
	return len(l.SelectedItemIDs) == 0
}
