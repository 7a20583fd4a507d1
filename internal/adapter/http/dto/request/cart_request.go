package request

// UpdateSelectionRequest re-customizes a cart line. The order of
// selected_item_ids is kept.
type UpdateSelectionRequest struct {
	SelectedItemIDs []string `json:"selected_item_ids"`
}
