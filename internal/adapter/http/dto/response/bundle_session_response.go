package response

import (
	"fmt"

	"storefront_bundles/internal/domain/entities"
)

type BundleItemResponse struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Selected bool    `json:"selected"`
}

type PriceLineResponse struct {
	ItemID string  `json:"item_id"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// PriceResponse carries a total only while the price is ready. Any other status
// is rendered by clients as "price pending".
type PriceResponse struct {
	Status    string              `json:"status"`
	Total     *float64            `json:"total,omitempty"`
	Currency  string              `json:"currency,omitempty"`
	Breakdown []PriceLineResponse `json:"breakdown,omitempty"`
}

type SessionResponse struct {
	SessionID       string               `json:"session_id"`
	Phase           string               `json:"phase"`
	ProductID       string               `json:"product_id,omitempty"`
	BundleSize      int                  `json:"bundle_size,omitempty"`
	SizeLimit       int                  `json:"size_limit"`
	Remaining       int                  `json:"remaining"`
	IsFull          bool                 `json:"is_full"`
	SelectedItemIDs []string             `json:"selected_item_ids"`
	Categories      []string             `json:"categories,omitempty"`
	Items           []BundleItemResponse `json:"items,omitempty"`
	Price           PriceResponse        `json:"price"`
	CatalogError    string               `json:"catalog_error,omitempty"`
	Notice          string               `json:"notice,omitempty"`
}

type CategorySelectionResponse struct {
	SessionResponse
	Category  string `json:"category"`
	Requested int    `json:"requested"`
	Added     int    `json:"added"`
	Partial   bool   `json:"partial"`
}

func FromSessionSnapshot(s entities.SessionSnapshot) SessionResponse {
	res := SessionResponse{
		SessionID:       s.SessionID,
		Phase:           string(s.Phase),
		ProductID:       s.ProductID,
		SizeLimit:       s.SizeLimit,
		Remaining:       s.Remaining(),
		IsFull:          s.IsFull(),
		SelectedItemIDs: s.SelectedItemIDs,
		Price:           fromPrice(s.Price),
		CatalogError:    s.CatalogError,
	}
	if res.SelectedItemIDs == nil {
		res.SelectedItemIDs = []string{}
	}
	if s.Catalog != nil {
		selected := make(map[string]struct{}, len(s.SelectedItemIDs))
		for _, id := range s.SelectedItemIDs {
			selected[id] = struct{}{}
		}
		res.BundleSize = s.Catalog.BundleSize
		res.Categories = s.Catalog.Categories()
		res.Items = make([]BundleItemResponse, 0, len(s.Catalog.BundleItems))
		for _, it := range s.Catalog.BundleItems {
			_, ok := selected[it.ID]
			res.Items = append(res.Items, BundleItemResponse{
				ID:       it.ID,
				Category: it.Category,
				Name:     it.Name,
				Price:    it.Price,
				Selected: ok,
			})
		}
	}
	return res
}

func FromCategorySelection(s entities.SessionSnapshot, r entities.CategorySelectionResult) CategorySelectionResponse {
	res := CategorySelectionResponse{
		SessionResponse: FromSessionSnapshot(s),
		Category:        r.Category,
		Requested:       r.Requested,
		Added:           r.Added,
		Partial:         r.Partial,
	}
	if r.Partial {
		res.Notice = PartialFillNotice(r.Added, r.Requested)
	}
	return res
}

func PartialFillNotice(added, requested int) string {
	return fmt.Sprintf("added %d of %d; bundle full", added, requested)
}

func fromPrice(p entities.PriceCalculation) PriceResponse {
	res := PriceResponse{Status: string(p.Status)}
	if !p.HasTotal() {
		return res
	}
	total := p.Total
	res.Total = &total
	res.Currency = p.Currency
	for _, l := range p.Breakdown {
		res.Breakdown = append(res.Breakdown, PriceLineResponse{ItemID: l.ItemID, Label: l.Label, Amount: l.Amount})
	}
	return res
}
