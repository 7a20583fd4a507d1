package entities

// BundleConfig is the per-product bundle catalog.
//
// BundleItems keeps the backend order, which is also the display order. A config
// is replaced wholesale when the product changes and never mutated in place.
type BundleConfig struct {
	ProductID   string       `json:"product_id"`
	BundleSize  int          `json:"bundle_size"`
	BundleItems []BundleItem `json:"bundle_items"`
}

// Normalize returns a copy whose items all carry a resolved id.
func (c BundleConfig) Normalize() BundleConfig {
	items := make([]BundleItem, len(c.BundleItems))
	for i, it := range c.BundleItems {
		it.ID = it.ResolveID()
		items[i] = it
	}
	c.BundleItems = items
	return c
}

func (c BundleConfig) Item(id string) (BundleItem, bool) {
	for _, it := range c.BundleItems {
		if it.ID == id {
			return it, true
		}
	}
	return BundleItem{}, false
}

// ItemsInCategory returns the category's items in catalog order.
func (c BundleConfig) ItemsInCategory(category string) []BundleItem {
	var out []BundleItem
	for _, it := range c.BundleItems {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// Categories lists distinct categories in order of first appearance.
func (c BundleConfig) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range c.BundleItems {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}
