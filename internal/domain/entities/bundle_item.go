package entities

import "strings"

// ItemKey is the fallback identity of a bundle item when the backend does not
// supply an id.
//
// Uniqueness only holds if the catalog never emits two id-less items sharing
// the same (category, name) pair.
type ItemKey struct {
	Category string
	Name     string
}

func (k ItemKey) String() string {
	return k.Category + "-" + k.Name
}

// BundleItem is one selectable catalog entry of a customizable bundle.
type BundleItem struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

func (i BundleItem) Key() ItemKey {
	return ItemKey{Category: i.Category, Name: i.Name}
}

// ResolveID returns the backend id, or the composite key when none was provided.
func (i BundleItem) ResolveID() string {
	if id := strings.TrimSpace(i.ID); id != "" {
		return id
	}
	return i.Key().String()
}
