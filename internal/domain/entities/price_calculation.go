package entities

// PriceStatus tracks the derived bundle price.
type PriceStatus string

const (
	// PriceStatusEmpty means no selection, so no price request exists.
	PriceStatusEmpty PriceStatus = "empty"
	// PriceStatusPending means a request is scheduled or in flight.
	PriceStatusPending PriceStatus = "pending"
	PriceStatusReady   PriceStatus = "ready"
	// PriceStatusUnavailable means the last request failed. Clients render it as
	// "price pending", never as a stale or zero total.
	PriceStatusUnavailable PriceStatus = "unavailable"
)

// PriceLine is one entry of the backend price breakdown.
type PriceLine struct {
	ItemID string  `json:"item_id"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// PriceCalculation is the server-computed total for a selection.
type PriceCalculation struct {
	Status    PriceStatus `json:"status"`
	Total     float64     `json:"total"`
	Currency  string      `json:"currency,omitempty"`
	Breakdown []PriceLine `json:"breakdown,omitempty"`
	ItemIDs   []string    `json:"item_ids,omitempty"`
}

// HasTotal reports whether Total may be displayed.
func (p PriceCalculation) HasTotal() bool {
	return p.Status == PriceStatusReady
}
