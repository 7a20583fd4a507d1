package response

import (
	"encoding/json"
	"time"

	"storefront_bundles/internal/domain/entities"
)

type CheckoutPaymentResponse struct {
	PaymentID string    `json:"payment_id"`
	CartID    string    `json:"cart_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	LineIDs   []string  `json:"line_ids"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`

	ProviderPayloadRaw string         `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]any `json:"provider_payload,omitempty"`
}

func FromCheckoutPayment(p entities.CheckoutPayment) CheckoutPaymentResponse {
	res := CheckoutPaymentResponse{
		PaymentID:          p.ID,
		CartID:             p.CartID,
		Amount:             p.Amount,
		Currency:           p.Currency,
		LineIDs:            p.LineIDs,
		Date:               p.Date,
		Status:             string(p.Status),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
	if len(p.ProviderPayloadRaw) > 0 {
		var parsed map[string]any
		if err := json.Unmarshal(p.ProviderPayloadRaw, &parsed); err == nil {
			res.ProviderPayload = parsed
		}
	}
	return res
}

func FromCheckoutPayments(ps []entities.CheckoutPayment) []CheckoutPaymentResponse {
	out := make([]CheckoutPaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromCheckoutPayment(p))
	}
	return out
}
