package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// PaymentStatusFromProvider maps a Mercado Pago status onto ours.
func PaymentStatusFromProvider(status string) PaymentStatus {
	switch status {
	case "approved", "authorized":
		return PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusRejected
	default:
		return PaymentStatusPending
	}
}

// CheckoutPayment is the payment created when a cart is checked out.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (cart_id-index): cart_id
//
// ProviderPayloadRaw keeps the gateway response body for traceability.
type CheckoutPayment struct {
	ID                 string          `json:"id"`
	CartID             string          `json:"cart_id"`
	Amount             float64         `json:"amount"`
	Currency           string          `json:"currency"`
	LineIDs            []string        `json:"line_ids"`
	Date               time.Time       `json:"date"`
	Status             PaymentStatus   `json:"status"`
	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
}
