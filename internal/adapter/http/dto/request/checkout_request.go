package request

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrEmptyPaymentPayload = errors.New("mp_payload cannot be empty")

// CheckoutRequest is the optional envelope of the checkout route.
//
// `mp_payload` is forwarded to Mercado Pago as-is, except for the amount and
// reference fields the service fills in. A bare Mercado Pago body is accepted
// too.
type CheckoutRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}

// ParseCheckoutPayload extracts the Mercado Pago body from raw. An empty body
// yields an empty object.
func ParseCheckoutPayload(raw []byte) (json.RawMessage, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			w := strings.TrimSpace(string(wrapped))
			if w == "" || w == "null" {
				return nil, ErrEmptyPaymentPayload
			}
			return wrapped, nil
		}
	}
	return json.RawMessage(raw), nil
}
