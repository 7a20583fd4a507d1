package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		_, err := NewMercadoPagoGateway(Options{})
		if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
			t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
		}
	})

	t.Run("mock mode needs no token", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(Options{MockMode: true})
		require.NoError(t, err)
		assert.True(t, g.MockMode())
	})
}

func TestMercadoPagoGateway_CreatePayment(t *testing.T) {
	t.Run("mock approves and echoes payload", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(Options{MockMode: true})
		require.NoError(t, err)
		fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		g.now = func() time.Time { return fixed }

		id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"external_reference":"cart-1","transaction_amount":42.5}`))
		require.NoError(t, err)
		assert.Equal(t, "approved", status)
		assert.NotEmpty(t, id)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, id, body["id"])
		assert.Equal(t, "cart-1", body["external_reference"])
		assert.Equal(t, 42.5, body["transaction_amount"])
		assert.Equal(t, fixed.Format(time.RFC3339Nano), body["date_created"])
	})

	t.Run("mock tolerates invalid payload", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(Options{MockMode: true})
		require.NoError(t, err)

		_, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{`))
		require.NoError(t, err)
		assert.Equal(t, "approved", status)
		assert.True(t, json.Valid(raw))
	})

	t.Run("unconfigured gateway", func(t *testing.T) {
		var g *MercadoPagoGateway
		_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{}`))
		if !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
			t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
		}
	})
}
