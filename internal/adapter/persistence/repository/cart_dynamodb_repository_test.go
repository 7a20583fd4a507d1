package repository

import (
	"context"
	"testing"
	"time"

	"storefront_bundles/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartDynamoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCartDynamoRepository(newFakeDynamo(), "cart_items")
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	line := entities.CartLineItem{
		ID:              "line-1",
		CartID:          "cart-1",
		ProductID:       "p-1",
		Quantity:        2,
		BundleSize:      3,
		SelectedItemIDs: []string{"C", "A", "B"},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	t.Run("create and get keep selection order", func(t *testing.T) {
		_, err := repo.Create(ctx, line)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, "line-1")
		require.NoError(t, err)
		assert.Equal(t, line, got)
	})

	t.Run("duplicate create fails", func(t *testing.T) {
		_, err := repo.Create(ctx, line)
		require.Error(t, err)
	})

	t.Run("missing line is zero value", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("incomplete line round trips with empty selection", func(t *testing.T) {
		_, err := repo.Create(ctx, entities.CartLineItem{ID: "line-2", CartID: "cart-1", ProductID: "p-2", Quantity: 1, BundleSize: 4, CreatedAt: now, UpdatedAt: now})
		require.NoError(t, err)
		got, err := repo.GetByID(ctx, "line-2")
		require.NoError(t, err)
		assert.True(t, got.NeedsCustomization())
	})

	t.Run("list by cart", func(t *testing.T) {
		_, err := repo.Create(ctx, entities.CartLineItem{ID: "line-3", CartID: "cart-2", ProductID: "p-1", Quantity: 1, CreatedAt: now, UpdatedAt: now})
		require.NoError(t, err)

		lines, err := repo.ListByCartID(ctx, "cart-1")
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "line-1", lines[0].ID)
		assert.Equal(t, "line-2", lines[1].ID)
	})

	t.Run("update selection", func(t *testing.T) {
		nowUTC = func() time.Time { return now.Add(time.Hour) }
		defer func() { nowUTC = func() time.Time { return time.Now().UTC() } }()

		got, err := repo.UpdateSelection(ctx, "line-2", []string{"X", "Y"})
		require.NoError(t, err)
		assert.Equal(t, []string{"X", "Y"}, got.SelectedItemIDs)
		assert.True(t, got.UpdatedAt.Equal(now.Add(time.Hour)))

		missing, err := repo.UpdateSelection(ctx, "nope", []string{"X"})
		require.NoError(t, err)
		assert.Empty(t, missing.ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "line-3"))
		got, err := repo.GetByID(ctx, "line-3")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})
}

func TestCheckoutPaymentDynamoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCheckoutPaymentDynamoRepository(newFakeDynamo(), "payments")
	p := entities.CheckoutPayment{
		ID:                 "pay-1",
		CartID:             "cart-1",
		Amount:             59.9,
		Currency:           "BRL",
		LineIDs:            []string{"line-1"},
		Date:               time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: []byte(`{"id":"pay-1"}`),
	}

	_, err := repo.Create(ctx, p)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, p.Amount, got.Amount)
	assert.Equal(t, p.LineIDs, got.LineIDs)
	assert.Equal(t, p.Status, got.Status)
	assert.JSONEq(t, `{"id":"pay-1"}`, string(got.ProviderPayloadRaw))
	assert.True(t, got.Date.Equal(p.Date))

	list, err := repo.ListByCartID(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	empty, err := repo.ListByCartID(ctx, "cart-9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
