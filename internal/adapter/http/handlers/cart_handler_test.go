package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"storefront_bundles/internal/adapter/http/handlers/mocks"
	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newCartRouter(t *testing.T) (*gin.Engine, *mocks.MockICartUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockICartUseCase(ctrl)
	h := NewCartHandler(uc, nil)

	r := gin.New()
	r.GET("/v1/carts/:cart_id/items", h.ListLines)
	r.DELETE("/v1/carts/:cart_id/items/:line_id", h.RemoveLine)
	r.PATCH("/v1/carts/:cart_id/items/:line_id/selection", h.UpdateSelection)
	return r, uc
}

func TestCartHandler_ListLines(t *testing.T) {
	r, uc := newCartRouter(t)
	now := time.Now()
	uc.EXPECT().ListLines(gomock.Any(), "cart-1").Return([]entities.CartLineItem{
		{ID: "l-1", CartID: "cart-1", ProductID: "p-1", Quantity: 1, BundleSize: 3, SelectedItemIDs: []string{"A"}, CreatedAt: now},
		{ID: "l-2", CartID: "cart-1", ProductID: "p-2", Quantity: 1, BundleSize: 3, CreatedAt: now},
	}, nil)

	w := doJSON(r, http.MethodGet, "/v1/carts/cart-1/items", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Lines           []map[string]any `json:"lines"`
		IncompleteLines int              `json:"incomplete_lines"`
		CanCheckout     bool             `json:"can_checkout"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body.Lines) != 2 || body.IncompleteLines != 1 || body.CanCheckout {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if body.Lines[1]["needs_customization"] != true {
		t.Fatalf("expected second line to need customization: %s", w.Body.String())
	}
}

func TestCartHandler_RemoveLine(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		r, uc := newCartRouter(t)
		uc.EXPECT().RemoveLine(gomock.Any(), "cart-1", "l-1").Return(nil)

		w := doJSON(r, http.MethodDelete, "/v1/carts/cart-1/items/l-1", "")
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		r, uc := newCartRouter(t)
		uc.EXPECT().RemoveLine(gomock.Any(), "cart-1", "l-9").Return(usecase.ErrCartLineNotFound)

		w := doJSON(r, http.MethodDelete, "/v1/carts/cart-1/items/l-9", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "CART_LINE_NOT_FOUND" {
			t.Fatalf("unexpected error body: %+v", body)
		}
	})
}

func TestCartHandler_UpdateSelection(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := newCartRouter(t)
		w := doJSON(r, http.MethodPatch, "/v1/carts/cart-1/items/l-1/selection", `{`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("keeps order", func(t *testing.T) {
		r, uc := newCartRouter(t)
		uc.EXPECT().UpdateSelection(gomock.Any(), "cart-1", "l-1", []string{"C", "A"}).Return(entities.CartLineItem{
			ID: "l-1", CartID: "cart-1", ProductID: "p-1", Quantity: 1, BundleSize: 3, SelectedItemIDs: []string{"C", "A"},
		}, nil)

		w := doJSON(r, http.MethodPatch, "/v1/carts/cart-1/items/l-1/selection", `{"selected_item_ids":["C","A"]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			SelectedItemIDs []string `json:"selected_item_ids"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body.SelectedItemIDs) != 2 || body.SelectedItemIDs[0] != "C" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("selection too large", func(t *testing.T) {
		r, uc := newCartRouter(t)
		uc.EXPECT().UpdateSelection(gomock.Any(), "cart-1", "l-1", gomock.Any()).Return(entities.CartLineItem{}, usecase.ErrSelectionTooLarge)

		w := doJSON(r, http.MethodPatch, "/v1/carts/cart-1/items/l-1/selection", `{"selected_item_ids":["A","B","C","D"]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "SELECTION_TOO_LARGE" {
			t.Fatalf("unexpected error body: %+v", body)
		}
	})

	t.Run("catalog unavailable", func(t *testing.T) {
		r, uc := newCartRouter(t)
		uc.EXPECT().UpdateSelection(gomock.Any(), "cart-1", "l-1", gomock.Any()).Return(entities.CartLineItem{}, usecase.ErrCatalogFetchFailed)

		w := doJSON(r, http.MethodPatch, "/v1/carts/cart-1/items/l-1/selection", `{"selected_item_ids":["A"]}`)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}
