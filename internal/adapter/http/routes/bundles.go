package routes

import (
	"storefront_bundles/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathBundleSessions = "/bundles/sessions"
	PathCarts          = "/carts"
	PathCheckout       = "/checkout"
	PathPayments       = "/payments"
)

func addBundleRoutes(rg *gin.RouterGroup, h *handlers.BundleSessionHandler) {
	sessions := rg.Group(PathBundleSessions)
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:session_id", h.GetSession)
		sessions.DELETE("/:session_id", h.CloseSession)
		sessions.PUT("/:session_id/product", h.ChangeProduct)
		sessions.POST("/:session_id/reload", h.ReloadCatalog)

		sessions.POST("/:session_id/toggle", h.Toggle)
		sessions.POST("/:session_id/clear", h.ClearAll)
		sessions.POST("/:session_id/select-all", h.SelectAll)
		sessions.POST("/:session_id/select-category", h.SelectCategory)
		sessions.PATCH("/:session_id/size-limit", h.SetSizeLimit)

		sessions.POST("/:session_id/cart", h.AddToCart)
	}
}

func addCartRoutes(rg *gin.RouterGroup, h *handlers.CartHandler) {
	carts := rg.Group(PathCarts)
	{
		carts.GET("/:cart_id/items", h.ListLines)
		carts.DELETE("/:cart_id/items/:line_id", h.RemoveLine)
		carts.PATCH("/:cart_id/items/:line_id/selection", h.UpdateSelection)
	}
}

func addCheckoutRoutes(rg *gin.RouterGroup, h *handlers.CheckoutHandler) {
	checkout := rg.Group(PathCheckout)
	{
		checkout.POST("/:cart_id", h.Checkout)
		checkout.GET("/:cart_id/payments", h.ListPayments)
	}

	payments := rg.Group(PathPayments)
	{
		payments.GET("/:payment_id", h.GetPayment)
	}
}
