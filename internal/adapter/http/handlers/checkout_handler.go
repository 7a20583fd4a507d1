package handlers

import (
	"errors"
	"net/http"
	"sort"

	request "storefront_bundles/internal/adapter/http/dto/request"
	response "storefront_bundles/internal/adapter/http/dto/response"
	"storefront_bundles/internal/usecase"
	"storefront_bundles/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests for cart checkout and its payments.
type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
	logger  *zap.Logger
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase, logger *zap.Logger) *CheckoutHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutHandler{usecase: uc, logger: logger}
}

// Checkout pays for every line of a cart.
//
// @Summary      Check out a cart
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        cart_id  path      string                   true   "Cart ID"
// @Param        payload  body      request.CheckoutRequest  false  "Mercado Pago payload"
// @Success      200      {object}  response.CheckoutPaymentResponse
// @Failure      422      {object}  pkg.HTTPError
// @Router       /checkout/{cart_id} [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	cartID := c.Param("cart_id")
	log := h.logger.With(zap.String("cart_id", cartID))

	raw, err := c.GetRawData()
	if err != nil {
		log.Warn("[checkout][handler] failed reading body", zap.Error(err))
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	payload, err := request.ParseCheckoutPayload(raw)
	if err != nil {
		log.Warn("[checkout][handler] invalid payload", zap.Error(err))
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	p, err := h.usecase.Checkout(c.Request.Context(), cartID, payload)
	if err != nil {
		log.Warn("[checkout][handler] checkout failed", zap.Error(err))
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Info("[checkout][handler] checkout success", zap.String("payment_id", p.ID), zap.String("status", string(p.Status)))

	c.JSON(http.StatusOK, response.FromCheckoutPayment(p))
}

// ListPayments returns the payments made for a cart, most recent first.
//
// @Summary      List cart payments
// @Tags         checkout
// @Produce      json
// @Param        cart_id  path      string  true  "Cart ID"
// @Success      200      {array}   response.CheckoutPaymentResponse
// @Router       /checkout/{cart_id}/payments [get]
func (h *CheckoutHandler) ListPayments(c *gin.Context) {
	payments, err := h.usecase.ListPayments(c.Request.Context(), c.Param("cart_id"))
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date.After(payments[j].Date) })
	c.JSON(http.StatusOK, response.FromCheckoutPayments(payments))
}

// GetPayment returns one payment.
//
// @Summary      Get a payment
// @Tags         checkout
// @Produce      json
// @Param        payment_id  path      string  true  "Payment ID"
// @Success      200         {object}  response.CheckoutPaymentResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /payments/{payment_id} [get]
func (h *CheckoutHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetPayment(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutPayment(p))
}

func mapCheckoutError(err error) *pkg.AppError {
	var incomplete *usecase.IncompleteLinesError
	switch {
	case errors.As(err, &incomplete):
		return pkg.NewDomainErrorSimple("CART_INCOMPLETE", "Some bundle lines need customization", http.StatusUnprocessableEntity).
			WithDetails(map[string]any{"line_ids": incomplete.LineIDs})
	case errors.Is(err, usecase.ErrEmptyCart):
		return pkg.NewDomainErrorSimple("CART_EMPTY", "Cart has no items", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidCartID), errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidPaymentPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrCheckoutPricingFailed):
		return pkg.NewDomainError("PRICING_UNAVAILABLE", "Cart could not be priced", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrCheckoutPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
