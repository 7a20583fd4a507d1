package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	request "storefront_bundles/internal/adapter/http/dto/request"
	response "storefront_bundles/internal/adapter/http/dto/response"
	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/usecase"
	"storefront_bundles/internal/usecase/interfaces"
	"storefront_bundles/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultPriceWait = 3 * time.Second

var (
	errInvalidBundlePayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// BundleSessionHandler handles HTTP requests for bundle selection sessions.
type BundleSessionHandler struct {
	usecase   usecase.IBundleSessionUseCase
	logger    *zap.Logger
	priceWait time.Duration
}

func NewBundleSessionHandler(uc usecase.IBundleSessionUseCase, logger *zap.Logger) *BundleSessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BundleSessionHandler{usecase: uc, logger: logger, priceWait: defaultPriceWait}
}

// CreateSession opens a session for a product.
//
// A catalog that cannot be loaded still yields 201: the body carries the
// failed phase and the client retries through the reload route.
//
// @Summary      Open a bundle session
// @Tags         bundles
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CreateSessionRequest  true  "Product"
// @Success      201      {object}  response.SessionResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /bundles/sessions [post]
func (h *BundleSessionHandler) CreateSession(c *gin.Context) {
	var payload request.CreateSessionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBundlePayload.HTTPStatus, errInvalidBundlePayload.ToHTTPError())
		return
	}

	s, err := h.usecase.CreateSession(c.Request.Context(), payload.ProductID)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	h.logger.Info("[bundle][handler] session created",
		zap.String("session_id", s.SessionID),
		zap.String("product_id", s.ProductID),
		zap.String("phase", string(s.Phase)),
	)
	c.JSON(http.StatusCreated, response.FromSessionSnapshot(s))
}

// GetSession returns the current snapshot. With wait_price=true it first waits
// briefly for a pending price to settle.
//
// @Summary      Get a bundle session
// @Tags         bundles
// @Produce      json
// @Param        session_id  path      string  true   "Session ID"
// @Param        wait_price  query     bool    false  "Wait for a pending price"
// @Success      200         {object}  response.SessionResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /bundles/sessions/{session_id} [get]
func (h *BundleSessionHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	wait, _ := strconv.ParseBool(c.Query("wait_price"))

	if wait {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.priceWait)
		defer cancel()
		s, err := h.usecase.WaitForPrice(ctx, sessionID)
		if err == nil {
			c.JSON(http.StatusOK, response.FromSessionSnapshot(s))
			return
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			h.fail(c, "wait_price", err)
			return
		}
	}

	s, err := h.usecase.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromSessionSnapshot(s))
}

// CloseSession discards a session.
//
// @Summary      Close a bundle session
// @Tags         bundles
// @Param        session_id  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Router       /bundles/sessions/{session_id} [delete]
func (h *BundleSessionHandler) CloseSession(c *gin.Context) {
	if err := h.usecase.CloseSession(c.Request.Context(), c.Param("session_id")); err != nil {
		h.fail(c, "close", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangeProduct switches the session to another product, discarding the
// selection.
//
// @Summary      Change the session product
// @Tags         bundles
// @Accept       json
// @Produce      json
// @Param        session_id  path      string                        true  "Session ID"
// @Param        payload     body      request.ChangeProductRequest  true  "Product"
// @Success      200         {object}  response.SessionResponse
// @Router       /bundles/sessions/{session_id}/product [put]
func (h *BundleSessionHandler) ChangeProduct(c *gin.Context) {
	var payload request.ChangeProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBundlePayload.HTTPStatus, errInvalidBundlePayload.ToHTTPError())
		return
	}
	h.respond(c, "change_product", func(ctx context.Context, id string) (entities.SessionSnapshot, error) {
		return h.usecase.ChangeProduct(ctx, id, payload.ProductID)
	})
}

// ReloadCatalog retries the catalog fetch.
//
// @Summary      Reload the session catalog
// @Tags         bundles
// @Produce      json
// @Param        session_id  path      string  true  "Session ID"
// @Success      200         {object}  response.SessionResponse
// @Failure      502         {object}  pkg.HTTPError
// @Router       /bundles/sessions/{session_id}/reload [post]
func (h *BundleSessionHandler) ReloadCatalog(c *gin.Context) {
	h.respond(c, "reload", h.usecase.ReloadCatalog)
}

// Toggle adds or removes one item.
//
// @Summary      Toggle a bundle item
// @Tags         bundles
// @Accept       json
// @Produce      json
// @Param        session_id  path      string                     true  "Session ID"
// @Param        payload     body      request.ToggleItemRequest  true  "Item"
// @Success      200         {object}  response.SessionResponse
// @Failure      409         {object}  pkg.HTTPError
// @Router       /bundles/sessions/{session_id}/toggle [post]
func (h *BundleSessionHandler) Toggle(c *gin.Context) {
	var payload request.ToggleItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBundlePayload.HTTPStatus, errInvalidBundlePayload.ToHTTPError())
		return
	}
	h.respond(c, "toggle", func(ctx context.Context, id string) (entities.SessionSnapshot, error) {
		return h.usecase.Toggle(ctx, id, payload.ItemID)
	})
}

// ClearAll empties the selection.
//
// @Summary      Clear the selection
// @Tags         bundles
// @Produce      json
// @Param        session_id  path      string  true  "Session ID"
// @Success      200         {object}  response.SessionResponse
// @Router       /bundles/sessions/{session_id}/clear [post]
func (h *BundleSessionHandler) ClearAll(c *gin.Context) {
	h.respond(c, "clear", h.usecase.ClearAll)
}

// SelectAll fills the bundle with the first items of the catalog.
//
// @Summary      Select the first items up to the limit
// @Tags         bundles
// @Produce      json
// @Param        session_id  path      string  true  "Session ID"
// @Success      200         {object}  response.SessionResponse
// @Router       /bundles/sessions/{session_id}/select-all [post]
func (h *BundleSessionHandler) SelectAll(c *gin.Context) {
	h.respond(c, "select_all", h.usecase.SelectAll)
}

// SelectCategory adds a category's items until the bundle is full. A partial
// fill is a 200 with a notice.
//
// @Summary      Select a whole category
// @Tags         bundles
// @Accept       json
// @Produce      json
// @Param        session_id  path      string                         true  "Session ID"
// @Param        payload     body      request.SelectCategoryRequest  true  "Category"
// @Success      200         {object}  response.CategorySelectionResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /bundles/sessions/{session_id}/select-category [post]
func (h *BundleSessionHandler) SelectCategory(c *gin.Context) {
	var payload request.SelectCategoryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBundlePayload.HTTPStatus, errInvalidBundlePayload.ToHTTPError())
		return
	}

	s, res, err := h.usecase.SelectCategory(c.Request.Context(), c.Param("session_id"), payload.Category)
	if err != nil {
		h.fail(c, "select_category", err)
		return
	}
	c.JSON(http.StatusOK, response.FromCategorySelection(s, res))
}

// SetSizeLimit changes the bundle size, dropping the newest items that no
// longer fit.
//
// @Summary      Change the bundle size
// @Tags         bundles
// @Accept       json
// @Produce      json
// @Param        session_id  path      string                    true  "Session ID"
// @Param        payload     body      request.SizeLimitRequest  true  "Size"
// @Success      200         {object}  response.SessionResponse
// @Failure      400         {object}  pkg.HTTPError
// @Router       /bundles/sessions/{session_id}/size-limit [patch]
func (h *BundleSessionHandler) SetSizeLimit(c *gin.Context) {
	var payload request.SizeLimitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBundlePayload.HTTPStatus, errInvalidBundlePayload.ToHTTPError())
		return
	}
	h.respond(c, "size_limit", func(ctx context.Context, id string) (entities.SessionSnapshot, error) {
		return h.usecase.SetSizeLimit(ctx, id, payload.SizeLimit)
	})
}

// AddToCart places the current selection in a cart.
//
// @Summary      Add the bundle to a cart
// @Tags         bundles
// @Accept       json
// @Produce      json
// @Param        session_id  path      string                    true  "Session ID"
// @Param        payload     body      request.AddToCartRequest  true  "Cart"
// @Success      201         {object}  response.CartLineResponse
// @Failure      409         {object}  pkg.HTTPError
// @Router       /bundles/sessions/{session_id}/cart [post]
func (h *BundleSessionHandler) AddToCart(c *gin.Context) {
	var payload request.AddToCartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBundlePayload.HTTPStatus, errInvalidBundlePayload.ToHTTPError())
		return
	}

	line, err := h.usecase.AddToCart(c.Request.Context(), c.Param("session_id"), payload.ResolveCartID(), payload.ResolveQuantity())
	if err != nil {
		h.fail(c, "add_to_cart", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromCartLine(line))
}

func (h *BundleSessionHandler) respond(c *gin.Context, op string, call func(ctx context.Context, sessionID string) (entities.SessionSnapshot, error)) {
	s, err := call(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.fail(c, op, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSessionSnapshot(s))
}

func (h *BundleSessionHandler) fail(c *gin.Context, op string, err error) {
	appErr := mapBundleSessionError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("[bundle][handler] request failed", zap.String("op", op), zap.String("session_id", c.Param("session_id")), zap.Error(err))
	} else {
		h.logger.Debug("[bundle][handler] request rejected", zap.String("op", op), zap.String("code", appErr.Code), zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapBundleSessionError(err error) *pkg.AppError {
	var capErr *usecase.CapacityExceededError
	switch {
	case errors.As(err, &capErr):
		return pkg.NewDomainErrorSimple("BUNDLE_FULL", fmt.Sprintf("Bundle is full: at most %d items", capErr.Limit), http.StatusConflict).
			WithDetails(map[string]any{"size_limit": capErr.Limit})
	case errors.Is(err, usecase.ErrSessionNotReady):
		return pkg.NewDomainErrorSimple("SESSION_NOT_READY", "Bundle catalog is not loaded", http.StatusConflict)
	case errors.Is(err, usecase.ErrOperationInFlight):
		return pkg.NewDomainErrorSimple("OPERATION_IN_FLIGHT", "Another change to this bundle is in progress", http.StatusConflict)
	case errors.Is(err, usecase.ErrSessionNotFound), errors.Is(err, usecase.ErrSessionClosed):
		return pkg.NewDomainErrorSimple("SESSION_NOT_FOUND", "Bundle session not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrUnknownItem):
		return pkg.NewDomainErrorSimple("ITEM_NOT_FOUND", "Item is not part of this bundle", http.StatusNotFound)
	case errors.Is(err, usecase.ErrUnknownCategory):
		return pkg.NewDomainErrorSimple("CATEGORY_NOT_FOUND", "Category is not part of this bundle", http.StatusNotFound)
	case errors.Is(err, interfaces.ErrBundleNotFound):
		return pkg.NewDomainErrorSimple("BUNDLE_NOT_FOUND", "Product has no bundle configuration", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCatalogFetchFailed):
		return pkg.NewDomainError("CATALOG_UNAVAILABLE", "Bundle catalog could not be loaded", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrInvalidSessionID), errors.Is(err, usecase.ErrInvalidProductID),
		errors.Is(err, usecase.ErrInvalidSizeLimit), errors.Is(err, usecase.ErrInvalidCartID),
		errors.Is(err, usecase.ErrInvalidQuantity), errors.Is(err, usecase.ErrSelectionTooLarge):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
