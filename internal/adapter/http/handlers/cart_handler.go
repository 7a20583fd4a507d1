package handlers

import (
	"errors"
	"net/http"

	request "storefront_bundles/internal/adapter/http/dto/request"
	response "storefront_bundles/internal/adapter/http/dto/response"
	"storefront_bundles/internal/usecase"
	"storefront_bundles/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for bundle lines in a cart.
type CartHandler struct {
	usecase usecase.ICartUseCase
	logger  *zap.Logger
}

func NewCartHandler(uc usecase.ICartUseCase, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{usecase: uc, logger: logger}
}

// ListLines returns the cart with its lines and checkout readiness.
//
// @Summary      List cart lines
// @Tags         carts
// @Produce      json
// @Param        cart_id  path      string  true  "Cart ID"
// @Success      200      {object}  response.CartResponse
// @Router       /carts/{cart_id}/items [get]
func (h *CartHandler) ListLines(c *gin.Context) {
	cartID := c.Param("cart_id")
	lines, err := h.usecase.ListLines(c.Request.Context(), cartID)
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromCartLines(cartID, lines))
}

// RemoveLine deletes a line from the cart.
//
// @Summary      Remove a cart line
// @Tags         carts
// @Param        cart_id  path  string  true  "Cart ID"
// @Param        line_id  path  string  true  "Line ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Router       /carts/{cart_id}/items/{line_id} [delete]
func (h *CartHandler) RemoveLine(c *gin.Context) {
	if err := h.usecase.RemoveLine(c.Request.Context(), c.Param("cart_id"), c.Param("line_id")); err != nil {
		h.fail(c, "remove", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSelection re-customizes a line.
//
// @Summary      Replace a line's selection
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        cart_id  path      string                          true  "Cart ID"
// @Param        line_id  path      string                          true  "Line ID"
// @Param        payload  body      request.UpdateSelectionRequest  true  "Selection"
// @Success      200      {object}  response.CartLineResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /carts/{cart_id}/items/{line_id}/selection [patch]
func (h *CartHandler) UpdateSelection(c *gin.Context) {
	var payload request.UpdateSelectionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest).ToHTTPError())
		return
	}

	line, err := h.usecase.UpdateSelection(c.Request.Context(), c.Param("cart_id"), c.Param("line_id"), payload.SelectedItemIDs)
	if err != nil {
		h.fail(c, "update_selection", err)
		return
	}
	h.logger.Info("[cart][handler] selection updated",
		zap.String("cart_id", line.CartID),
		zap.String("line_id", line.ID),
		zap.Int("selected", len(line.SelectedItemIDs)),
	)
	c.JSON(http.StatusOK, response.FromCartLine(line))
}

func (h *CartHandler) fail(c *gin.Context, op string, err error) {
	appErr := mapCartError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("[cart][handler] request failed", zap.String("op", op), zap.String("cart_id", c.Param("cart_id")), zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapCartError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCartID), errors.Is(err, usecase.ErrInvalidLineID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSelectionTooLarge):
		return pkg.NewDomainErrorSimple("SELECTION_TOO_LARGE", "Selection exceeds the bundle size", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownItem):
		return pkg.NewDomainErrorSimple("INVALID_SELECTION", "Selection contains items outside the bundle", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCartLineNotFound):
		return pkg.NewDomainErrorSimple("CART_LINE_NOT_FOUND", "Cart line not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCatalogFetchFailed):
		return pkg.NewDomainError("CATALOG_UNAVAILABLE", "Bundle catalog could not be loaded", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
