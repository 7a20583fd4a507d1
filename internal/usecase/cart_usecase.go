package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCartID     = errors.New("invalid cart_id")
	ErrInvalidLineID     = errors.New("invalid cart line id")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrCartLineNotFound  = errors.New("cart line not found")
	ErrSelectionTooLarge = errors.New("selection exceeds bundle size")
)

// ICartUseCase manages bundle lines in a cart.
//
// A bundle line always carries the full ordered selection. Lines with an empty
// selection are kept but flagged as needing customization; checkout refuses them.
type ICartUseCase interface {
	AddBundleLine(ctx context.Context, cartID, productID string, bundleSize, quantity int, itemIDs []string) (entities.CartLineItem, error)
	ListLines(ctx context.Context, cartID string) ([]entities.CartLineItem, error)
	RemoveLine(ctx context.Context, cartID, lineID string) error
	UpdateSelection(ctx context.Context, cartID, lineID string, itemIDs []string) (entities.CartLineItem, error)
}

type CartUseCase struct {
	repo     interfaces.ICartRepository
	catalogs interfaces.IBundleCatalogProvider
	logger   *zap.Logger
}

var _ ICartUseCase = (*CartUseCase)(nil)

func NewCartUseCase(repo interfaces.ICartRepository, catalogs interfaces.IBundleCatalogProvider, logger *zap.Logger) *CartUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartUseCase{repo: repo, catalogs: catalogs, logger: logger}
}

func (u *CartUseCase) AddBundleLine(ctx context.Context, cartID, productID string, bundleSize, quantity int, itemIDs []string) (entities.CartLineItem, error) {
	cartID = strings.TrimSpace(cartID)
	productID = strings.TrimSpace(productID)
	if cartID == "" {
		return entities.CartLineItem{}, ErrInvalidCartID
	}
	if productID == "" {
		return entities.CartLineItem{}, ErrInvalidProductID
	}
	if quantity <= 0 {
		return entities.CartLineItem{}, ErrInvalidQuantity
	}
	if bundleSize <= 0 {
		return entities.CartLineItem{}, ErrInvalidSizeLimit
	}
	sel := entities.NewSelection(trimIDs(itemIDs)...)
	if sel.Len() > bundleSize {
		return entities.CartLineItem{}, ErrSelectionTooLarge
	}

	now := time.Now().UTC()
	line := entities.CartLineItem{
		ID:              uuid.NewString(),
		CartID:          cartID,
		ProductID:       productID,
		Quantity:        quantity,
		BundleSize:      bundleSize,
		SelectedItemIDs: sel.IDs(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := u.repo.Create(ctx, line)
	if err != nil {
		u.logger.Error("[cart][usecase] create line failed", zap.String("cart_id", cartID), zap.Error(err))
		return entities.CartLineItem{}, err
	}
	u.logger.Info("[cart][usecase] bundle line added",
		zap.String("cart_id", cartID),
		zap.String("line_id", created.ID),
		zap.String("product_id", productID),
		zap.Int("selected", len(created.SelectedItemIDs)),
		zap.Bool("needs_customization", created.NeedsCustomization()),
	)
	return created, nil
}

func (u *CartUseCase) ListLines(ctx context.Context, cartID string) ([]entities.CartLineItem, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, ErrInvalidCartID
	}
	return u.repo.ListByCartID(ctx, cartID)
}

func (u *CartUseCase) RemoveLine(ctx context.Context, cartID, lineID string) error {
	line, err := u.lineInCart(ctx, cartID, lineID)
	if err != nil {
		return err
	}
	return u.repo.Delete(ctx, line.ID)
}

// UpdateSelection re-customizes a line. Item ids are checked against the
// product's current bundle catalog.
func (u *CartUseCase) UpdateSelection(ctx context.Context, cartID, lineID string, itemIDs []string) (entities.CartLineItem, error) {
	line, err := u.lineInCart(ctx, cartID, lineID)
	if err != nil {
		return entities.CartLineItem{}, err
	}

	sel := entities.NewSelection(trimIDs(itemIDs)...)
	if sel.Len() > line.BundleSize {
		return entities.CartLineItem{}, ErrSelectionTooLarge
	}
	if sel.Len() > 0 {
		cfg, err := u.catalogs.Fetch(ctx, line.ProductID)
		if err != nil {
			return entities.CartLineItem{}, errors.Join(ErrCatalogFetchFailed, err)
		}
		cfg = cfg.Normalize()
		for _, id := range sel.IDs() {
			if _, ok := cfg.Item(id); !ok {
				return entities.CartLineItem{}, ErrUnknownItem
			}
		}
	}

	updated, err := u.repo.UpdateSelection(ctx, line.ID, sel.IDs())
	if err != nil {
		return entities.CartLineItem{}, err
	}
	if updated.ID == "" {
		return entities.CartLineItem{}, ErrCartLineNotFound
	}
	return updated, nil
}

func (u *CartUseCase) lineInCart(ctx context.Context, cartID, lineID string) (entities.CartLineItem, error) {
	cartID = strings.TrimSpace(cartID)
	lineID = strings.TrimSpace(lineID)
	if cartID == "" {
		return entities.CartLineItem{}, ErrInvalidCartID
	}
	if lineID == "" {
		return entities.CartLineItem{}, ErrInvalidLineID
	}

	line, err := u.repo.GetByID(ctx, lineID)
	if err != nil {
		return entities.CartLineItem{}, err
	}
	if line.ID == "" || line.CartID != cartID {
		return entities.CartLineItem{}, ErrCartLineNotFound
	}
	return line, nil
}

func trimIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
