package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/infrastructure/metrics"
	"storefront_bundles/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound  = errors.New("bundle session not found")
	ErrInvalidSessionID = errors.New("invalid session_id")
)

const defaultSessionTTL = 30 * time.Minute

// catalogInvalidator is implemented by caching catalog providers.
type catalogInvalidator interface {
	Invalidate(ctx context.Context, productID string) error
}

// IBundleSessionUseCase exposes bundle selection sessions to the HTTP layer.
//
// Each session owns one BundleSelectionController. Sessions expire after an
// idle period; any access extends them.
type IBundleSessionUseCase interface {
	CreateSession(ctx context.Context, productID string) (entities.SessionSnapshot, error)
	GetSession(ctx context.Context, sessionID string) (entities.SessionSnapshot, error)
	ChangeProduct(ctx context.Context, sessionID, productID string) (entities.SessionSnapshot, error)
	ReloadCatalog(ctx context.Context, sessionID string) (entities.SessionSnapshot, error)
	Toggle(ctx context.Context, sessionID, itemID string) (entities.SessionSnapshot, error)
	ClearAll(ctx context.Context, sessionID string) (entities.SessionSnapshot, error)
	SelectAll(ctx context.Context, sessionID string) (entities.SessionSnapshot, error)
	SelectCategory(ctx context.Context, sessionID, category string) (entities.SessionSnapshot, entities.CategorySelectionResult, error)
	SetSizeLimit(ctx context.Context, sessionID string, limit int) (entities.SessionSnapshot, error)
	WaitForPrice(ctx context.Context, sessionID string) (entities.SessionSnapshot, error)
	AddToCart(ctx context.Context, sessionID, cartID string, quantity int) (entities.CartLineItem, error)
	CloseSession(ctx context.Context, sessionID string) error
}

type SessionOptions struct {
	// TTL is the idle time after which a session is evicted and closed.
	TTL        time.Duration
	Controller ControllerOptions
	Logger     *zap.Logger
}

type BundleSessionUseCase struct {
	catalogs interfaces.IBundleCatalogProvider
	oracle   interfaces.IPriceOracle
	carts    ICartUseCase
	ctrlOpts ControllerOptions
	logger   *zap.Logger

	sessions  *ttlcache.Cache[string, *BundleSelectionController]
	active    atomic.Int64
	closeOnce sync.Once
}

var _ IBundleSessionUseCase = (*BundleSessionUseCase)(nil)

// NewBundleSessionUseCase starts the expiry loop; call Close to stop it.
func NewBundleSessionUseCase(catalogs interfaces.IBundleCatalogProvider, oracle interfaces.IPriceOracle, carts ICartUseCase, opts SessionOptions) *BundleSessionUseCase {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	ctrlOpts := opts.Controller
	if ctrlOpts.Logger == nil {
		ctrlOpts.Logger = logger
	}

	u := &BundleSessionUseCase{
		catalogs: catalogs,
		oracle:   oracle,
		carts:    carts,
		ctrlOpts: ctrlOpts,
		logger:   logger,
		sessions: ttlcache.New[string, *BundleSelectionController](
			ttlcache.WithTTL[string, *BundleSelectionController](ttl),
		),
	}
	// The callback runs with the cache locked; it must not call back into it.
	u.sessions.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *BundleSelectionController]) {
		item.Value().Close()
		n := u.active.Add(-1)
		metrics.SetActiveSessions(int(n))
		u.logger.Info("[bundle][session] session closed",
			zap.String("session_id", item.Key()),
			zap.Int("reason", int(reason)),
		)
	})
	go u.sessions.Start()
	return u
}

func (u *BundleSessionUseCase) CreateSession(ctx context.Context, productID string) (entities.SessionSnapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return entities.SessionSnapshot{}, ErrInvalidProductID
	}

	id := uuid.NewString()
	ctrl := NewBundleSelectionController(u.catalogs, u.oracle, u.ctrlOpts)
	u.sessions.Set(id, ctrl, ttlcache.DefaultTTL)
	metrics.SetActiveSessions(int(u.active.Add(1)))
	u.logger.Info("[bundle][session] session created", zap.String("session_id", id), zap.String("product_id", productID))

	// A failed catalog fetch keeps the session so the client can reload it.
	if err := ctrl.Initialize(ctx, productID); err != nil && !errors.Is(err, ErrCatalogFetchFailed) {
		u.sessions.Delete(id)
		return entities.SessionSnapshot{}, err
	}
	return u.snapshot(id, ctrl), nil
}

func (u *BundleSessionUseCase) GetSession(_ context.Context, sessionID string) (entities.SessionSnapshot, error) {
	id, ctrl, err := u.lookup(sessionID)
	if err != nil {
		return entities.SessionSnapshot{}, err
	}
	return u.snapshot(id, ctrl), nil
}

func (u *BundleSessionUseCase) ChangeProduct(ctx context.Context, sessionID, productID string) (entities.SessionSnapshot, error) {
	id, ctrl, err := u.lookup(sessionID)
	if err != nil {
		return entities.SessionSnapshot{}, err
	}
	if err := ctrl.Initialize(ctx, productID); err != nil && !errors.Is(err, ErrCatalogFetchFailed) {
		return entities.SessionSnapshot{}, err
	}
	return u.snapshot(id, ctrl), nil
}

// ReloadCatalog refetches past any catalog cache. Unlike CreateSession and
// ChangeProduct it surfaces a failed fetch as an error.
func (u *BundleSessionUseCase) ReloadCatalog(ctx context.Context, sessionID string) (entities.SessionSnapshot, error) {
	id, ctrl, err := u.lookup(sessionID)
	if err != nil {
		return entities.SessionSnapshot{}, err
	}
	if inv, ok := u.catalogs.(catalogInvalidator); ok {
		if productID := ctrl.Snapshot().ProductID; productID != "" {
			if err := inv.Invalidate(ctx, productID); err != nil {
				u.logger.Warn("[bundle][session] catalog invalidate failed", zap.String("product_id", productID), zap.Error(err))
			}
		}
	}
	if err := ctrl.Reload(ctx); err != nil {
		return entities.SessionSnapshot{}, err
	}
	return u.snapshot(id, ctrl), nil
}

func (u *BundleSessionUseCase) Toggle(_ context.Context, sessionID, itemID string) (entities.SessionSnapshot, error) {
	return u.apply(sessionID, func(c *BundleSelectionController) error { return c.Toggle(itemID) })
}

func (u *BundleSessionUseCase) ClearAll(_ context.Context, sessionID string) (entities.SessionSnapshot, error) {
	return u.apply(sessionID, (*BundleSelectionController).ClearAll)
}

func (u *BundleSessionUseCase) SelectAll(_ context.Context, sessionID string) (entities.SessionSnapshot, error) {
	return u.apply(sessionID, (*BundleSelectionController).SelectAll)
}

func (u *BundleSessionUseCase) SelectCategory(_ context.Context, sessionID, category string) (entities.SessionSnapshot, entities.CategorySelectionResult, error) {
	var res entities.CategorySelectionResult
	snap, err := u.apply(sessionID, func(c *BundleSelectionController) error {
		var err error
		res, err = c.SelectCategory(category)
		return err
	})
	if err != nil {
		return entities.SessionSnapshot{}, entities.CategorySelectionResult{}, err
	}
	return snap, res, nil
}

func (u *BundleSessionUseCase) SetSizeLimit(_ context.Context, sessionID string, limit int) (entities.SessionSnapshot, error) {
	return u.apply(sessionID, func(c *BundleSelectionController) error { return c.SetSizeLimit(limit) })
}

// WaitForPrice returns the snapshot once the price settles or ctx ends.
func (u *BundleSessionUseCase) WaitForPrice(ctx context.Context, sessionID string) (entities.SessionSnapshot, error) {
	id, ctrl, err := u.lookup(sessionID)
	if err != nil {
		return entities.SessionSnapshot{}, err
	}
	if _, err := ctrl.WaitForPrice(ctx); err != nil {
		return entities.SessionSnapshot{}, err
	}
	return u.snapshot(id, ctrl), nil
}

// AddToCart copies the session's ordered selection into a new cart line. An
// empty selection yields a line that needs customization.
func (u *BundleSessionUseCase) AddToCart(ctx context.Context, sessionID, cartID string, quantity int) (entities.CartLineItem, error) {
	id, ctrl, err := u.lookup(sessionID)
	if err != nil {
		return entities.CartLineItem{}, err
	}
	snap := u.snapshot(id, ctrl)
	if snap.Phase != entities.SessionPhaseReady {
		return entities.CartLineItem{}, ErrSessionNotReady
	}
	if u.carts == nil {
		return entities.CartLineItem{}, errors.New("cart usecase not configured")
	}
	return u.carts.AddBundleLine(ctx, cartID, snap.ProductID, snap.SizeLimit, quantity, snap.SelectedItemIDs)
}

func (u *BundleSessionUseCase) CloseSession(_ context.Context, sessionID string) error {
	id, _, err := u.lookup(sessionID)
	if err != nil {
		return err
	}
	u.sessions.Delete(id)
	return nil
}

// Close stops the expiry loop and closes every live session.
func (u *BundleSessionUseCase) Close() {
	u.closeOnce.Do(func() {
		u.sessions.Stop()
		u.sessions.DeleteAll()
	})
}

// ActiveSessions reports how many sessions are currently held.
func (u *BundleSessionUseCase) ActiveSessions() int {
	return int(u.active.Load())
}

func (u *BundleSessionUseCase) apply(sessionID string, op func(*BundleSelectionController) error) (entities.SessionSnapshot, error) {
	id, ctrl, err := u.lookup(sessionID)
	if err != nil {
		return entities.SessionSnapshot{}, err
	}
	if err := op(ctrl); err != nil {
		return entities.SessionSnapshot{}, err
	}
	return u.snapshot(id, ctrl), nil
}

func (u *BundleSessionUseCase) lookup(sessionID string) (string, *BundleSelectionController, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return "", nil, ErrInvalidSessionID
	}
	item := u.sessions.Get(id)
	if item == nil {
		return "", nil, ErrSessionNotFound
	}
	return id, item.Value(), nil
}

func (u *BundleSessionUseCase) snapshot(id string, ctrl *BundleSelectionController) entities.SessionSnapshot {
	s := ctrl.Snapshot()
	s.SessionID = id
	return s
}
