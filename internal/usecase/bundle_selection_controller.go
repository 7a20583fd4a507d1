package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/infrastructure/metrics"
	"storefront_bundles/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const defaultSizeLimit = 3

var (
	ErrCapacityExceeded   = errors.New("bundle capacity exceeded")
	ErrCatalogFetchFailed = errors.New("bundle catalog fetch failed")
	ErrSessionNotReady    = errors.New("bundle session not ready")
	ErrSessionClosed      = errors.New("bundle session closed")
	ErrOperationInFlight  = errors.New("bundle operation already in flight")
	ErrUnknownItem        = errors.New("unknown bundle item")
	ErrUnknownCategory    = errors.New("unknown bundle category")
	ErrInvalidSizeLimit   = errors.New("invalid bundle size limit")
	ErrInvalidProductID   = errors.New("invalid product_id")
)

// CapacityExceededError is returned when adding an item would overflow the
// bundle. It matches ErrCapacityExceeded with errors.Is.
type CapacityExceededError struct {
	Limit int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("bundle capacity exceeded: at most %d items", e.Limit)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// ControllerOptions tunes a BundleSelectionController.
//
// AllowedSizes restricts SetSizeLimit; empty means any positive size.
// PriceDebounce delays price requests so a burst of edits issues one request;
// zero dispatches on every change.
type ControllerOptions struct {
	DefaultSizeLimit int
	AllowedSizes     []int
	PriceDebounce    time.Duration
	Logger           *zap.Logger
}

// ControllerStats is a snapshot of the controller counters.
type ControllerStats struct {
	PriceRequests uint64 `json:"price_requests"`
	PriceApplied  uint64 `json:"price_applied"`
	PriceStale    uint64 `json:"price_stale"`
	PriceFailed   uint64 `json:"price_failed"`
	CatalogStale  uint64 `json:"catalog_stale"`
}

type controllerStats struct {
	priceRequests atomic.Uint64
	priceApplied  atomic.Uint64
	priceStale    atomic.Uint64
	priceFailed   atomic.Uint64
	catalogStale  atomic.Uint64
}

type priceRequest struct {
	ctx       context.Context
	gen       uint64
	version   uint64
	productID string
	itemIDs   []string
}

// BundleSelectionController owns the selection of one product-viewing session.
//
// It enforces |selection| <= size limit after every operation and keeps the
// derived price in sync through the price oracle. Every asynchronous result
// carries the product generation and selection version it was issued for and
// is dropped when either moved on.
type BundleSelectionController struct {
	catalogs interfaces.IBundleCatalogProvider
	oracle   interfaces.IPriceOracle
	opts     ControllerOptions
	logger   *zap.Logger

	// busy rejects overlapping mutations instead of queueing them.
	busy atomic.Bool

	mu               sync.Mutex
	phase            entities.SessionPhase
	productID        string
	catalog          *entities.BundleConfig
	catalogErr       error
	selection        entities.Selection
	sizeLimit        int
	price            entities.PriceCalculation
	productGen       uint64
	selectionVersion uint64
	cancelFetch      context.CancelFunc
	productCtx       context.Context
	cancelProduct    context.CancelFunc
	priceTimer       *time.Timer
	changed          chan struct{}
	closed           bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	stats  controllerStats

	beforeMutate func()
}

func NewBundleSelectionController(catalogs interfaces.IBundleCatalogProvider, oracle interfaces.IPriceOracle, opts ControllerOptions) *BundleSelectionController {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DefaultSizeLimit <= 0 {
		opts.DefaultSizeLimit = defaultSizeLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BundleSelectionController{
		catalogs:   catalogs,
		oracle:     oracle,
		opts:       opts,
		logger:     opts.Logger,
		phase:      entities.SessionPhaseUninitialized,
		sizeLimit:  opts.DefaultSizeLimit,
		price:      entities.PriceCalculation{Status: entities.PriceStatusEmpty},
		changed:    make(chan struct{}),
		productCtx: ctx,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Initialize loads the catalog of productID and starts a fresh selection.
//
// It supersedes any load still in flight. A superseded call returns nil once
// its late response has been discarded. Calling it for the product that is
// already ready is a no-op.
func (c *BundleSelectionController) Initialize(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ErrInvalidProductID
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrSessionClosed
	}
	if c.phase == entities.SessionPhaseReady && c.productID == productID {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	return c.load(ctx, productID)
}

// Reload re-fetches the current product's catalog. It is the manual retry
// after a failed load.
func (c *BundleSelectionController) Reload(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrSessionClosed
	}
	productID := c.productID
	c.mu.Unlock()

	if productID == "" {
		return ErrSessionNotReady
	}
	return c.load(ctx, productID)
}

func (c *BundleSelectionController) load(ctx context.Context, productID string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrSessionClosed
	}
	c.productGen++
	gen := c.productGen
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel
	c.resetProductLocked()
	c.productID = productID
	c.phase = entities.SessionPhaseLoading
	c.notifyLocked()
	c.mu.Unlock()

	c.logger.Debug("[bundle][controller] catalog fetch start", zap.String("product_id", productID), zap.Uint64("generation", gen))
	cfg, err := c.catalogs.Fetch(fetchCtx, productID)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSessionClosed
	}
	if gen != c.productGen {
		c.stats.catalogStale.Add(1)
		metrics.RecordCatalogFetch(metrics.OutcomeStale)
		c.logger.Debug("[bundle][controller] stale catalog response discarded", zap.String("product_id", productID), zap.Uint64("generation", gen))
		return nil
	}
	c.cancelFetch = nil

	if err != nil {
		c.phase = entities.SessionPhaseFailed
		c.catalogErr = err
		c.notifyLocked()
		metrics.RecordCatalogFetch(metrics.OutcomeFailed)
		c.logger.Warn("[bundle][controller] catalog fetch failed", zap.String("product_id", productID), zap.Error(err))
		return fmt.Errorf("%w: product %s: %w", ErrCatalogFetchFailed, productID, err)
	}

	cfg = cfg.Normalize()
	if cfg.ProductID == "" {
		cfg.ProductID = productID
	}
	c.catalog = &cfg
	c.selection.Clear()
	c.sizeLimit = c.initialSizeLimit(cfg.BundleSize)
	c.phase = entities.SessionPhaseReady
	c.notifyLocked()
	metrics.RecordCatalogFetch(metrics.OutcomeSuccess)
	c.logger.Info("[bundle][controller] catalog loaded",
		zap.String("product_id", productID),
		zap.Int("items", len(cfg.BundleItems)),
		zap.Int("size_limit", c.sizeLimit),
	)
	return nil
}

// resetProductLocked drops everything tied to the previous product, including
// interest in its pending price request.
func (c *BundleSelectionController) resetProductLocked() {
	if c.cancelProduct != nil {
		c.cancelProduct()
	}
	c.productCtx, c.cancelProduct = context.WithCancel(c.ctx)
	c.stopPriceTimerLocked()
	c.selectionVersion++
	c.selection.Clear()
	c.catalog = nil
	c.catalogErr = nil
	c.price = entities.PriceCalculation{Status: entities.PriceStatusEmpty}
}

// Toggle removes itemID when selected, otherwise adds it if there is room.
func (c *BundleSelectionController) Toggle(itemID string) error {
	itemID = strings.TrimSpace(itemID)
	return c.mutate("toggle", func() (bool, error) {
		if c.selection.Remove(itemID) {
			return true, nil
		}
		if _, ok := c.catalog.Item(itemID); !ok {
			return false, ErrUnknownItem
		}
		if c.selection.Len() >= c.sizeLimit {
			return false, &CapacityExceededError{Limit: c.sizeLimit}
		}
		c.selection.Add(itemID)
		return true, nil
	})
}

func (c *BundleSelectionController) ClearAll() error {
	return c.mutate("clear_all", func() (bool, error) {
		if c.selection.Len() == 0 {
			return false, nil
		}
		c.selection.Clear()
		return true, nil
	})
}

// SelectAll replaces the selection with the first min(limit, catalog size)
// items in catalog order. Id-less items sharing (category, name) resolve to
// the same id and count once, so such a catalog can yield fewer than the
// limit.
func (c *BundleSelectionController) SelectAll() error {
	return c.mutate("select_all", func() (bool, error) {
		items := c.catalog.BundleItems
		k := min(c.sizeLimit, len(items))
		next := entities.NewSelection()
		for _, it := range items[:k] {
			next.Add(it.ID)
		}
		if next.Equal(&c.selection) {
			return false, nil
		}
		c.selection = next
		return true, nil
	})
}

// SelectCategory unions the category's items into the selection. When the room
// left is smaller than the category, only its first available items (catalog
// order) are taken and the result is Partial. Partial is a success, not an
// error, and covers a full bundle adding nothing.
func (c *BundleSelectionController) SelectCategory(category string) (entities.CategorySelectionResult, error) {
	category = strings.TrimSpace(category)
	res := entities.CategorySelectionResult{Category: category}
	err := c.mutate("select_category", func() (bool, error) {
		items := c.catalog.ItemsInCategory(category)
		if len(items) == 0 {
			return false, ErrUnknownCategory
		}
		res.Requested = len(items)

		available := c.sizeLimit - c.selection.Len()
		take := len(items)
		if available < take {
			take = max(available, 0)
			res.Partial = true
		}
		for _, it := range items[:take] {
			if c.selection.Add(it.ID) {
				res.Added++
			}
		}
		return res.Added > 0, nil
	})
	if err != nil {
		return entities.CategorySelectionResult{}, err
	}
	return res, nil
}

// SetSizeLimit changes the bundle size. When the selection no longer fits, the
// most recently added items are dropped.
func (c *BundleSelectionController) SetSizeLimit(limit int) error {
	return c.mutate("set_size_limit", func() (bool, error) {
		if !c.sizeAllowed(limit) {
			return false, ErrInvalidSizeLimit
		}
		c.sizeLimit = limit
		return c.selection.Truncate(limit), nil
	})
}

func (c *BundleSelectionController) mutate(operation string, apply func() (changed bool, err error)) error {
	if !c.busy.CompareAndSwap(false, true) {
		metrics.RecordSelectionOperation(operation, metrics.OutcomeRejected)
		return ErrOperationInFlight
	}
	defer c.busy.Store(false)
	if c.beforeMutate != nil {
		c.beforeMutate()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSessionClosed
	}
	if c.phase != entities.SessionPhaseReady {
		metrics.RecordSelectionOperation(operation, metrics.OutcomeRejected)
		return ErrSessionNotReady
	}

	changed, err := apply()
	if err != nil {
		metrics.RecordSelectionOperation(operation, metrics.OutcomeRejected)
		c.logger.Debug("[bundle][controller] operation rejected", zap.String("operation", operation), zap.String("product_id", c.productID), zap.Error(err))
		return err
	}
	if changed {
		c.selectionChangedLocked()
	}
	c.notifyLocked()
	metrics.RecordSelectionOperation(operation, metrics.OutcomeSuccess)
	return nil
}

func (c *BundleSelectionController) selectionChangedLocked() {
	c.selectionVersion++
	c.stopPriceTimerLocked()
	if c.selection.Len() == 0 {
		c.price = entities.PriceCalculation{Status: entities.PriceStatusEmpty}
		return
	}

	req := priceRequest{
		ctx:       c.productCtx,
		gen:       c.productGen,
		version:   c.selectionVersion,
		productID: c.productID,
		itemIDs:   c.selection.IDs(),
	}
	c.price = entities.PriceCalculation{Status: entities.PriceStatusPending, ItemIDs: req.itemIDs}

	c.wg.Add(1)
	if c.opts.PriceDebounce <= 0 {
		go func() {
			defer c.wg.Done()
			c.requestPrice(req)
		}()
		return
	}
	c.priceTimer = time.AfterFunc(c.opts.PriceDebounce, func() {
		defer c.wg.Done()
		c.requestPrice(req)
	})
}

func (c *BundleSelectionController) stopPriceTimerLocked() {
	if c.priceTimer == nil {
		return
	}
	if c.priceTimer.Stop() {
		c.wg.Done()
	}
	c.priceTimer = nil
}

func (c *BundleSelectionController) requestPrice(req priceRequest) {
	c.stats.priceRequests.Add(1)
	metrics.RecordPriceRequest(metrics.OutcomeIssued)

	calc, err := c.oracle.Quote(req.ctx, req.productID, req.itemIDs)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || req.gen != c.productGen || req.version != c.selectionVersion {
		c.stats.priceStale.Add(1)
		metrics.RecordPriceRequest(metrics.OutcomeStale)
		c.logger.Debug("[bundle][controller] stale price response discarded", zap.String("product_id", req.productID), zap.Uint64("version", req.version))
		return
	}
	if err != nil {
		c.stats.priceFailed.Add(1)
		metrics.RecordPriceRequest(metrics.OutcomeFailed)
		c.price = entities.PriceCalculation{Status: entities.PriceStatusUnavailable, ItemIDs: req.itemIDs}
		c.notifyLocked()
		c.logger.Warn("[bundle][controller] price fetch failed", zap.String("product_id", req.productID), zap.Error(err))
		return
	}

	calc.Status = entities.PriceStatusReady
	calc.ItemIDs = req.itemIDs
	c.price = calc
	c.stats.priceApplied.Add(1)
	metrics.RecordPriceRequest(metrics.OutcomeApplied)
	c.notifyLocked()
}

// WaitForPrice blocks until the current price is no longer pending.
func (c *BundleSelectionController) WaitForPrice(ctx context.Context) (entities.PriceCalculation, error) {
	for {
		c.mu.Lock()
		if c.closed || c.price.Status != entities.PriceStatusPending {
			p := c.price
			c.mu.Unlock()
			return p, nil
		}
		ch := c.changed
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return entities.PriceCalculation{}, ctx.Err()
		}
	}
}

func (c *BundleSelectionController) Snapshot() entities.SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := entities.SessionSnapshot{
		Phase:           c.phase,
		ProductID:       c.productID,
		SelectedItemIDs: c.selection.IDs(),
		SizeLimit:       c.sizeLimit,
		Price:           c.price,
	}
	if c.catalog != nil {
		cfg := *c.catalog
		s.Catalog = &cfg
	}
	if c.catalogErr != nil {
		s.CatalogError = c.catalogErr.Error()
	}
	return s
}

func (c *BundleSelectionController) Stats() ControllerStats {
	return ControllerStats{
		PriceRequests: c.stats.priceRequests.Load(),
		PriceApplied:  c.stats.priceApplied.Load(),
		PriceStale:    c.stats.priceStale.Load(),
		PriceFailed:   c.stats.priceFailed.Load(),
		CatalogStale:  c.stats.catalogStale.Load(),
	}
}

// Close cancels pending work and waits for in-flight price requests. It is
// safe to call more than once.
func (c *BundleSelectionController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	c.stopPriceTimerLocked()
	c.cancel()
	c.notifyLocked()
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *BundleSelectionController) notifyLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *BundleSelectionController) initialSizeLimit(bundleSize int) int {
	if c.sizeAllowed(bundleSize) {
		return bundleSize
	}
	return c.opts.DefaultSizeLimit
}

func (c *BundleSelectionController) sizeAllowed(n int) bool {
	if n <= 0 {
		return false
	}
	if len(c.opts.AllowedSizes) == 0 {
		return true
	}
	for _, s := range c.opts.AllowedSizes {
		if s == n {
			return true
		}
	}
	return false
}
