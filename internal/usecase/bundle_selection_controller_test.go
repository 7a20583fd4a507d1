package usecase

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogs struct {
	mu      sync.Mutex
	configs map[string]entities.BundleConfig
	errs    map[string]error
	gates   map[string]chan struct{}
	started chan string
	calls   int
}

func (f *fakeCatalogs) Fetch(_ context.Context, productID string) (entities.BundleConfig, error) {
	f.mu.Lock()
	f.calls++
	cfg, ok := f.configs[productID]
	err := f.errs[productID]
	gate := f.gates[productID]
	f.mu.Unlock()

	if f.started != nil {
		f.started <- productID
	}
	if gate != nil {
		// Late responses ignore cancellation on purpose so the staleness guard is exercised.
		<-gate
	}
	if err != nil {
		return entities.BundleConfig{}, err
	}
	if !ok {
		return entities.BundleConfig{}, interfaces.ErrBundleNotFound
	}
	return cfg, nil
}

func (f *fakeCatalogs) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeOracle struct {
	mu    sync.Mutex
	calls [][]string
	gates map[string]chan struct{}
	err   error
}

func (f *fakeOracle) Quote(ctx context.Context, _ string, itemIDs []string) (entities.PriceCalculation, error) {
	key := strings.Join(itemIDs, ",")
	f.mu.Lock()
	f.calls = append(f.calls, itemIDs)
	gate := f.gates[key]
	err := f.err
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return entities.PriceCalculation{}, ctx.Err()
		}
	}
	if err != nil {
		return entities.PriceCalculation{}, err
	}
	return entities.PriceCalculation{Total: float64(len(itemIDs)) * 10, Currency: "BRL"}, nil
}

func (f *fakeOracle) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func item(id, category string) entities.BundleItem {
	return entities.BundleItem{ID: id, Category: category, Name: strings.ToLower(id), Price: 10}
}

func teaCatalog() entities.BundleConfig {
	return entities.BundleConfig{
		BundleSize: 3,
		BundleItems: []entities.BundleItem{
			item("A", "tea"), item("B", "tea"), item("C", "tea"),
			item("D", "coffee"), item("E", "coffee"),
			item("X1", "x"), item("X2", "x"), item("X3", "x"), item("X4", "x"), item("X5", "x"),
		},
	}
}

func newReadyController(t *testing.T, opts ControllerOptions) (*BundleSelectionController, *fakeOracle) {
	t.Helper()
	catalogs := &fakeCatalogs{configs: map[string]entities.BundleConfig{"p-1": teaCatalog()}}
	oracle := &fakeOracle{}
	c := NewBundleSelectionController(catalogs, oracle, opts)
	t.Cleanup(c.Close)
	require.NoError(t, c.Initialize(context.Background(), "p-1"))
	return c, oracle
}

func waitPrice(t *testing.T, c *BundleSelectionController) entities.PriceCalculation {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	p, err := c.WaitForPrice(ctx)
	require.NoError(t, err)
	return p
}

func TestBundleSelectionController_Initialize(t *testing.T) {
	t.Run("ready with catalog and size from config", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{})
		s := c.Snapshot()
		assert.Equal(t, entities.SessionPhaseReady, s.Phase)
		assert.Equal(t, "p-1", s.ProductID)
		require.NotNil(t, s.Catalog)
		assert.Len(t, s.Catalog.BundleItems, 10)
		assert.Empty(t, s.SelectedItemIDs)
		assert.Equal(t, 3, s.SizeLimit)
		assert.Equal(t, entities.PriceStatusEmpty, s.Price.Status)
	})

	t.Run("bundle size outside permitted sizes falls back to default", func(t *testing.T) {
		cfg := teaCatalog()
		cfg.BundleSize = 12
		c := NewBundleSelectionController(&fakeCatalogs{configs: map[string]entities.BundleConfig{"p-1": cfg}}, &fakeOracle{}, ControllerOptions{
			DefaultSizeLimit: 4,
			AllowedSizes:     []int{3, 4, 5},
		})
		defer c.Close()
		require.NoError(t, c.Initialize(context.Background(), "p-1"))
		assert.Equal(t, 4, c.Snapshot().SizeLimit)
	})

	t.Run("items without ids get composite keys", func(t *testing.T) {
		cfg := entities.BundleConfig{BundleSize: 3, BundleItems: []entities.BundleItem{{Category: "tea", Name: "green"}}}
		c := NewBundleSelectionController(&fakeCatalogs{configs: map[string]entities.BundleConfig{"p-1": cfg}}, &fakeOracle{}, ControllerOptions{})
		defer c.Close()
		require.NoError(t, c.Initialize(context.Background(), "p-1"))
		require.NoError(t, c.Toggle("tea-green"))
		assert.Equal(t, []string{"tea-green"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("same product is idempotent", func(t *testing.T) {
		catalogs := &fakeCatalogs{configs: map[string]entities.BundleConfig{"p-1": teaCatalog()}}
		c := NewBundleSelectionController(catalogs, &fakeOracle{}, ControllerOptions{PriceDebounce: time.Hour})
		defer c.Close()
		require.NoError(t, c.Initialize(context.Background(), "p-1"))
		require.NoError(t, c.Toggle("A"))
		require.NoError(t, c.Initialize(context.Background(), " p-1 "))
		assert.Equal(t, 1, catalogs.callCount())
		assert.Equal(t, []string{"A"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("invalid product id", func(t *testing.T) {
		c := NewBundleSelectionController(&fakeCatalogs{}, &fakeOracle{}, ControllerOptions{})
		defer c.Close()
		assert.ErrorIs(t, c.Initialize(context.Background(), "  "), ErrInvalidProductID)
	})

	t.Run("fetch failure leaves failed phase and reload recovers", func(t *testing.T) {
		catalogs := &fakeCatalogs{configs: map[string]entities.BundleConfig{}}
		c := NewBundleSelectionController(catalogs, &fakeOracle{}, ControllerOptions{})
		defer c.Close()

		err := c.Initialize(context.Background(), "p-1")
		require.ErrorIs(t, err, ErrCatalogFetchFailed)
		require.ErrorIs(t, err, interfaces.ErrBundleNotFound)
		s := c.Snapshot()
		assert.Equal(t, entities.SessionPhaseFailed, s.Phase)
		assert.Nil(t, s.Catalog)
		assert.NotEmpty(t, s.CatalogError)
		assert.ErrorIs(t, c.Toggle("A"), ErrSessionNotReady)

		catalogs.mu.Lock()
		catalogs.configs["p-1"] = teaCatalog()
		catalogs.mu.Unlock()
		require.NoError(t, c.Reload(context.Background()))
		assert.Equal(t, entities.SessionPhaseReady, c.Snapshot().Phase)
	})

	t.Run("reload without product", func(t *testing.T) {
		c := NewBundleSelectionController(&fakeCatalogs{}, &fakeOracle{}, ControllerOptions{})
		defer c.Close()
		assert.ErrorIs(t, c.Reload(context.Background()), ErrSessionNotReady)
	})
}

func TestBundleSelectionController_OperationsRequireReady(t *testing.T) {
	c := NewBundleSelectionController(&fakeCatalogs{}, &fakeOracle{}, ControllerOptions{})
	defer c.Close()

	assert.ErrorIs(t, c.Toggle("A"), ErrSessionNotReady)
	assert.ErrorIs(t, c.ClearAll(), ErrSessionNotReady)
	assert.ErrorIs(t, c.SelectAll(), ErrSessionNotReady)
	_, err := c.SelectCategory("tea")
	assert.ErrorIs(t, err, ErrSessionNotReady)
	assert.ErrorIs(t, c.SetSizeLimit(4), ErrSessionNotReady)
	assert.Equal(t, entities.SessionPhaseUninitialized, c.Snapshot().Phase)
}

func TestBundleSelectionController_Toggle(t *testing.T) {
	t.Run("toggle twice restores prior state", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.Toggle("A"))
		before := c.Snapshot().SelectedItemIDs

		require.NoError(t, c.Toggle("B"))
		require.NoError(t, c.Toggle("B"))
		assert.Equal(t, before, c.Snapshot().SelectedItemIDs)
	})

	t.Run("capacity exceeded leaves selection unchanged", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.SetSizeLimit(1))
		require.NoError(t, c.Toggle("A"))

		err := c.Toggle("B")
		require.ErrorIs(t, err, ErrCapacityExceeded)
		var capErr *CapacityExceededError
		require.True(t, errors.As(err, &capErr))
		assert.Equal(t, 1, capErr.Limit)
		assert.Contains(t, err.Error(), "1")
		assert.Equal(t, []string{"A"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("removal always succeeds when full", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.SelectAll())
		require.NoError(t, c.Toggle("B"))
		assert.Equal(t, []string{"A", "C"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("unknown item", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		assert.ErrorIs(t, c.Toggle("nope"), ErrUnknownItem)
		assert.Empty(t, c.Snapshot().SelectedItemIDs)
	})
}

func TestBundleSelectionController_SelectAll(t *testing.T) {
	t.Run("first k items in catalog order", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.SelectAll())
		assert.Equal(t, []string{"A", "B", "C"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("overwrites an existing selection", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.Toggle("E"))
		require.NoError(t, c.SelectAll())
		assert.Equal(t, []string{"A", "B", "C"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("catalog smaller than the limit", func(t *testing.T) {
		cfg := entities.BundleConfig{BundleSize: 5, BundleItems: []entities.BundleItem{item("A", "tea"), item("B", "tea")}}
		c := NewBundleSelectionController(&fakeCatalogs{configs: map[string]entities.BundleConfig{"p-1": cfg}}, &fakeOracle{}, ControllerOptions{PriceDebounce: time.Hour})
		defer c.Close()
		require.NoError(t, c.Initialize(context.Background(), "p-1"))
		require.NoError(t, c.SelectAll())
		assert.Equal(t, []string{"A", "B"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("clear all empties the selection", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.SelectAll())
		require.NoError(t, c.ClearAll())
		s := c.Snapshot()
		assert.Empty(t, s.SelectedItemIDs)
		assert.Equal(t, entities.PriceStatusEmpty, s.Price.Status)
		require.NoError(t, c.ClearAll())
	})
}

func TestBundleSelectionController_SelectAllCollapsesKeyCollisions(t *testing.T) {
	cfg := entities.BundleConfig{
		BundleSize: 3,
		BundleItems: []entities.BundleItem{
			{Category: "tea", Name: "Assam"},
			{Category: "tea", Name: "Assam"},
			{Category: "tea", Name: "Oolong"},
			{Category: "tea", Name: "Sencha"},
		},
	}
	c := NewBundleSelectionController(&fakeCatalogs{configs: map[string]entities.BundleConfig{"p-dup": cfg}}, &fakeOracle{}, ControllerOptions{PriceDebounce: time.Hour})
	t.Cleanup(c.Close)
	require.NoError(t, c.Initialize(context.Background(), "p-dup"))

	require.NoError(t, c.SelectAll())
	assert.Equal(t, []string{"tea-Assam", "tea-Oolong"}, c.Snapshot().SelectedItemIDs)
}

func TestBundleSelectionController_SelectCategory(t *testing.T) {
	t.Run("partial fill adds the first available items", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.Toggle("A"))

		res, err := c.SelectCategory("x")
		require.NoError(t, err)
		assert.True(t, res.Partial)
		assert.Equal(t, 2, res.Added)
		assert.Equal(t, 5, res.Requested)
		assert.Equal(t, []string{"A", "X1", "X2"}, c.Snapshot().SelectedItemIDs)
		assert.True(t, c.Snapshot().IsFull())
	})

	t.Run("whole category fits", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		res, err := c.SelectCategory("coffee")
		require.NoError(t, err)
		assert.False(t, res.Partial)
		assert.Equal(t, 2, res.Added)
		assert.Equal(t, []string{"D", "E"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("selected items count against the category window", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.Toggle("A"))

		res, err := c.SelectCategory("tea")
		require.NoError(t, err)
		assert.True(t, res.Partial)
		assert.Equal(t, 3, res.Requested)
		assert.Equal(t, 1, res.Added)
		assert.Equal(t, []string{"A", "B"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("category already selected in a full bundle is partial", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.SelectAll())

		res, err := c.SelectCategory("tea")
		require.NoError(t, err)
		assert.Equal(t, entities.CategorySelectionResult{Category: "tea", Requested: 3, Added: 0, Partial: true}, res)
		assert.Equal(t, []string{"A", "B", "C"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("duplicates inside a fitting category are skipped", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.Toggle("D"))

		res, err := c.SelectCategory("coffee")
		require.NoError(t, err)
		assert.False(t, res.Partial)
		assert.Equal(t, 1, res.Added)
		assert.Equal(t, []string{"D", "E"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("full bundle adds nothing but succeeds", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.SelectAll())
		res, err := c.SelectCategory("coffee")
		require.NoError(t, err)
		assert.True(t, res.Partial)
		assert.Equal(t, 0, res.Added)
		assert.Equal(t, []string{"A", "B", "C"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("unknown category", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		_, err := c.SelectCategory("juice")
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})
}

func TestBundleSelectionController_SetSizeLimit(t *testing.T) {
	t.Run("truncation keeps earliest selections", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.SetSizeLimit(4))
		for _, id := range []string{"A", "B", "C", "D"} {
			require.NoError(t, c.Toggle(id))
		}
		require.NoError(t, c.SetSizeLimit(2))
		s := c.Snapshot()
		assert.Equal(t, []string{"A", "B"}, s.SelectedItemIDs)
		assert.Equal(t, 2, s.SizeLimit)
	})

	t.Run("growing keeps the selection", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})
		require.NoError(t, c.SelectAll())
		require.NoError(t, c.SetSizeLimit(6))
		assert.Equal(t, []string{"A", "B", "C"}, c.Snapshot().SelectedItemIDs)
	})

	t.Run("invalid sizes", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{AllowedSizes: []int{3, 4, 5}, PriceDebounce: time.Hour})
		assert.ErrorIs(t, c.SetSizeLimit(0), ErrInvalidSizeLimit)
		assert.ErrorIs(t, c.SetSizeLimit(-2), ErrInvalidSizeLimit)
		assert.ErrorIs(t, c.SetSizeLimit(7), ErrInvalidSizeLimit)
		assert.Equal(t, 3, c.Snapshot().SizeLimit)
	})
}

func TestBundleSelectionController_InvariantHoldsForRandomSequences(t *testing.T) {
	c, _ := newReadyController(t, ControllerOptions{AllowedSizes: []int{1, 2, 3, 4, 5, 6}, PriceDebounce: time.Hour})
	catalog := teaCatalog()
	categories := []string{"tea", "coffee", "x", "missing"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		var err error
		switch rng.Intn(5) {
		case 0, 1:
			err = c.Toggle(catalog.BundleItems[rng.Intn(len(catalog.BundleItems))].ID)
		case 2:
			_, err = c.SelectCategory(categories[rng.Intn(len(categories))])
		case 3:
			err = c.SetSizeLimit(rng.Intn(8))
		case 4:
			if rng.Intn(3) == 0 {
				err = c.ClearAll()
			} else {
				err = c.SelectAll()
			}
		}
		if err != nil && !errors.Is(err, ErrCapacityExceeded) && !errors.Is(err, ErrInvalidSizeLimit) && !errors.Is(err, ErrUnknownCategory) {
			t.Fatalf("step %d: unexpected error %v", i, err)
		}

		s := c.Snapshot()
		require.LessOrEqual(t, len(s.SelectedItemIDs), s.SizeLimit, "step %d", i)
		seen := make(map[string]bool)
		for _, id := range s.SelectedItemIDs {
			require.False(t, seen[id], "duplicate id %s at step %d", id, i)
			seen[id] = true
		}
	}
}

func TestBundleSelectionController_ProductSwitchIsolation(t *testing.T) {
	p2 := entities.BundleConfig{BundleSize: 4, BundleItems: []entities.BundleItem{item("Q", "q"), item("R", "r")}}

	t.Run("late response of the previous product is discarded", func(t *testing.T) {
		gate := make(chan struct{})
		catalogs := &fakeCatalogs{
			configs: map[string]entities.BundleConfig{"P1": teaCatalog(), "P2": p2},
			gates:   map[string]chan struct{}{"P1": gate},
			started: make(chan string, 4),
		}
		c := NewBundleSelectionController(catalogs, &fakeOracle{}, ControllerOptions{})
		defer c.Close()

		first := make(chan error, 1)
		go func() { first <- c.Initialize(context.Background(), "P1") }()
		require.Equal(t, "P1", <-catalogs.started)
		assert.Equal(t, entities.SessionPhaseLoading, c.Snapshot().Phase)

		require.NoError(t, c.Initialize(context.Background(), "P2"))
		close(gate)
		require.NoError(t, <-first)

		s := c.Snapshot()
		assert.Equal(t, entities.SessionPhaseReady, s.Phase)
		assert.Equal(t, "P2", s.ProductID)
		require.NotNil(t, s.Catalog)
		assert.Equal(t, "P2", s.Catalog.ProductID)
		assert.Len(t, s.Catalog.BundleItems, 2)
		assert.Equal(t, 4, s.SizeLimit)
		assert.Equal(t, uint64(1), c.Stats().CatalogStale)
	})

	t.Run("previous product resolving first does not win", func(t *testing.T) {
		gate1, gate2 := make(chan struct{}), make(chan struct{})
		catalogs := &fakeCatalogs{
			configs: map[string]entities.BundleConfig{"P1": teaCatalog(), "P2": p2},
			gates:   map[string]chan struct{}{"P1": gate1, "P2": gate2},
			started: make(chan string, 4),
		}
		c := NewBundleSelectionController(catalogs, &fakeOracle{}, ControllerOptions{})
		defer c.Close()

		first, second := make(chan error, 1), make(chan error, 1)
		go func() { first <- c.Initialize(context.Background(), "P1") }()
		require.Equal(t, "P1", <-catalogs.started)
		go func() { second <- c.Initialize(context.Background(), "P2") }()
		require.Equal(t, "P2", <-catalogs.started)

		close(gate1)
		require.NoError(t, <-first)
		s := c.Snapshot()
		assert.Equal(t, entities.SessionPhaseLoading, s.Phase)
		assert.Nil(t, s.Catalog)

		close(gate2)
		require.NoError(t, <-second)
		s = c.Snapshot()
		assert.Equal(t, "P2", s.ProductID)
		assert.Len(t, s.Catalog.BundleItems, 2)
	})

	t.Run("switching clears the previous selection", func(t *testing.T) {
		catalogs := &fakeCatalogs{configs: map[string]entities.BundleConfig{"P1": teaCatalog(), "P2": p2}}
		oracle := &fakeOracle{gates: map[string]chan struct{}{"A": make(chan struct{})}}
		c := NewBundleSelectionController(catalogs, oracle, ControllerOptions{})
		defer c.Close()

		require.NoError(t, c.Initialize(context.Background(), "P1"))
		require.NoError(t, c.Toggle("A"))
		require.NoError(t, c.Initialize(context.Background(), "P2"))

		s := c.Snapshot()
		assert.Empty(t, s.SelectedItemIDs)
		assert.Equal(t, entities.PriceStatusEmpty, s.Price.Status)
		assert.ErrorIs(t, c.Toggle("A"), ErrUnknownItem)

		// the pending P1 quote is cancelled and dropped
		require.Eventually(t, func() bool { return c.Stats().PriceStale == 1 }, 2*time.Second, 5*time.Millisecond)
	})
}

func TestBundleSelectionController_Price(t *testing.T) {
	t.Run("selection triggers a price request", func(t *testing.T) {
		c, oracle := newReadyController(t, ControllerOptions{})
		require.NoError(t, c.Toggle("A"))
		require.NoError(t, c.Toggle("D"))

		p := waitPrice(t, c)
		assert.Equal(t, entities.PriceStatusReady, p.Status)
		assert.Equal(t, 20.0, p.Total)
		assert.Equal(t, []string{"A", "D"}, p.ItemIDs)
		assert.True(t, p.HasTotal())

		oracle.mu.Lock()
		defer oracle.mu.Unlock()
		assert.NotEmpty(t, oracle.calls)
	})

	t.Run("empty selection issues no request", func(t *testing.T) {
		c, oracle := newReadyController(t, ControllerOptions{})
		require.NoError(t, c.ClearAll())
		require.NoError(t, c.SetSizeLimit(5))
		p := waitPrice(t, c)
		assert.Equal(t, entities.PriceStatusEmpty, p.Status)
		assert.Zero(t, c.Stats().PriceRequests)
		oracle.mu.Lock()
		defer oracle.mu.Unlock()
		assert.Empty(t, oracle.calls)
	})

	t.Run("stale response is discarded", func(t *testing.T) {
		gateS1, gateS2 := make(chan struct{}), make(chan struct{})
		c, oracle := newReadyController(t, ControllerOptions{})
		oracle.mu.Lock()
		oracle.gates = map[string]chan struct{}{"A": gateS1, "A,B": gateS2}
		oracle.mu.Unlock()

		require.NoError(t, c.Toggle("A"))
		require.NoError(t, c.Toggle("B"))

		close(gateS2)
		p := waitPrice(t, c)
		assert.Equal(t, 20.0, p.Total)

		close(gateS1)
		require.Eventually(t, func() bool { return c.Stats().PriceStale == 1 }, 2*time.Second, 5*time.Millisecond)
		s := c.Snapshot()
		assert.Equal(t, entities.PriceStatusReady, s.Price.Status)
		assert.Equal(t, 20.0, s.Price.Total)
		assert.Equal(t, []string{"A", "B"}, s.Price.ItemIDs)
	})

	t.Run("debounce coalesces a burst into one request", func(t *testing.T) {
		c, _ := newReadyController(t, ControllerOptions{PriceDebounce: 50 * time.Millisecond})
		require.NoError(t, c.Toggle("A"))
		require.NoError(t, c.Toggle("B"))
		require.NoError(t, c.Toggle("C"))

		assert.Equal(t, entities.PriceStatusPending, c.Snapshot().Price.Status)
		p := waitPrice(t, c)
		assert.Equal(t, 30.0, p.Total)
		assert.Equal(t, uint64(1), c.Stats().PriceRequests)
	})

	t.Run("failure reports unavailable and editing continues", func(t *testing.T) {
		c, oracle := newReadyController(t, ControllerOptions{})
		oracle.setErr(interfaces.ErrInvalidSelection)
		require.NoError(t, c.Toggle("A"))

		p := waitPrice(t, c)
		assert.Equal(t, entities.PriceStatusUnavailable, p.Status)
		assert.False(t, p.HasTotal())
		assert.Zero(t, p.Total)

		oracle.setErr(nil)
		require.NoError(t, c.Toggle("B"))
		p = waitPrice(t, c)
		assert.Equal(t, entities.PriceStatusReady, p.Status)
		assert.Equal(t, uint64(1), c.Stats().PriceFailed)
	})

	t.Run("wait honours context", func(t *testing.T) {
		c, oracle := newReadyController(t, ControllerOptions{})
		oracle.mu.Lock()
		oracle.gates = map[string]chan struct{}{"A": make(chan struct{})}
		oracle.mu.Unlock()
		require.NoError(t, c.Toggle("A"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := c.WaitForPrice(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestBundleSelectionController_OverlappingMutationsAreRejected(t *testing.T) {
	c, _ := newReadyController(t, ControllerOptions{PriceDebounce: time.Hour})

	entered, release := make(chan struct{}), make(chan struct{})
	var once sync.Once
	c.beforeMutate = func() {
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	done := make(chan error, 1)
	go func() { done <- c.Toggle("A") }()
	<-entered

	assert.ErrorIs(t, c.Toggle("B"), ErrOperationInFlight)
	assert.ErrorIs(t, c.SelectAll(), ErrOperationInFlight)
	assert.ErrorIs(t, c.ClearAll(), ErrOperationInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"A"}, c.Snapshot().SelectedItemIDs)

	require.NoError(t, c.Toggle("B"))
	assert.Equal(t, []string{"A", "B"}, c.Snapshot().SelectedItemIDs)
}

func TestBundleSelectionController_Close(t *testing.T) {
	c, oracle := newReadyController(t, ControllerOptions{})
	oracle.mu.Lock()
	oracle.gates = map[string]chan struct{}{"A": make(chan struct{})}
	oracle.mu.Unlock()
	require.NoError(t, c.Toggle("A"))

	c.Close()
	c.Close()

	assert.ErrorIs(t, c.Toggle("B"), ErrSessionClosed)
	assert.ErrorIs(t, c.Initialize(context.Background(), "p-2"), ErrSessionClosed)
	_, err := c.WaitForPrice(context.Background())
	assert.NoError(t, err)
}
