package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const maxErrorBody = 4 << 10

// StatusError is a non-2xx backend response that maps to no sentinel.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

type Options struct {
	BaseURL  string
	APIToken string
	// Timeout bounds each request; zero keeps the caller's deadline only.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// StorefrontClient talks to the storefront backend, which owns bundle
// catalogs and pricing.
type StorefrontClient struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
	logger  *zap.Logger
}

var (
	_ interfaces.IBundleCatalogProvider = (*StorefrontClient)(nil)
	_ interfaces.IPriceOracle           = (*StorefrontClient)(nil)
)

func NewStorefrontClient(opts Options) *StorefrontClient {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorefrontClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.APIToken,
		timeout: opts.Timeout,
		http:    hc,
		logger:  logger,
	}
}

type bundleItemPayload struct {
	ID       string  `json:"id,omitempty"`
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

type bundleConfigPayload struct {
	BundleSize  int                 `json:"bundleSize"`
	BundleItems []bundleItemPayload `json:"bundleItems"`
}

type bundlePriceRequest struct {
	SelectedItemIDs []string `json:"selectedItemIds"`
}

type priceLinePayload struct {
	ItemID string  `json:"itemId"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type bundlePriceResponse struct {
	Total     float64            `json:"total"`
	Currency  string             `json:"currency"`
	Breakdown []priceLinePayload `json:"breakdown"`
}

// Fetch loads GET /products/{id}/bundle-config.
func (c *StorefrontClient) Fetch(ctx context.Context, productID string) (entities.BundleConfig, error) {
	var body bundleConfigPayload
	status, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID)+"/bundle-config", nil, &body)
	if err != nil {
		if status == http.StatusNotFound {
			return entities.BundleConfig{}, fmt.Errorf("%w: %s", interfaces.ErrBundleNotFound, productID)
		}
		return entities.BundleConfig{}, err
	}

	cfg := entities.BundleConfig{
		ProductID:   productID,
		BundleSize:  body.BundleSize,
		BundleItems: make([]entities.BundleItem, 0, len(body.BundleItems)),
	}
	for _, it := range body.BundleItems {
		cfg.BundleItems = append(cfg.BundleItems, entities.BundleItem{
			ID:       it.ID,
			Category: it.Category,
			Name:     it.Name,
			Price:    it.Price,
		})
	}
	return cfg.Normalize(), nil
}

// Quote asks POST /products/{id}/bundle-price for the selection total.
func (c *StorefrontClient) Quote(ctx context.Context, productID string, itemIDs []string) (entities.PriceCalculation, error) {
	var body bundlePriceResponse
	req := bundlePriceRequest{SelectedItemIDs: itemIDs}
	status, err := c.do(ctx, http.MethodPost, "/products/"+url.PathEscape(productID)+"/bundle-price", req, &body)
	if err != nil {
		if status == http.StatusBadRequest || status == http.StatusUnprocessableEntity {
			return entities.PriceCalculation{}, fmt.Errorf("%w: %w", interfaces.ErrInvalidSelection, err)
		}
		return entities.PriceCalculation{}, err
	}

	calc := entities.PriceCalculation{
		Status:   entities.PriceStatusReady,
		Total:    body.Total,
		Currency: body.Currency,
		ItemIDs:  append([]string(nil), itemIDs...),
	}
	for _, l := range body.Breakdown {
		calc.Breakdown = append(calc.Breakdown, entities.PriceLine{ItemID: l.ItemID, Label: l.Label, Amount: l.Amount})
	}
	return calc, nil
}

// do returns the response status alongside any error so callers can map it.
func (c *StorefrontClient) do(ctx context.Context, method, path string, in, out any) (int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("[backend][client] request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return 0, err
	}
	defer resp.Body.Close()
	c.logger.Debug("[backend][client] request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return resp.StatusCode, fmt.Errorf("backend %s %s: decode response: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}
