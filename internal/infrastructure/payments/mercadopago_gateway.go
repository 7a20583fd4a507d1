package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

type Options struct {
	AccessToken string
	// MockMode approves every payment locally without calling Mercado Pago.
	MockMode bool
	Logger   *zap.Logger
}

type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
	logger   *zap.Logger
	now      func() time.Time
}

func NewMercadoPagoGateway(opts Options) (*MercadoPagoGateway, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &MercadoPagoGateway{logger: logger, now: func() time.Time { return time.Now().UTC() }}

	if opts.MockMode {
		logger.Info("[payment][gateway] mock mode enabled")
		g.mockMode = true
		return g, nil
	}

	if opts.AccessToken == "" {
		logger.Error("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		logger.Error("[payment][gateway] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	logger.Info("[payment][gateway] Mercado Pago client initialized")

	g.client = payment.NewClient(cfg)
	return g, nil
}

// MockMode reports whether payments are approved locally.
func (g *MercadoPagoGateway) MockMode() bool {
	return g != nil && g.mockMode
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g.MockMode() {
		return g.mockCreate(requestPayload)
	}

	if g == nil || g.client == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	g.logger.Debug("[payment][gateway] create start", zap.Int("payload_len", len(requestPayload)))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		g.logger.Warn("[payment][gateway] payload unmarshal failed", zap.Error(err))
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.logger.Warn("[payment][gateway] sdk create failed", zap.Error(err))
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		g.logger.Error("[payment][gateway] response marshal failed", zap.Error(err))
		return "", "", nil, err
	}
	g.logger.Info("[payment][gateway] create success",
		zap.Any("provider_payment_id", resp.ID),
		zap.String("provider_status", resp.Status),
	)

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

func (g *MercadoPagoGateway) mockCreate(requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	now := g.now()
	id := strconv.FormatInt(now.UnixNano(), 10)
	stamp := now.Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	if _, ok := resp["date_created"]; !ok {
		resp["date_created"] = stamp
	}
	if _, ok := resp["date_approved"]; !ok {
		resp["date_approved"] = stamp
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}

	g.logger.Info("[payment][gateway] mock create success", zap.String("provider_payment_id", id))
	return id, "approved", b, nil
}
