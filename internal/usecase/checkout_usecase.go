package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCheckoutPaymentNotFound        = errors.New("checkout payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidPaymentPayload          = errors.New("invalid payment payload")
	ErrEmptyCart                      = errors.New("cart has no lines")
	ErrCartHasIncompleteLines         = errors.New("cart has lines that need customization")
	ErrCheckoutPricingFailed          = errors.New("checkout pricing failed")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IncompleteLinesError lists the cart lines that still need a selection.
type IncompleteLinesError struct {
	LineIDs []string
}

func (e *IncompleteLinesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCartHasIncompleteLines, strings.Join(e.LineIDs, ", "))
}

func (e *IncompleteLinesError) Is(target error) bool {
	return target == ErrCartHasIncompleteLines
}

// mockModeReporter is implemented by gateways that approve payments locally.
type mockModeReporter interface {
	MockMode() bool
}

// ICheckoutUseCase pays for a cart of bundle lines.
//
// The amount is always priced server-side; whatever the client sends as
// transaction_amount is overwritten.
type ICheckoutUseCase interface {
	Checkout(ctx context.Context, cartID string, payload json.RawMessage) (entities.CheckoutPayment, error)
	GetPayment(ctx context.Context, id string) (entities.CheckoutPayment, error)
	ListPayments(ctx context.Context, cartID string) ([]entities.CheckoutPayment, error)
}

type CheckoutOptions struct {
	Currency string
	// SandboxPayerEmail fills payer.email when the payload carries no payer.
	SandboxPayerEmail string
	Logger            *zap.Logger
}

type CheckoutUseCase struct {
	carts    interfaces.ICartRepository
	payments interfaces.ICheckoutPaymentRepository
	oracle   interfaces.IPriceOracle
	gateway  interfaces.IPaymentGateway
	currency string
	payer    string
	logger   *zap.Logger
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(carts interfaces.ICartRepository, payments interfaces.ICheckoutPaymentRepository, oracle interfaces.IPriceOracle, gateway interfaces.IPaymentGateway, opts CheckoutOptions) *CheckoutUseCase {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	currency := strings.TrimSpace(opts.Currency)
	if currency == "" {
		currency = "BRL"
	}
	return &CheckoutUseCase{
		carts:    carts,
		payments: payments,
		oracle:   oracle,
		gateway:  gateway,
		currency: currency,
		payer:    strings.TrimSpace(opts.SandboxPayerEmail),
		logger:   logger,
	}
}

func (u *CheckoutUseCase) Checkout(ctx context.Context, cartID string, payload json.RawMessage) (entities.CheckoutPayment, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return entities.CheckoutPayment{}, ErrInvalidCartID
	}
	log := u.logger.With(zap.String("cart_id", cartID))
	log.Info("[checkout][usecase] checkout start", zap.Int("payload_len", len(payload)))

	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err != nil || reqMap == nil {
		log.Warn("[checkout][usecase] invalid payload (not a json object)")
		return entities.CheckoutPayment{}, ErrInvalidPaymentPayload
	}
	if u.gateway == nil {
		return entities.CheckoutPayment{}, ErrPaymentGatewayNotConfigured
	}
	mockMode := false
	if r, ok := u.gateway.(mockModeReporter); ok {
		mockMode = r.MockMode()
	}
	if !mockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Warn("[checkout][usecase] missing payment_method_id")
			return entities.CheckoutPayment{}, ErrInvalidPaymentPayload
		}
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Warn("[checkout][usecase] missing/invalid payer")
			return entities.CheckoutPayment{}, ErrInvalidPaymentPayload
		}
	}

	lines, err := u.carts.ListByCartID(ctx, cartID)
	if err != nil {
		log.Error("[checkout][usecase] failed loading cart lines", zap.Error(err))
		return entities.CheckoutPayment{}, err
	}
	if len(lines) == 0 {
		return entities.CheckoutPayment{}, ErrEmptyCart
	}
	var incomplete []string
	for _, line := range lines {
		if line.NeedsCustomization() {
			incomplete = append(incomplete, line.ID)
		}
	}
	if len(incomplete) > 0 {
		log.Info("[checkout][usecase] blocked by incomplete lines", zap.Strings("line_ids", incomplete))
		return entities.CheckoutPayment{}, &IncompleteLinesError{LineIDs: incomplete}
	}

	amount, currency, err := u.priceLines(ctx, lines)
	if err != nil {
		log.Warn("[checkout][usecase] pricing failed", zap.Error(err))
		return entities.CheckoutPayment{}, err
	}

	lineIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		lineIDs = append(lineIDs, line.ID)
	}

	// Mercado Pago uses external_reference to reconcile events.
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = cartID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Bundle cart %s", cartID)
	}
	reqMap["transaction_amount"] = amount
	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return entities.CheckoutPayment{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		log.Warn("[checkout][usecase] payment gateway failed", zap.Error(err))
		return entities.CheckoutPayment{}, classifyGatewayError(err)
	}
	if providerPaymentID == "" {
		providerPaymentID = uuid.NewString()
	}

	p := entities.CheckoutPayment{
		ID:                 providerPaymentID,
		CartID:             cartID,
		Amount:             amount,
		Currency:           currency,
		LineIDs:            lineIDs,
		Date:               time.Now().UTC(),
		Status:             entities.PaymentStatusFromProvider(providerStatus),
		ProviderPayloadRaw: providerResp,
	}
	created, err := u.payments.Create(ctx, p)
	if err != nil {
		log.Error("[checkout][usecase] payment repository create failed", zap.String("payment_id", p.ID), zap.Error(err))
		return entities.CheckoutPayment{}, err
	}
	log.Info("[checkout][usecase] checkout success",
		zap.String("payment_id", created.ID),
		zap.String("status", string(created.Status)),
		zap.Float64("amount", created.Amount),
	)
	return created, nil
}

// priceLines asks the backend for each line's bundle total and multiplies by
// quantity.
func (u *CheckoutUseCase) priceLines(ctx context.Context, lines []entities.CartLineItem) (float64, string, error) {
	if u.oracle == nil {
		return 0, "", fmt.Errorf("%w: price oracle not configured", ErrCheckoutPricingFailed)
	}
	total := 0.0
	currency := ""
	for _, line := range lines {
		quote, err := u.oracle.Quote(ctx, line.ProductID, line.SelectedItemIDs)
		if err != nil {
			return 0, "", fmt.Errorf("%w: line %s: %w", ErrCheckoutPricingFailed, line.ID, err)
		}
		if quote.Currency != "" {
			if currency != "" && currency != quote.Currency {
				return 0, "", fmt.Errorf("%w: mixed currencies %s and %s", ErrCheckoutPricingFailed, currency, quote.Currency)
			}
			currency = quote.Currency
		}
		total += quote.Total * float64(line.Quantity)
	}
	if currency == "" {
		currency = u.currency
	}
	return math.Round(total*100) / 100, currency, nil
}

func (u *CheckoutUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	// In sandbox, either payer.id or payer.email may be used.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") && u.payer != "" {
		payer["email"] = u.payer
	}
}

func (u *CheckoutUseCase) GetPayment(ctx context.Context, id string) (entities.CheckoutPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.CheckoutPayment{}, ErrInvalidPaymentID
	}

	p, err := u.payments.GetByID(ctx, id)
	if err != nil {
		return entities.CheckoutPayment{}, err
	}
	if p.ID == "" {
		return entities.CheckoutPayment{}, ErrCheckoutPaymentNotFound
	}
	return p, nil
}

func (u *CheckoutUseCase) ListPayments(ctx context.Context, cartID string) ([]entities.CheckoutPayment, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, ErrInvalidCartID
	}
	return u.payments.ListByCartID(ctx, cartID)
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v)) != ""
}

// classifyGatewayError maps Mercado Pago error bodies onto sentinel errors.
func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayCustomerNotFound, err)
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayInvalidUsers, err)
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayUnauthorized, err)
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayBadRequest, err)
	}
	return err
}
