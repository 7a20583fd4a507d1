package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Config is the service configuration, read from the environment.
//
// A .env file in the working directory is loaded by godotenv autoload in main
// before Load runs.
type Config struct {
	Port        int
	LogLevel    string
	Development bool

	BackendBaseURL  string
	BackendAPIToken string
	BackendTimeout  time.Duration

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration

	SessionTTL        time.Duration
	PriceDebounce     time.Duration
	BundleSizes       []int
	DefaultBundleSize int

	CartItemsTable string
	PaymentsTable  string
	Currency       string

	MercadoPagoAccessToken string
	MercadoPagoPayerEmail  string
	PaymentGatewayMock     bool
}

// Load reads the configuration and validates cross-field constraints.
func Load() (Config, error) {
	var errs []string
	port, err := getenvInt("PORT", 8080)
	if err != nil {
		errs = append(errs, err.Error())
	}
	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		errs = append(errs, err.Error())
	}
	defaultSize, err := getenvInt("DEFAULT_BUNDLE_SIZE", 3)
	if err != nil {
		errs = append(errs, err.Error())
	}
	backendTimeout, err := getenvDuration("BACKEND_TIMEOUT", 5*time.Second)
	if err != nil {
		errs = append(errs, err.Error())
	}
	cacheTTL, err := getenvDuration("CATALOG_CACHE_TTL", 5*time.Minute)
	if err != nil {
		errs = append(errs, err.Error())
	}
	sessionTTL, err := getenvDuration("SESSION_TTL", 30*time.Minute)
	if err != nil {
		errs = append(errs, err.Error())
	}
	debounce, err := getenvDuration("PRICE_DEBOUNCE", 150*time.Millisecond)
	if err != nil {
		errs = append(errs, err.Error())
	}
	sizes, err := ParseBundleSizes(getenvDefault("BUNDLE_SIZES", "3-10"))
	if err != nil {
		errs = append(errs, err.Error())
	}

	cfg := Config{
		Port:                   port,
		LogLevel:               getenvDefault("LOG_LEVEL", "info"),
		Development:            strings.EqualFold(os.Getenv("APP_ENV"), "development"),
		BackendBaseURL:         strings.TrimRight(getenvDefault("BACKEND_BASE_URL", "http://localhost:3000/api"), "/"),
		BackendAPIToken:        os.Getenv("BACKEND_API_TOKEN"),
		BackendTimeout:         backendTimeout,
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                redisDB,
		CatalogCacheTTL:        cacheTTL,
		SessionTTL:             sessionTTL,
		PriceDebounce:          debounce,
		BundleSizes:            sizes,
		DefaultBundleSize:      defaultSize,
		CartItemsTable:         getenvDefault("CART_ITEMS_TABLE", "cart_items"),
		PaymentsTable:          getenvDefault("PAYMENTS_TABLE", "payments"),
		Currency:               getenvDefault("CURRENCY", "BRL"),
		MercadoPagoAccessToken: strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
		MercadoPagoPayerEmail:  strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")),
		PaymentGatewayMock:     envFlag("PAYMENT_GATEWAY_MOCK") || envFlag("MERCADOPAGO_MOCK"),
	}

	if cfg.DefaultBundleSize <= 0 {
		errs = append(errs, "DEFAULT_BUNDLE_SIZE must be positive")
	} else if len(cfg.BundleSizes) > 0 && !containsInt(cfg.BundleSizes, cfg.DefaultBundleSize) {
		errs = append(errs, fmt.Sprintf("DEFAULT_BUNDLE_SIZE %d is not one of BUNDLE_SIZES %v", cfg.DefaultBundleSize, cfg.BundleSizes))
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// ParseBundleSizes accepts a comma separated list of sizes and ranges, e.g.
// "3-10" or "3,4,6-8". An empty value means any positive size is allowed.
func ParseBundleSizes(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	seen := make(map[int]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("BUNDLE_SIZES: invalid size %q", part)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("BUNDLE_SIZES: invalid range %q", part)
			}
		}
		if from <= 0 || to < from {
			return nil, fmt.Errorf("BUNDLE_SIZES: invalid range %q", part)
		}
		for n := from; n <= to; n++ {
			seen[n] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a duration", key, v)
	}
	return d, nil
}

func envFlag(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func containsInt(values []int, n int) bool {
	for _, v := range values {
		if v == n {
			return true
		}
	}
	return false
}
