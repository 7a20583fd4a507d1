package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	_ "storefront_bundles/docs" // swagger docs
	"storefront_bundles/internal/adapter/http/handlers"
	"storefront_bundles/internal/adapter/persistence/repository"
	"storefront_bundles/internal/infrastructure/backend"
	"storefront_bundles/internal/infrastructure/cache"
	"storefront_bundles/internal/infrastructure/config"
	"storefront_bundles/internal/infrastructure/database"
	"storefront_bundles/internal/infrastructure/metrics"
	"storefront_bundles/internal/infrastructure/payments"
	"storefront_bundles/internal/usecase"
	"storefront_bundles/internal/usecase/interfaces"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Handlers groups the HTTP handlers mounted under /v1.
type Handlers struct {
	Sessions *handlers.BundleSessionHandler
	Carts    *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
}

// closers release the long-lived dependencies once the server has drained.
type closers struct {
	sessions func()
	cache    func()
}

// Run wires the service and serves until SIGINT or SIGTERM.
func Run(cfg config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	h, deps, err := buildHandlers(ctx, cfg, logger)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(registry)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           NewRouter(h, registry, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("[http] listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, shutdownOperations(srv, deps, logger))

	select {
	case err := <-serveErr:
		deps.sessions()
		deps.cache()
		return err
	case code := <-wait:
		if code != 0 {
			return fmt.Errorf("graceful shutdown exited with code %d", code)
		}
		return nil
	}
}

// shutdownOperations runs concurrently; sessions and the catalog cache are
// released only after in-flight requests have finished.
func shutdownOperations(srv *http.Server, deps closers, logger *zap.Logger) map[string]gfshutdown.Operation {
	if logger == nil {
		logger = zap.NewNop()
	}
	drained := make(chan struct{})
	afterDrain := func(ctx context.Context, release func()) error {
		select {
		case <-drained:
		case <-ctx.Done():
		}
		release()
		return nil
	}
	return map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			defer close(drained)
			logger.Info("[http] shutting down")
			return srv.Shutdown(ctx)
		},
		"sessions": func(ctx context.Context) error {
			return afterDrain(ctx, deps.sessions)
		},
		"catalog-cache": func(ctx context.Context) error {
			return afterDrain(ctx, deps.cache)
		},
	}
}

// NewRouter builds the gin engine with middlewares, docs, metrics and the /v1
// routes.
func NewRouter(h Handlers, gatherer prometheus.Gatherer, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	setMiddlewares(router, logger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBundleRoutes(v1, h.Sessions)
	addCartRoutes(v1, h.Carts)
	addCheckoutRoutes(v1, h.Checkout)
	return router
}

func buildHandlers(ctx context.Context, cfg config.Config, logger *zap.Logger) (Handlers, closers, error) {
	ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBSettingsFromEnv(), logger)
	if err != nil {
		return Handlers{}, closers{}, err
	}
	cartRepo := repository.NewCartDynamoRepository(ddb, cfg.CartItemsTable)
	paymentRepo := repository.NewCheckoutPaymentDynamoRepository(ddb, cfg.PaymentsTable)

	storefront := backend.NewStorefrontClient(backend.Options{
		BaseURL:  cfg.BackendBaseURL,
		APIToken: cfg.BackendAPIToken,
		Timeout:  cfg.BackendTimeout,
		Logger:   logger,
	})

	catalogCache, closeCache := newCatalogCache(ctx, cfg, logger)
	catalogs := cache.NewCachingCatalogProvider(storefront, catalogCache, logger)

	cartUseCase := usecase.NewCartUseCase(cartRepo, catalogs, logger)
	sessionUseCase := usecase.NewBundleSessionUseCase(catalogs, storefront, cartUseCase, usecase.SessionOptions{
		TTL: cfg.SessionTTL,
		Controller: usecase.ControllerOptions{
			DefaultSizeLimit: cfg.DefaultBundleSize,
			AllowedSizes:     cfg.BundleSizes,
			PriceDebounce:    cfg.PriceDebounce,
			Logger:           logger,
		},
		Logger: logger,
	})

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(payments.Options{
		AccessToken: cfg.MercadoPagoAccessToken,
		MockMode:    cfg.PaymentGatewayMock,
		Logger:      logger,
	})
	if err != nil {
		logger.Warn("[checkout] mercado pago gateway not configured", zap.Error(err))
	} else {
		gateway = mpGateway
	}
	checkoutUseCase := usecase.NewCheckoutUseCase(cartRepo, paymentRepo, storefront, gateway, usecase.CheckoutOptions{
		Currency:          cfg.Currency,
		SandboxPayerEmail: cfg.MercadoPagoPayerEmail,
		Logger:            logger,
	})

	h := Handlers{
		Sessions: handlers.NewBundleSessionHandler(sessionUseCase, logger),
		Carts:    handlers.NewCartHandler(cartUseCase, logger),
		Checkout: handlers.NewCheckoutHandler(checkoutUseCase, logger),
	}
	return h, closers{sessions: sessionUseCase.Close, cache: closeCache}, nil
}

// newCatalogCache prefers Redis and falls back to an in-process cache when
// REDIS_ADDR is empty or unreachable at startup.
func newCatalogCache(ctx context.Context, cfg config.Config, logger *zap.Logger) (interfaces.ICatalogCache, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("[catalog][cache] using in-memory cache", zap.Duration("ttl", cfg.CatalogCacheTTL))
		return cache.NewMemoryCatalogCache(cfg.CatalogCacheTTL), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	rc := cache.NewRedisCatalogCache(client, "", cfg.CatalogCacheTTL)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		logger.Warn("[catalog][cache] redis unavailable, using in-memory cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = client.Close()
		return cache.NewMemoryCatalogCache(cfg.CatalogCacheTTL), func() {}
	}
	logger.Info("[catalog][cache] using redis", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CatalogCacheTTL))
	return rc, func() { _ = client.Close() }
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(requestLogger(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("[http] recovered from panic",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("[http] request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("[http] request", fields...)
		default:
			logger.Info("[http] request", fields...)
		}
	}
}
