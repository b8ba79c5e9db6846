package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/config"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/backend"
	"github.com/fekuna/omnipos-storefront/internal/cache"
	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/metrics"
	"github.com/fekuna/omnipos-storefront/internal/notice"
	"github.com/fekuna/omnipos-storefront/internal/payment"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/search"

	cartRepoPkg "github.com/fekuna/omnipos-storefront/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-storefront/internal/cart/usecase"

	catRepoPkg "github.com/fekuna/omnipos-storefront/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-storefront/internal/category/usecase"

	prodRepoPkg "github.com/fekuna/omnipos-storefront/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-storefront/internal/product/usecase"

	"go.uber.org/zap"
)

type rootOptions struct {
	userID      int64
	variant     string
	token       string
	metricsAddr string
	jsonOutput  bool
}

// app holds the wired dependencies shared by every command.
type app struct {
	opts *rootOptions
	out  io.Writer

	cfg     *config.Config
	logger  logger.ZapLogger
	metrics *metrics.Metrics
	redis   *cache.RedisClient
	client  *backend.Client

	products   product.UseCase
	categories category.UseCase
	carts      cart.UseCase
	checkout   *checkout.Service
	notices    *notice.Service

	metricsServer *http.Server
	closed        bool
}

func (a *app) init(opts *rootOptions) error {
	a.opts = opts

	cfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	a.cfg = cfg
	if opts.userID == 0 {
		opts.userID = cfg.Storefront.UserID
	}
	if opts.metricsAddr == "" {
		opts.metricsAddr = cfg.Server.MetricsAddr
	}

	variant := dto.Variant(strings.ToLower(opts.variant))
	if variant != dto.VariantAdmin && variant != dto.VariantCatalog {
		return fmt.Errorf("unknown variant %q (want admin or catalog)", opts.variant)
	}

	// 1. Logger
	a.logger = logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	a.metrics = metrics.New()

	// 2. Redis list cache, optional
	var listCache cache.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.logger.Warn("Could not connect to Redis, list caching disabled", zap.Error(err))
		} else {
			a.redis = redisClient
			listCache = redisClient
			a.logger.Debug("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 3. Backend transport. --token travels on the command context and wins
	// over BACKEND_TOKEN.
	a.client, err = backend.NewClient(backend.Config{
		BaseURL:   cfg.Backend.BaseURL,
		Timeout:   cfg.Backend.Timeout,
		RateLimit: cfg.Backend.RateLimit,
		RateBurst: cfg.Backend.RateBurst,
	}, auth.NewStaticTokenSource(cfg.Backend.Token), a.metrics, a.logger)
	if err != nil {
		return err
	}

	// 4. Repositories and use cases
	prodRepo := prodRepoPkg.NewHTTPRepository(a.client, variant)
	catRepo := catRepoPkg.NewHTTPRepository(a.client)
	cartRepo := cartRepoPkg.NewHTTPRepository(a.client)

	a.products = prodUCPkg.NewProductUseCase(prodRepo, listCache, a.metrics, a.logger)
	a.categories = catUCPkg.NewCategoryUseCase(catRepo, listCache, a.metrics, a.logger)
	a.carts = cartUCPkg.NewCartUseCase(cartRepo, a.logger)
	a.checkout = checkout.NewService(a.carts, a.client, a.logger)
	a.notices = notice.NewService(a.client, a.logger)

	a.startMetrics()
	return nil
}

func (a *app) newController() *search.Controller {
	return search.NewController(a.products, a.categories, a.logger,
		search.WithPageSize(a.cfg.Storefront.SearchPageSize),
		search.WithMetrics(a.metrics),
	)
}

func (a *app) payments() (*payment.Service, error) {
	intents, err := payment.NewStripeIntents(a.cfg.Stripe.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("payments unavailable: %w", err)
	}
	return payment.NewService(intents, a.client, a.logger), nil
}

func (a *app) startMetrics() {
	if a.opts.metricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	a.metricsServer = &http.Server{
		Addr:              a.opts.metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	a.logger.Info("Serving metrics", zap.String("addr", a.opts.metricsAddr))
}

func (a *app) close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.metricsServer.Shutdown(ctx)
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
