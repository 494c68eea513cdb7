package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fashionkart/storefront/internal/account"
	"github.com/fashionkart/storefront/internal/api"
	"github.com/fashionkart/storefront/internal/cart"
	"github.com/fashionkart/storefront/internal/catalog"
	"github.com/fashionkart/storefront/internal/config"
	handler "github.com/fashionkart/storefront/internal/handler/http"
	"github.com/fashionkart/storefront/internal/notify"
	"github.com/fashionkart/storefront/internal/orders"
	"github.com/fashionkart/storefront/internal/storage"
	filestore "github.com/fashionkart/storefront/internal/storage/file"
	redisstore "github.com/fashionkart/storefront/internal/storage/redis"
	"github.com/fashionkart/storefront/internal/wishlist"
	"github.com/fashionkart/storefront/pkg/health"
	"github.com/fashionkart/storefront/pkg/middleware"
	"github.com/fashionkart/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront process.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      storage.Store
	httpServer *http.Server

	shutdownTracer func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing is off unless explicitly enabled.
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.OTLPEndpoint
	tracingCfg.Enabled = cfg.TracingEnabled
	shutdownTracer, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Durable storage backend.
	var store storage.Store
	healthHandler := health.NewHandler()

	switch cfg.StorageBackend {
	case config.StorageRedis:
		rds, err := redisstore.New(ctx, redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rds.Ping(ctx)
		})
		store = rds
	default:
		fs, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open data directory: %w", err)
		}
		logger.Info("file storage initialized", slog.String("dir", cfg.DataDir))
		store = fs
	}

	// Build the dependency graph. Collections hydrate from storage exactly
	// once, here; later reads go through the in-memory state.
	notices := notify.NewQueue(cfg.NoticeLimit)
	cartStore := cart.New(ctx, store, logger)
	wishlistStore := wishlist.New(ctx, store, notices, logger)

	client := api.New(cfg.APIBaseURL, logger)
	catalogService := catalog.NewService(client, logger)
	accountService := account.NewService(client, logger)
	ordersService := orders.NewService(client, logger)

	router := handler.NewRouter(handler.Deps{
		Cart:     cartStore,
		Wishlist: wishlistStore,
		Catalog:  catalogService,
		Account:  accountService,
		Orders:   ordersService,
		Notices:  notices,
		Health:   healthHandler,
		Logger:   logger,

		CORS:               middleware.CORSConfig{AllowedOrigins: cfg.CORSOrigins},
		PprofCIDRs:         cfg.PprofCIDRs,
		CatalogCacheMaxAge: cfg.CatalogCacheMaxAge,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		store:          store,
		httpServer:     httpServer,
		shutdownTracer: shutdownTracer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("storage close error", slog.String("error", err.Error()))
	}

	if err := a.shutdownTracer(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
