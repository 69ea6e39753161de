package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sutra-be/internal/api"
	"sutra-be/internal/cart"
	"sutra-be/internal/checkout"
	"sutra-be/internal/config"
	"sutra-be/internal/db"
	"sutra-be/internal/graph"
	"sutra-be/internal/logger"
	"sutra-be/internal/metrics"
	"sutra-be/internal/middleware"
	"sutra-be/internal/order"
	"sutra-be/internal/product"
	"sutra-be/internal/storage"
	"sutra-be/internal/user"
	"sutra-be/internal/wishlist"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// seams for tests
var (
	initDBFunc      = db.NewDatabase
	newRedisFunc    = storage.NewRedisStore
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	handler, err := newServer(ctx, cfg, store, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreDriver),
		)
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore builds the key-value backend named by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		database, err := initDBFunc(cfg)
		if err != nil {
			return nil, err
		}
		return &pgStore{PostgresStore: storage.NewPostgresStore(database), db: database}, nil
	case config.StoreRedis:
		rs, err := newRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return storage.NewMemoryStore(), nil
	}
}

// pgStore closes the underlying pool on shutdown.
type pgStore struct {
	*storage.PostgresStore
	db *sql.DB
}

func (s *pgStore) Close() error { return s.db.Close() }

func newServer(ctx context.Context, cfg *config.Config, store storage.Store, reg *prometheus.Registry) (http.Handler, error) {
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewStorefront(reg)

	catalog, err := product.NewCatalog(product.DefaultProducts())
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	carts := cart.NewService(cart.NewRepository(store), catalog, m)
	orders := order.NewService(order.NewRepository(store, m), m)
	users := user.NewService(user.NewRepository(store), user.Options{
		JWTSecret:         cfg.JWTSecret,
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})

	deps := api.Deps{
		Catalog:            catalog,
		Carts:              carts,
		Wishlist:           wishlist.NewService(store, catalog),
		Users:              users,
		Orders:             orders,
		Checkout:           checkout.NewService(carts, orders, users, cfg.ShippingCost),
		Metrics:            promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		PriceReferenceSize: cfg.PriceReferenceSize,
		PriceReferenceUnit: cfg.PriceReferenceUnit,
	}
	if p, ok := store.(storage.Pinger); ok {
		deps.Health = p
	}
	deps.GraphQL = graph.NewHandler(&graph.Resolver{
		Catalog:            deps.Catalog,
		Carts:              deps.Carts,
		Wishlist:           deps.Wishlist,
		Users:              deps.Users,
		Orders:             deps.Orders,
		Checkout:           deps.Checkout,
		PriceReferenceSize: deps.PriceReferenceSize,
		PriceReferenceUnit: deps.PriceReferenceUnit,
	})

	limiter := middleware.NewRateLimiter(ctx, cfg.InternalSecretKey)

	return api.NewRouter(api.NewHandler(deps),
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.CORS(cfg.CORSOrigin),
		middleware.AuthMiddleware(users),
		limiter.Middleware,
	), nil
}
