package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/feastline/feastline-backend/api/routes"
	"github.com/feastline/feastline-backend/internal/address"
	authsvc "github.com/feastline/feastline-backend/internal/auth"
	"github.com/feastline/feastline-backend/internal/cart"
	"github.com/feastline/feastline-backend/internal/catalog"
	"github.com/feastline/feastline-backend/internal/checkout"
	"github.com/feastline/feastline-backend/internal/orders"
	"github.com/feastline/feastline-backend/internal/payments"
	"github.com/feastline/feastline-backend/internal/users"
	"github.com/feastline/feastline-backend/pkg/auth/session"
	"github.com/feastline/feastline-backend/pkg/config"
	"github.com/feastline/feastline-backend/pkg/logger"
	"github.com/feastline/feastline-backend/pkg/metrics"
	"github.com/feastline/feastline-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	directory := users.NewStore()
	gateway, err := users.NewGateway(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create user gateway", err)
		os.Exit(1)
	}
	if err := gateway.Load(context.Background(), directory); err != nil {
		logg.Error(context.Background(), "failed to rehydrate user directory", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(directory, gateway, sessionManager, cfg.JWT, cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	menu, err := loadCatalog(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	cartStore := cart.NewStore(cfg.Checkout.TaxRateDecimal(), cfg.Checkout.ServiceChargeDecimal())
	addressBook := address.NewBook()
	instrumentStore := payments.NewStore()
	orderLedger := orders.NewLedger()

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	sequencer, err := checkout.NewSequencer(checkout.Options{
		Cart:        cartStore,
		Addresses:   addressBook,
		Instruments: instrumentStore,
		Ledger:      orderLedger,
		Logger:      logg,
		Metrics:     checkoutMetrics,
		UPIDelay:    cfg.Checkout.UPIProcessingDelay,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout sequencer", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Redis:       redisClient,
			Sessions:    sessionManager,
			AuthService: authService,
			Catalog:     menu,
			Cart:        cartStore,
			Addresses:   addressBook,
			Instruments: instrumentStore,
			Ledger:      orderLedger,
			Sequencer:   sequencer,
			Registry:    registry,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.Reader, error) {
	if cfg.Path != "" {
		return catalog.LoadFile(cfg.Path)
	}
	return catalog.NewReader(catalog.DefaultItems())
}
