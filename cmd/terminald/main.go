package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/craftline/pos-terminal/api/routes"
	"github.com/craftline/pos-terminal/internal/cart"
	"github.com/craftline/pos-terminal/internal/catalog"
	"github.com/craftline/pos-terminal/internal/checkout"
	"github.com/craftline/pos-terminal/pkg/config"
	"github.com/craftline/pos-terminal/pkg/logger"
	"github.com/craftline/pos-terminal/pkg/metrics"
	"github.com/craftline/pos-terminal/pkg/rest"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "terminald"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "terminald",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	cartClient, err := rest.NewClient("cart-service", cfg.Upstream.CartServiceURL, cfg.Upstream.RequestTimeout, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart client", err)
		os.Exit(1)
	}
	catalogClient, err := rest.NewClient("catalog-service", cfg.Upstream.CatalogServiceURL, cfg.Upstream.RequestTimeout, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog client", err)
		os.Exit(1)
	}
	orderClient, err := rest.NewClient("order-service", cfg.Upstream.OrderServiceURL, cfg.Upstream.RequestTimeout, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build order client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	terminalMetrics := metrics.NewCheckoutMetrics(registry)

	catalogService, err := catalog.NewService(catalogClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(cartClient, logg, terminalMetrics, cfg.Checkout.DefaultPaymentMethod)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	coordinator, err := checkout.NewCoordinator(orderClient, cartStore, catalogService, logg, terminalMetrics, cfg.Checkout.SubmitTimeout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout coordinator", err)
		os.Exit(1)
	}

	// Initial loads are best-effort: the facade serves with whatever state
	// the upstreams could provide, and the UI can retrigger both.
	if err := catalogService.Refresh(context.Background()); err != nil {
		logg.Warn(context.Background(), "initial catalog refresh degraded")
	}
	if err := cartStore.Refresh(context.Background()); err != nil {
		logg.Error(context.Background(), "initial cart fetch failed", err)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     ":" + cfg.App.Port,
		"terminal": cfg.App.TerminalID,
	})
	logg.Info(ctx, "starting terminal facade")

	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: routes.NewRouter(cfg, logg, registry, cartStore, catalogService, coordinator),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "terminal facade stopped unexpectedly", err)
		os.Exit(1)
	}
}
