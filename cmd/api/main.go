package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bdevries/parceldesk-backend/api/routes"
	checkoutsvc "github.com/bdevries/parceldesk-backend/internal/checkout"
	deliverysvc "github.com/bdevries/parceldesk-backend/internal/delivery"
	"github.com/bdevries/parceldesk-backend/pkg/config"
	"github.com/bdevries/parceldesk-backend/pkg/logger"
	"github.com/bdevries/parceldesk-backend/pkg/metrics"
	"github.com/bdevries/parceldesk-backend/pkg/money"
	"github.com/bdevries/parceldesk-backend/pkg/redis"
	"github.com/bdevries/parceldesk-backend/pkg/settings"
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

	store, err := settings.LoadFile(cfg.Settings.File)
	if err != nil {
		logg.Error(context.Background(), "failed to load shop settings", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	lookupMetrics := metrics.NewLookupMetrics(registry)

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, lookup cache disabled")
	}

	clientCfg := deliverysvc.ClientConfig{
		BaseURL:     cfg.Carrier.LookupBaseURL,
		CountryCode: cfg.Carrier.CountryCode,
		CarrierID:   cfg.Carrier.CarrierID,
		HTTPClient:  &http.Client{Timeout: cfg.Carrier.HTTPTimeout},
		CacheTTL:    cfg.Carrier.CacheTTL,
		Metrics:     lookupMetrics,
		Logger:      logg,
	}
	if redisClient != nil {
		clientCfg.Cache = redisClient
	}
	lookupClient, err := deliverysvc.NewClient(clientCfg)
	if err != nil {
		logg.Error(context.Background(), "failed to create lookup client", err)
		os.Exit(1)
	}

	deliveryService, err := deliverysvc.NewService(lookupClient, store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		checkoutsvc.NewMemoryQuoteStore(),
		store,
		money.NewFormatter("€"),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
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

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	var cache redis.Pinger
	if redisClient != nil {
		cache = redisClient
	}

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			httpMetrics,
			metricsHandler,
			cache,
			checkoutService,
			deliveryService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
