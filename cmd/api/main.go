package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/solvitek/quoteline-backend/api/routes"
	"github.com/solvitek/quoteline-backend/internal/catalog"
	"github.com/solvitek/quoteline-backend/internal/customers"
	"github.com/solvitek/quoteline-backend/internal/discounts"
	"github.com/solvitek/quoteline-backend/internal/drafts"
	"github.com/solvitek/quoteline-backend/internal/quotes"
	"github.com/solvitek/quoteline-backend/pkg/config"
	"github.com/solvitek/quoteline-backend/pkg/db"
	"github.com/solvitek/quoteline-backend/pkg/logger"
	"github.com/solvitek/quoteline-backend/pkg/metrics"
	"github.com/solvitek/quoteline-backend/pkg/migrate"
	"github.com/solvitek/quoteline-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	pricingMetrics := metrics.NewPricingMetrics(registry)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	customerService, err := customers.NewService(customers.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}

	matrixProvider, err := discounts.NewProvider(
		discounts.NewRepository(dbClient.DB()),
		redisClient,
		cfg.Pricing.MatrixCacheTTL,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create matrix provider", err)
		os.Exit(1)
	}

	draftStore, err := drafts.NewRedisStore(redisClient, cfg.Drafts.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft store", err)
		os.Exit(1)
	}

	draftService, err := drafts.NewService(draftStore, catalogService, customerService, matrixProvider, pricingMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft service", err)
		os.Exit(1)
	}

	quoteService, err := quotes.NewService(quotes.NewRepository(dbClient.DB()), dbClient, draftService, cfg.Quotes, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			catalogService,
			customerService,
			draftService,
			quoteService,
			httpMetrics,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
