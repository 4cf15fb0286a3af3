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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/yukselticaret/trendyshop-backend/api/controllers"
	"github.com/yukselticaret/trendyshop-backend/api/routes"
	"github.com/yukselticaret/trendyshop-backend/internal/cart"
	product "github.com/yukselticaret/trendyshop-backend/internal/products"
	"github.com/yukselticaret/trendyshop-backend/internal/tiers"
	"github.com/yukselticaret/trendyshop-backend/pkg/config"
	"github.com/yukselticaret/trendyshop-backend/pkg/db"
	"github.com/yukselticaret/trendyshop-backend/pkg/env"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
	"github.com/yukselticaret/trendyshop-backend/pkg/metrics"
	"github.com/yukselticaret/trendyshop-backend/pkg/migrate"
	"github.com/yukselticaret/trendyshop-backend/pkg/notify"
	"github.com/yukselticaret/trendyshop-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pricingMetrics := metrics.NewPricingMetrics(registry)

	readiness := map[string]controllers.Pinger{"database": dbClient}

	tierRepo := tiers.NewRepository(dbClient.DB())
	var tierReader tiers.Reader = tierRepo
	var tierCache *tiers.CachedReader

	if cfg.FeatureFlags.TierCache && cfg.Redis.Enabled() {
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
		tierCache = tiers.NewCachedReader(tierRepo, redisClient, cfg.Pricing.TierCacheTTL, logg, pricingMetrics)
		tierReader = tierCache
		readiness["redis"] = redisClient
	} else {
		logg.Info(context.Background(), "tier cache disabled, reading tiers from database")
	}

	notifier := notify.NewSink(logg)

	productService, err := product.NewService(product.NewRepository(dbClient.DB()), tierReader, pricingMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(
		cart.NewRepository(dbClient.DB()),
		product.NewRepository(dbClient.DB()),
		tierReader,
		notifier,
		pricingMetrics,
		logg,
		cart.Options{MaxQuantity: cfg.Pricing.MaxCartQty},
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	tierService, err := tiers.NewService(tierRepo, dbClient, tierCache, notifier, pricingMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create tier service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": env.Instance(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			readiness,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			productService,
			cartService,
			tierService,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(sigCtx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
