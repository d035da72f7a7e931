package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/propdock/propdock-backend/api/routes"
	"github.com/propdock/propdock-backend/internal/compliance"
	"github.com/propdock/propdock-backend/internal/inspections"
	"github.com/propdock/propdock-backend/internal/maintenance"
	"github.com/propdock/propdock-backend/internal/pricing"
	"github.com/propdock/propdock-backend/internal/properties"
	"github.com/propdock/propdock-backend/internal/quotations"
	"github.com/propdock/propdock-backend/internal/tenancies"
	"github.com/propdock/propdock-backend/pkg/config"
	"github.com/propdock/propdock-backend/pkg/db"
	"github.com/propdock/propdock-backend/pkg/logger"
	"github.com/propdock/propdock-backend/pkg/migrate"
	"github.com/propdock/propdock-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
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

	pricingService, err := pricing.NewService(pricing.ServiceParams{
		Repo:           pricing.NewRepository(dbClient.DB()),
		Cache:          pricing.NewCatalogCache(redisClient, logg, cfg.Pricing.CatalogTTL),
		Logger:         logg,
		MasterCurrency: cfg.Pricing.MasterCurrency,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	quotationsRepo := quotations.NewRepository(dbClient.DB())
	quotationsService, err := quotations.NewService(quotations.ServiceParams{
		Repo:   quotationsRepo,
		Tx:     dbClient,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quotations service", err)
		os.Exit(1)
	}

	propertiesService, err := properties.NewService(properties.ServiceParams{
		Repo: properties.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create properties service", err)
		os.Exit(1)
	}

	tenanciesService, err := tenancies.NewService(tenancies.ServiceParams{
		Repo: tenancies.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create tenancies service", err)
		os.Exit(1)
	}

	inspectionsService, err := inspections.NewService(inspections.ServiceParams{
		Repo: inspections.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inspections service", err)
		os.Exit(1)
	}

	complianceService, err := compliance.NewService(compliance.ServiceParams{
		Repo: compliance.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create compliance service", err)
		os.Exit(1)
	}

	maintenanceService, err := maintenance.NewService(maintenance.ServiceParams{
		Repo: maintenance.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create maintenance service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			pricingService,
			quotationsService,
			propertiesService,
			tenanciesService,
			inspectionsService,
			complianceService,
			maintenanceService,
			quotationsRepo,
		),
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
	}
}
