package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/propdock/propdock-backend/internal/compliance"
	"github.com/propdock/propdock-backend/internal/cron"
	"github.com/propdock/propdock-backend/internal/inspections"
	"github.com/propdock/propdock-backend/internal/quotations"
	"github.com/propdock/propdock-backend/pkg/config"
	"github.com/propdock/propdock-backend/pkg/db"
	"github.com/propdock/propdock-backend/pkg/logger"
	"github.com/propdock/propdock-backend/pkg/metrics"
	"github.com/propdock/propdock-backend/pkg/migrate"
	"github.com/propdock/propdock-backend/pkg/redis"
)

const lockKeyFormat = "propdock:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	complianceJob, err := cron.NewComplianceExpiryJob(cron.ComplianceExpiryJobParams{
		Logger:     logg,
		Repository: compliance.NewRepository(dbClient.DB()),
		NoticeDays: cfg.Cron.ComplianceNoticeDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create compliance expiry job", err)
		os.Exit(1)
	}

	inspectionJob, err := cron.NewInspectionOverdueJob(cron.InspectionOverdueJobParams{
		Logger:     logg,
		Repository: inspections.NewRepository(dbClient.DB()),
		GraceHours: cfg.Cron.InspectionGraceDays * 24,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inspection overdue job", err)
		os.Exit(1)
	}

	quotationJob, err := cron.NewQuotationStaleJob(cron.QuotationStaleJobParams{
		Logger:     logg,
		Repository: quotations.NewRepository(dbClient.DB()),
		StaleDays:  cfg.Cron.QuotationStaleDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quotation stale job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(complianceJob, inspectionJob, quotationJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	go serveMetrics(ctx, logg, cfg.Cron.MetricsPort)

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func serveMetrics(ctx context.Context, logg *logger.Logger, port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: ":" + port, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "metrics server stopped unexpectedly", err)
	}
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
