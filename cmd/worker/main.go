// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-be/internal/adapters/docstore"
	redis_a "github.com/ammerola/warehouse-be/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse-be/internal/adapters/tabular"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/services"
	"github.com/ammerola/warehouse-be/internal/pkg/config"
	"github.com/ammerola/warehouse-be/internal/pkg/logger"
	"github.com/ammerola/warehouse-be/internal/workers"
)

func main() {
	if err := run(); err != nil {
		slog.Error("worker exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	boot := logger.SetupLogger("info", "json")
	cfg, err := config.Load(boot.Logger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logs := logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	defer logs.Close()
	log := logs.With(slog.String("process", "worker"))
	log.Info("worker starting",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr),
		slog.String("documents_driver", cfg.Documents.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the worker needs a smaller pool than the API
	documents, err := docstore.Open(ctx, cfg, docstore.Options{MaxConnections: 10}, log)
	if err != nil {
		return err
	}
	defer documents.Close()

	redisClient, err := redis_a.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, log)
	cacheManager := redis_a.NewCacheManager(cache, log)

	// low stock alerts raised while importing go through the same queue
	asynqClient := asynq.NewClient(workers.RedisOpt(cfg.Asynq))
	defer asynqClient.Close()

	store := documents.Store
	locations := domain.NewLocationScheme(cfg.Inventory.LocationPrefixes)
	inventory := services.NewInventoryService(store, locations, workers.NewEnqueuer(asynqClient), log)
	imports := services.NewImportService(
		store,
		inventory,
		services.NewSupplierService(store, nil, log),
		tabular.NewParser(int64(cfg.FileProcessing.ImportMaxSizeMB)<<20),
		locations,
		log,
	)
	dashboard := services.NewDashboardService(store, cache, cfg.Inventory.OverstockThreshold, cfg.Inventory.DashboardCacheTTL, log)

	mux := asynq.NewServeMux()
	mux.Use(workers.WithTaskType)

	importer := workers.NewImportProcessor(imports, redis_a.NewJobTracker(cache, redis_a.DefaultJobTTL), log)
	mux.HandleFunc(workers.TypeInventoryImport, func(ctx context.Context, t *asynq.Task) error {
		err := importer.ProcessImport(ctx, t)
		// rows may have been written even when the import failed
		cacheManager.InvalidateInventoryCache(ctx)
		cacheManager.InvalidateSupplierCache(ctx)
		return err
	})
	mux.HandleFunc(workers.TypeLowStockAlert, workers.NewNotificationProcessor(cfg.Notifications, log).SendLowStockAlert)
	mux.HandleFunc(workers.TypeDashboardRefresh, workers.NewDashboardProcessor(dashboard, log).RefreshStats)
	mux.HandleFunc(workers.TypeCleanupTempFiles,
		workers.NewCleanupProcessor(cfg.FileProcessing.TempDir, cfg.FileProcessing.TempFileMaxAge, log).CleanupTempFiles)

	scheduler := workers.NewScheduler(cfg.Asynq, log)
	if err := workers.Schedule(scheduler, cfg.Inventory, cfg.FileProcessing); err != nil {
		return err
	}

	srv := workers.NewServer(cfg.Asynq, log)
	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("failed to start task server: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	log.Info("worker ready",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	<-ctx.Done()
	log.Info("worker stopping")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info("worker stopped")
	return nil
}
