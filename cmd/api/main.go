// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/warehouse-be/internal/adapters/docstore"
	"github.com/ammerola/warehouse-be/internal/adapters/imaging"
	redis_a "github.com/ammerola/warehouse-be/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse-be/internal/adapters/storage"
	"github.com/ammerola/warehouse-be/internal/adapters/tabular"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/core/services"
	"github.com/ammerola/warehouse-be/internal/handlers"
	"github.com/ammerola/warehouse-be/internal/handlers/middleware"
	"github.com/ammerola/warehouse-be/internal/pkg/config"
	"github.com/ammerola/warehouse-be/internal/pkg/logger"
	"github.com/ammerola/warehouse-be/internal/workers"
)

// Set with -ldflags "-X main.version=..."
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	boot := logger.SetupLogger("debug", "json")
	boot.Info("warehouse api starting",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("go_version", runtime.Version()))

	cfg, err := config.Load(boot.Logger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.App.Version == "dev" {
		cfg.App.Version = version
	}

	logs := logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	defer logs.Close()
	log := logs.With(slog.String("process", "api"))
	log.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("documents_driver", cfg.Documents.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := initializeDependencies(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, log)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server listening",
			slog.String("addr", server.Addr),
			slog.Bool("tls", cfg.Server.TLSEnabled))
		if cfg.Server.TLSEnabled {
			serveErr <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
			return
		}
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("grace", cfg.Server.GracefulTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		_ = server.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("http server stopped")
	return nil
}

type dependencies struct {
	documents   *docstore.Handle
	redisClient *redis.Client
	asynqClient *asynq.Client
	inspector   *asynq.Inspector
	localPhotos *storage.LocalStorage
	router      *handlers.Router
}

// cleanup closes in reverse order of opening
func (d *dependencies) cleanup() {
	closers := []func(){}
	if d.documents != nil {
		closers = append(closers, d.documents.Close)
	}
	if d.redisClient != nil {
		closers = append(closers, func() { _ = d.redisClient.Close() })
	}
	if d.asynqClient != nil {
		closers = append(closers, func() { _ = d.asynqClient.Close() })
	}
	if d.inspector != nil {
		closers = append(closers, func() { _ = d.inspector.Close() })
	}
	for _, c := range slices.Backward(closers) {
		c()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *dependencies, err error) {
	deps := &dependencies{}
	defer func() {
		if err != nil {
			deps.cleanup()
		}
	}()

	deps.documents, err = docstore.Open(ctx, cfg, docstore.Options{
		Migrate: cfg.Database.RunMigrations && !cfg.IsProduction(),
	}, logger)
	if err != nil {
		return nil, err
	}
	store := deps.documents.Store

	deps.redisClient, err = redis_a.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, err
	}
	redisClient := deps.redisClient

	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)
	cacheManager := redis_a.NewCacheManager(cache, logger)
	jobTracker := redis_a.NewJobTracker(cache, redis_a.DefaultJobTTL)

	deps.asynqClient = asynq.NewClient(workers.RedisOpt(cfg.Asynq))
	deps.inspector = asynq.NewInspector(workers.RedisOpt(cfg.Asynq))
	enqueuer := workers.NewEnqueuer(deps.asynqClient)

	photoStorage, storagePinger, err := initPhotoStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if local, ok := photoStorage.(*storage.LocalStorage); ok {
		deps.localPhotos = local
	}

	locations := domain.NewLocationScheme(cfg.Inventory.LocationPrefixes)
	validate := services.NewValidator()

	inventoryService := services.NewInventoryService(store, locations, enqueuer, logger)
	supplierService := services.NewSupplierService(store, validate, logger)
	categoryService := services.NewCategoryService(store, logger)
	if _, err := categoryService.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	orderService := services.NewOrderService(store, validate, logger)
	bulkCoordinator := services.NewBulkCoordinator(store, logger)
	dashboardService := services.NewDashboardService(
		store, cache, cfg.Inventory.OverstockThreshold, cfg.Inventory.DashboardCacheTTL, logger)

	maxImportSize := int64(cfg.FileProcessing.ImportMaxSizeMB) << 20
	maxPhotoSize := int64(cfg.FileProcessing.PhotoMaxSizeMB) << 20

	importService := services.NewImportService(
		store,
		inventoryService,
		supplierService,
		tabular.NewParser(maxImportSize),
		locations,
		logger,
	)
	photoService := services.NewPhotoService(
		inventoryService,
		photoStorage,
		imaging.NewProcessor(cfg.FileProcessing.ImageMaxDimension, maxPhotoSize),
		logger,
	)

	deps.router = &handlers.Router{
		Inventory:  handlers.NewInventoryHandler(inventoryService, bulkCoordinator, cache, cacheManager, logger),
		Suppliers:  handlers.NewSupplierHandler(supplierService, cacheManager, logger),
		Categories: handlers.NewCategoryHandler(categoryService, logger),
		Orders:     handlers.NewOrderHandler(orderService, cacheManager, logger),
		Photos:     handlers.NewPhotoHandler(photoService, cacheManager, maxPhotoSize, logger),
		Imports: handlers.NewImportHandler(
			importService,
			jobTracker,
			enqueuer,
			cacheManager,
			logger,
			maxImportSize,
			cfg.FileProcessing.TempDir,
		),
		Exports:   handlers.NewExportHandler(inventoryService, logger),
		Dashboard: handlers.NewDashboardHandler(dashboardService, logger),
		Health: handlers.NewHealthHandler(
			store,
			storagePinger,
			redisClient,
			deps.inspector,
			cfg,
			logger,
		),
	}

	logger.Info("dependencies ready")
	return deps, nil
}

// initPhotoStorage uses S3 when a bucket is configured and the local disk
// otherwise. The pinger is nil for local storage.
func initPhotoStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ObjectStorage, ports.HealthPinger, error) {
	if cfg.AWS.S3Bucket == "" {
		logger.Info("storing photos on local disk", slog.String("dir", cfg.FileProcessing.PhotoDir))
		local, err := storage.NewLocalStorage(cfg.FileProcessing.PhotoDir, cfg.FileProcessing.PhotoBaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return local, nil, nil
	}

	logger.Info("storing photos in S3", slog.String("bucket", cfg.AWS.S3Bucket))
	s3, err := storage.NewS3Storage(ctx, cfg.AWS, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
	}
	return s3, s3, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps, cfg)

	// First middleware runs outermost
	chain := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		chain = append(chain, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.SecureHeaders {
		chain = append(chain, middleware.SecureHeaders)
	}
	if cfg.Security.RateLimitRequests > 0 {
		chain = append(chain, middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration))
	}
	chain = append(chain, middleware.Compression)
	if cfg.FileProcessing.ProcessingTimeout > 0 {
		chain = append(chain, middleware.Timeout(cfg.FileProcessing.ProcessingTimeout))
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        middleware.Chain(mux, chain...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	router := deps.router
	if !cfg.Server.EnableHealthCheck {
		router.Health = nil
	}
	if deps.localPhotos != nil {
		router.PhotoFiles = http.FileServer(http.Dir(deps.localPhotos.Root()))
		router.PhotoPrefix = cfg.FileProcessing.PhotoBaseURL
	}
	router.Register(mux)

	if cfg.Server.EnablePprof && cfg.IsDevelopment() {
		mux.HandleFunc("GET /debug/pprof/", pprof.Index)
		mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	}
}
