// internal/adapters/docstore/open.go
package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/warehouse-be/internal/adapters/db"
	"github.com/ammerola/warehouse-be/internal/adapters/memory"
	"github.com/ammerola/warehouse-be/internal/adapters/mongo"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/pkg/config"
)

// Options tunes the connection for the calling process
type Options struct {
	// MaxConnections overrides the configured pool size when positive
	MaxConnections int32
	// Migrate applies the embedded schema before returning a postgres store
	Migrate bool
}

// Store is a document store that can report its connectivity
type Store interface {
	ports.DocumentStore
	ports.HealthPinger
}

// Handle is an open document store and the function that releases it
type Handle struct {
	Store  Store
	Driver string
	close  func()
}

// Close releases the underlying connection
func (h *Handle) Close() {
	if h.close != nil {
		h.close()
	}
}

// Open connects the document store selected by cfg.Documents.Driver
func Open(ctx context.Context, cfg *config.Config, opts Options, logger *slog.Logger) (*Handle, error) {
	logger.Info("opening document store", slog.String("driver", cfg.Documents.Driver))

	switch cfg.Documents.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, opts, logger)

	case config.DriverMongo:
		client, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		return &Handle{
			Store:  mongo.NewDocumentStore(client, cfg.Mongo.Database, logger),
			Driver: config.DriverMongo,
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(ctx); err != nil {
					logger.Warn("failed to disconnect mongo", slog.String("error", err.Error()))
				}
			},
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory document store, data is lost on exit")
		return &Handle{
			Store:  memory.NewDocumentStore(logger),
			Driver: config.DriverMemory,
		}, nil

	default:
		return nil, fmt.Errorf("unknown documents driver %q", cfg.Documents.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, opts Options, logger *slog.Logger) (*Handle, error) {
	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name))

	if opts.Migrate {
		err := db.Migrate(ctx, db.MigrationConfig{
			DatabaseURL: cfg.Database.URL(),
			Attempts:    3,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	dbCfg := cfg.Database
	if opts.MaxConnections > 0 {
		dbCfg.MaxConnections = opts.MaxConnections
		dbCfg.MinConnections = min(dbCfg.MinConnections, opts.MaxConnections)
	}

	database, err := db.Open(ctx, dbCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Handle{
		Store:  db.NewDocumentStore(database, logger),
		Driver: config.DriverPostgres,
		close:  database.Close,
	}, nil
}
