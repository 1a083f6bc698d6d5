// internal/adapters/db/migrations.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var schema embed.FS

// MigrationConfig controls how the embedded schema is applied
type MigrationConfig struct {
	DatabaseURL string
	// Attempts bounds connection retries while the database starts up
	Attempts int
	// ForceDirty clears a dirty flag left by a crashed migration before
	// retrying it
	ForceDirty       bool
	StatementTimeout time.Duration
}

// Migrate brings the documents schema up to date. It is safe to call on
// every start.
func Migrate(ctx context.Context, cfg MigrationConfig, logger *slog.Logger) error {
	logger = logger.With(slog.String("component", "migrator"))
	if cfg.StatementTimeout == 0 {
		cfg.StatementTimeout = 10 * time.Minute
	}

	var m *migrate.Migrate
	err := waitForDatabase(ctx, cfg.Attempts, logger, func() error {
		var err error
		m, err = newMigrate(ctx, cfg)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.WarnContext(ctx, "failed to close migrator", slog.Any("error", errors.Join(srcErr, dbErr)))
		}
	}()

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		if !cfg.ForceDirty {
			return fmt.Errorf("schema version %d is dirty", from)
		}
		logger.WarnContext(ctx, "forcing dirty schema version", slog.Uint64("version", uint64(from)))
		if err := m.Force(int(from)); err != nil {
			return fmt.Errorf("failed to force schema version %d: %w", from, err)
		}
	}

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.InfoContext(ctx, "schema up to date", slog.Uint64("version", uint64(from)))
		return nil
	case err != nil:
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	to, _, _ := m.Version()
	logger.InfoContext(ctx, "schema migrated",
		slog.Uint64("from", uint64(from)),
		slog.Uint64("to", uint64(to)))
	return nil
}

func newMigrate(ctx context.Context, cfg MigrationConfig) (*migrate.Migrate, error) {
	conn, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{StatementTimeout: cfg.StatementTimeout})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	src, err := iofs.New(schema, "migrations")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}
