// internal/adapters/db/postgres.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/ammerola/warehouse-be/internal/pkg/config"
)

// Database is a pgx connection pool holding the documents table
type Database struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open connects a pool and verifies it with a ping
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Database, error) {
	logger = logger.With(slog.String("component", "postgres"))

	pc, err := poolConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Name, err)
	}

	logger.Info("database pool ready",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Name),
		slog.Int("max_conns", int(pc.MaxConns)))

	return &Database{pool: pool, logger: logger}, nil
}

func poolConfig(cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	if cfg.MaxConnections > 0 {
		pc.MaxConns = cfg.MaxConnections
	}
	if cfg.MinConnections > 0 {
		pc.MinConns = min(cfg.MinConnections, pc.MaxConns)
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.HealthCheckPeriod > 0 {
		pc.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.ConnectTimeout > 0 {
		pc.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	mode, err := queryExecMode(cfg.StatementCacheMode)
	if err != nil {
		return nil, err
	}
	pc.ConnConfig.DefaultQueryExecMode = mode

	if cfg.EnableQueryLogging {
		pc.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   tracelog.LoggerFunc(pgxLog(logger)),
			LogLevel: tracelog.LogLevelDebug,
		}
	}
	return pc, nil
}

// queryExecMode maps the statement cache setting. "exec" is required behind
// pgbouncer in transaction pooling mode.
func queryExecMode(name string) (pgx.QueryExecMode, error) {
	switch name {
	case "", "describe":
		return pgx.QueryExecModeCacheDescribe, nil
	case "prepare":
		return pgx.QueryExecModeCacheStatement, nil
	case "exec":
		return pgx.QueryExecModeExec, nil
	default:
		return 0, fmt.Errorf("unknown statement cache mode %q", name)
	}
}

func pgxLog(logger *slog.Logger) func(context.Context, tracelog.LogLevel, string, map[string]any) {
	levels := map[tracelog.LogLevel]slog.Level{
		tracelog.LogLevelError: slog.LevelError,
		tracelog.LogLevelWarn:  slog.LevelWarn,
		tracelog.LogLevelInfo:  slog.LevelInfo,
	}
	return func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		lvl, ok := levels[level]
		if !ok {
			lvl = slog.LevelDebug
		}
		attrs := make([]slog.Attr, 0, len(data))
		for k, v := range data {
			attrs = append(attrs, slog.Any(k, v))
		}
		logger.LogAttrs(ctx, lvl, msg, attrs...)
	}
}

// Close releases every pooled connection
func (db *Database) Close() {
	db.pool.Close()
	db.logger.Info("database pool closed")
}

// Ping checks that a connection can be acquired and used
func (db *Database) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Health reports pool statistics
func (db *Database) Health(context.Context) map[string]any {
	s := db.pool.Stat()
	return map[string]any{
		"total_conns":    s.TotalConns(),
		"idle_conns":     s.IdleConns(),
		"acquired_conns": s.AcquiredConns(),
		"max_conns":      s.MaxConns(),
		"wait_ms":        s.AcquireDuration().Milliseconds(),
	}
}

// Transaction runs fn in a transaction, committing when fn returns nil
func (db *Database) Transaction(ctx context.Context, fn func(pgx.Tx) error) error {
	return pgx.BeginTxFunc(ctx, db.pool, pgx.TxOptions{}, fn)
}

// Query runs a statement returning rows
func (db *Database) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return db.pool.Query(ctx, sql, args...)
}

// QueryRow runs a statement returning at most one row
func (db *Database) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return db.pool.QueryRow(ctx, sql, args...)
}

// Exec runs a statement without rows
func (db *Database) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return db.pool.Exec(ctx, sql, args...)
}

// waitForDatabase retries fn with linear backoff until it succeeds, ctx ends
// or attempts run out
func waitForDatabase(ctx context.Context, attempts int, logger *slog.Logger, fn func() error) error {
	var errs []error
	for i := range max(attempts, 1) {
		if i > 0 {
			wait := time.Duration(i) * 2 * time.Second
			logger.InfoContext(ctx, "retrying database operation",
				slog.Int("attempt", i+1),
				slog.Duration("wait", wait))
			select {
			case <-ctx.Done():
				return errors.Join(append(errs, ctx.Err())...)
			case <-time.After(wait):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		logger.WarnContext(ctx, "database operation failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	return fmt.Errorf("gave up after %d attempts: %w", len(errs), errs[len(errs)-1])
}
