// internal/adapters/redis_adapter/client.go
package redis_a

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/warehouse-be/internal/pkg/config"
)

// NewClient connects to redis and verifies the connection with a ping. The
// client is closed when the ping fails.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxLifetime: cfg.MaxConnAge,
		ConnMaxIdleTime: cfg.IdleTimeout,
		PoolTimeout:     cfg.PoolTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.Info("redis connected",
		slog.String("component", "redis"),
		slog.String("addr", addr),
		slog.Int("db", cfg.DB),
		slog.Int("pool_size", cfg.PoolSize))
	return client, nil
}
