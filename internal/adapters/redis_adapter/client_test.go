// internal/adapters/redis_adapter/client_test.go
package redis_a_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/warehouse-be/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse-be/internal/pkg/config"
	"github.com/ammerola/warehouse-be/test/helpers"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	t.Run("connects", func(t *testing.T) {
		client, err := redis_a.NewClient(context.Background(), config.RedisConfig{
			Host:     host,
			Port:     port,
			PoolSize: 2,
		}, helpers.TestLogger())
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		require.NoError(t, client.Set(context.Background(), "warehouse", "ok", 0).Err())
		got, err := mr.Get("warehouse")
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
	})

	t.Run("wrong_password", func(t *testing.T) {
		mr.RequireAuth("s3cret")

		_, err := redis_a.NewClient(context.Background(), config.RedisConfig{
			Host:        host,
			Port:        port,
			Password:    "nope",
			DialTimeout: time.Second,
		}, helpers.TestLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to redis")
	})
}
