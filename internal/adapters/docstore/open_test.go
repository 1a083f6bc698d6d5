// internal/adapters/docstore/open_test.go
package docstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-be/internal/adapters/docstore"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/pkg/config"
	"github.com/ammerola/warehouse-be/test/helpers"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory_driver", func(t *testing.T) {
		cfg := helpers.LoadTestConfig()
		cfg.Documents.Driver = config.DriverMemory

		handle, err := docstore.Open(ctx, cfg, docstore.Options{}, helpers.TestLogger())
		require.NoError(t, err)
		defer handle.Close()

		assert.Equal(t, config.DriverMemory, handle.Driver)
		require.NoError(t, handle.Store.Ping(ctx))

		require.NoError(t, handle.Store.SetOne(ctx, ports.CollectionInventory, "INV-001", ports.Document{"name": "Pallet Wrap"}))
		doc, err := handle.Store.GetOne(ctx, ports.CollectionInventory, "INV-001")
		require.NoError(t, err)
		assert.Equal(t, "Pallet Wrap", doc["name"])
	})

	t.Run("unknown_driver", func(t *testing.T) {
		cfg := helpers.LoadTestConfig()
		cfg.Documents.Driver = "sqlite"

		handle, err := docstore.Open(ctx, cfg, docstore.Options{}, helpers.TestLogger())
		require.Error(t, err)
		assert.Nil(t, handle)
		assert.Contains(t, err.Error(), "sqlite")
	})
}
