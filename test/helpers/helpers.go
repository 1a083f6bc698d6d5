// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-be/internal/adapters/db"
	"github.com/ammerola/warehouse-be/internal/adapters/memory"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/pkg/config"
)

// TestDB is a migrated postgres container
type TestDB struct {
	Database *db.Database
	Store    *db.DocumentStore
	Config   config.DatabaseConfig
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB starts postgres in docker, applies the schema and returns a
// document store over it. The container is purged when t ends.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "docker unavailable")
	pool.MaxWait = 90 * time.Second

	container, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env:        []string{"POSTGRES_USER=warehouse", "POSTGRES_PASSWORD=warehouse", "POSTGRES_DB=warehouse_test"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "postgres container failed to start")
	t.Cleanup(func() { _ = pool.Purge(container) })

	cfg := config.DatabaseConfig{
		Host:               "localhost",
		Port:               container.GetPort("5432/tcp"),
		User:               "warehouse",
		Password:           "warehouse",
		Name:               "warehouse_test",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		ConnectTimeout:     5 * time.Second,
		EnableQueryLogging: testing.Verbose(),
	}

	ctx := context.Background()
	var database *db.Database
	require.NoError(t, pool.Retry(func() error {
		var err error
		database, err = db.Open(ctx, cfg, TestLogger())
		return err
	}), "postgres never became reachable")
	t.Cleanup(database.Close)

	require.NoError(t, db.Migrate(ctx, db.MigrationConfig{DatabaseURL: cfg.URL(), Attempts: 3}, TestLogger()))

	return &TestDB{
		Database: database,
		Store:    db.NewDocumentStore(database, TestLogger()),
		Config:   cfg,
	}
}

// TruncateDocuments empties the documents table between tests
func TruncateDocuments(t *testing.T, database *db.Database) {
	t.Helper()
	_, err := database.Exec(context.Background(), "TRUNCATE TABLE documents")
	require.NoError(t, err)
}

// SetupTestRedis creates an in-process Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// NewMemoryStore returns an empty in-memory document store
func NewMemoryStore(t *testing.T) *memory.DocumentStore {
	t.Helper()
	return memory.NewDocumentStore(TestLogger())
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
		},
		Documents: config.DocumentsConfig{
			Driver: config.DriverMemory,
		},
		Database: config.DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "test",
			Password:       "test",
			Name:           "test_warehouse",
			SSLMode:        "disable",
			MaxConnections: 10,
			MinConnections: 2,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			PoolSize: 10,
			TTL:      5 * time.Minute,
		},
		FileProcessing: config.FileProcessingConfig{
			ImportMaxSizeMB:   5,
			PhotoMaxSizeMB:    5,
			ImageMaxDimension: 1024,
			ProcessingTimeout: 30 * time.Second,
			TempDir:           os.TempDir(),
			TempFileMaxAge:    24 * time.Hour,
			CleanupInterval:   time.Hour,
		},
		Inventory: config.InventoryConfig{
			OverstockThreshold: domain.DefaultOverstockThreshold,
			LocationPrefixes:   map[string]string{},
			DashboardCacheTTL:  time.Minute,
			DashboardRefresh:   5 * time.Minute,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 1000,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
		},
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 5 * time.Second,
		},
	}
}

// CreateTestInventoryItem creates a stored-shape inventory item with defaults
func CreateTestInventoryItem(overrides ...func(*domain.InventoryItem)) *domain.InventoryItem {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	item := &domain.InventoryItem{
		ID:                "INV-001",
		Name:              "USB-C Cable",
		Category:          "Electronics",
		Subcategory:       "Cables",
		Quantity:          25,
		Location:          "E-01",
		Brand:             "Anker",
		PricePerPiece:     decimal.RequireFromString("9.99"),
		QuantityPurchased: 25,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	for _, override := range overrides {
		override(item)
	}

	item.RefreshStatus()
	return item
}

// CreateTestInventoryItems creates count items with sequential ids and locations
func CreateTestInventoryItems(count int) []*domain.InventoryItem {
	items := make([]*domain.InventoryItem, count)
	for i := 0; i < count; i++ {
		n := i + 1
		items[i] = CreateTestInventoryItem(func(item *domain.InventoryItem) {
			item.ID = fmt.Sprintf("INV-%03d", n)
			item.Name = fmt.Sprintf("Test Item %d", n)
			item.Location = fmt.Sprintf("E-%02d", n)
			item.Quantity = n * 3
		})
	}
	return items
}

// CreateTestSupplier creates a supplier with defaults
func CreateTestSupplier(overrides ...func(*domain.Supplier)) *domain.Supplier {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	supplier := &domain.Supplier{
		ID:        "SUP-001",
		Name:      "Acme Components",
		Contact:   "Jane Roe",
		Email:     "orders@acme.example",
		Category:  "Electronics",
		Status:    domain.SupplierActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, override := range overrides {
		override(supplier)
	}
	return supplier
}

// SeedItems writes items straight into a store
func SeedItems(t *testing.T, store ports.DocumentStore, items ...*domain.InventoryItem) {
	t.Helper()
	for _, item := range items {
		err := store.SetOne(context.Background(), ports.CollectionInventory, item.ID, item.Fields())
		require.NoError(t, err, "Failed to seed item %s", item.ID)
	}
}

// SeedSuppliers writes suppliers straight into a store
func SeedSuppliers(t *testing.T, store ports.DocumentStore, suppliers ...*domain.Supplier) {
	t.Helper()
	for _, supplier := range suppliers {
		err := store.SetOne(context.Background(), ports.CollectionSuppliers, supplier.ID, supplier.Fields())
		require.NoError(t, err, "Failed to seed supplier %s", supplier.ID)
	}
}

// LoadItem reads an item back from a store, failing the test if absent
func LoadItem(t *testing.T, store ports.DocumentStore, id string) *domain.InventoryItem {
	t.Helper()
	doc, err := store.GetOne(context.Background(), ports.CollectionInventory, id)
	require.NoError(t, err)
	require.NotNil(t, doc, "item %s not found", id)
	item, err := domain.DecodeInventoryItem(doc)
	require.NoError(t, err)
	return item
}

// AssertEventuallyWithTimeout asserts that a condition is eventually true
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()
	require.Eventually(t, condition, timeout, 10*time.Millisecond, msg)
}

// CreateTempFile creates a temporary file with content
func CreateTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600), "Failed to write temp file")

	return path
}
