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

	"github.com/clementech/checkout-be/internal/adapters/db"
	"github.com/clementech/checkout-be/internal/adapters/filestore"
	"github.com/clementech/checkout-be/internal/core/domain"
)

// TestDB represents a test database instance
type TestDB struct {
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// FileRepos bundles the file-backed repositories rooted in a temp dir.
type FileRepos struct {
	Catalog  *filestore.CatalogRepository
	Bills    *filestore.BillRepository
	Receipts *filestore.ReceiptWriter
	Dir      string
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

// NewFileRepos creates file-backed repositories under a per-test temp dir
func NewFileRepos(t *testing.T) *FileRepos {
	t.Helper()

	dir := t.TempDir()
	logger := TestLogger()
	return &FileRepos{
		Catalog:  filestore.NewCatalogRepository(filepath.Join(dir, "items.json"), logger),
		Bills:    filestore.NewBillRepository(filepath.Join(dir, "bills.json"), logger),
		Receipts: filestore.NewReceiptWriter(filepath.Join(dir, "bills"), logger),
		Dir:      dir,
	}
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_checkout",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_checkout",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	databaseURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
		dbConfig.Database, dbConfig.SSLMode)
	err = db.RunMigrations(context.Background(), databaseURL, TestLogger())
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// TruncateAllTables clears every table between tests
func TruncateAllTables(t *testing.T, database *db.Database) {
	t.Helper()

	ctx := context.Background()
	for _, table := range []string{"bill_lines", "bills", "items"} {
		_, err := database.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate %s", table)
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// CreateTestItem creates a test catalog item
func CreateTestItem(overrides ...func(*domain.Item)) *domain.Item {
	bought := time.Now().AddDate(0, -1, 0)
	item := &domain.Item{
		ItemID:             "A1",
		Name:               "Nokia 3310",
		Brand:              "Nokia",
		PurchasePrice:      decimal.NewFromFloat(70.00),
		SellingPrice:       decimal.NewFromFloat(100.00),
		StockQuantity:      10,
		DiscountPercentage: decimal.Zero,
		Sector:             domain.SectorPhones,
		SupplierName:       "Nokia Distribution",
		DateBought:         &bought,
		LowStockThreshold:  domain.DefaultLowStockThreshold,
	}

	for _, override := range overrides {
		override(item)
	}

	return item
}

// CreateTestItems creates multiple distinct test catalog items
func CreateTestItems(count int) []domain.Item {
	sectors := []domain.Sector{
		domain.SectorPhones,
		domain.SectorLaptops,
		domain.SectorTablets,
		domain.SectorTVs,
		domain.SectorHousehold,
		domain.SectorAccessories,
	}

	items := make([]domain.Item, count)
	for i := 0; i < count; i++ {
		items[i] = *CreateTestItem(func(item *domain.Item) {
			item.ItemID = fmt.Sprintf("A%d", i+1)
			item.Name = fmt.Sprintf("Test Item %d", i+1)
			item.Sector = sectors[i%len(sectors)]
			item.SellingPrice = decimal.NewFromInt(int64(100 + i*50))
			item.StockQuantity = 5 + i
		})
	}

	return items
}

// CreateTestBill creates a committed bill holding one unit of each item
func CreateTestBill(number int64, items ...domain.Item) *domain.Bill {
	bill, err := domain.NewBill(number, "Test Buyer", "tester")
	if err != nil {
		panic(err)
	}
	for i := range items {
		bill.AppendUnit(&items[i])
	}
	return bill
}

// RequireMoneyEqual fails the test unless the two decimals are equal.
func RequireMoneyEqual(t *testing.T, expected, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.True(t, expected.Equal(actual),
		"expected %s, got %s %v", expected.String(), actual.String(), msgAndArgs)
}
