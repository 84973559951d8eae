// cmd/seeder/main.go

// Command seeder fills the configured storage backend with a sample
// catalog for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clementech/checkout-be/internal/adapters/db"
	"github.com/clementech/checkout-be/internal/adapters/filestore"
	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/ports"
	"github.com/clementech/checkout-be/internal/pkg/config"
	"github.com/clementech/checkout-be/internal/pkg/logger"
)

type template struct {
	prefix string
	name   string
	brand  string
	sector domain.Sector
	price  float64
}

var templates = []template{
	{"PH", "Smartphone", "Nokia", domain.SectorPhones, 299.99},
	{"PH", "Smartphone", "Samsung", domain.SectorPhones, 549.00},
	{"LP", "Laptop", "Lenovo", domain.SectorLaptops, 899.99},
	{"LP", "Laptop", "Dell", domain.SectorLaptops, 1199.00},
	{"TB", "Tablet", "Apple", domain.SectorTablets, 649.00},
	{"TV", "Television 55\"", "LG", domain.SectorTVs, 749.50},
	{"TV", "Television 43\"", "Sony", domain.SectorTVs, 529.00},
	{"HH", "Vacuum Cleaner", "Bosch", domain.SectorHousehold, 189.90},
	{"HH", "Coffee Machine", "DeLonghi", domain.SectorHousehold, 249.00},
	{"AC", "Wireless Earbuds", "JBL", domain.SectorAccessories, 79.99},
	{"AC", "Phone Case", "Spigen", domain.SectorAccessories, 19.99},
}

func main() {
	var (
		count = flag.Int("count", 50, "number of items to generate")
		reset = flag.Bool("reset", false, "replace the existing catalog instead of appending")
		seed  = flag.Int64("seed", 0, "random seed, 0 uses current time")
	)
	flag.Parse()

	slogger := logger.SetupLogger("info", "text").Logger

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	catalogRepo, cleanup, err := buildCatalogRepository(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	var items []domain.Item
	if !*reset {
		items, err = catalogRepo.LoadAll(ctx)
		if err != nil {
			slogger.Error("failed to load existing catalog", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	existing := domain.NewCatalog(items)
	generated := 0
	for i := 0; generated < *count; i++ {
		t := templates[rng.Intn(len(templates))]
		item := makeItem(t, i, rng)
		if existing.FindByID(item.ItemID) != nil {
			continue
		}
		if err := item.Validate(); err != nil {
			slogger.Error("generated invalid item", slog.String("error", err.Error()))
			os.Exit(1)
		}
		items = append(items, item)
		existing = domain.NewCatalog(items)
		generated++
	}

	if err := catalogRepo.SaveAll(ctx, items); err != nil {
		slogger.Error("failed to save catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("catalog seeded",
		slog.Int("generated", generated),
		slog.Int("catalog_size", len(items)),
		slog.Int64("seed", *seed),
		slog.String("backend", cfg.Storage.Backend))
}

func makeItem(t template, n int, rng *rand.Rand) domain.Item {
	selling := decimal.NewFromFloat(t.price)
	purchase := selling.Mul(decimal.NewFromFloat(0.7)).Round(2)
	bought := time.Now().AddDate(0, 0, -rng.Intn(120))

	// Roughly a third of the catalog carries a promotional discount.
	discount := decimal.Zero
	if rng.Intn(3) == 0 {
		discount = decimal.NewFromInt(int64(5 * (1 + rng.Intn(6))))
	}

	return domain.Item{
		ItemID:             fmt.Sprintf("%s%03d", t.prefix, n+1),
		Name:               fmt.Sprintf("%s %s", t.brand, t.name),
		Brand:              t.brand,
		PurchasePrice:      purchase,
		SellingPrice:       selling,
		StockQuantity:      1 + rng.Intn(25),
		DiscountPercentage: discount,
		Sector:             t.sector,
		SupplierName:       fmt.Sprintf("%s Distribution", t.brand),
		DateBought:         &bought,
	}
}

func buildCatalogRepository(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (ports.CatalogRepository, func(), error) {
	if cfg.Storage.Backend == config.BackendPostgres {
		dbConfig := db.DefaultConfig()
		dbConfig.Host = cfg.Database.Host
		dbConfig.Port = cfg.Database.Port
		dbConfig.User = cfg.Database.User
		dbConfig.Password = cfg.Database.Password
		dbConfig.Database = cfg.Database.Name
		dbConfig.SSLMode = cfg.Database.SSLMode

		database, err := db.NewDatabase(ctx, dbConfig, slogger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, cfg.GetDatabaseURL(), slogger); err != nil {
			database.Close()
			return nil, nil, err
		}
		return db.NewCatalogRepository(database, slogger), database.Close, nil
	}

	path := filepath.Join(cfg.Storage.DataDir, cfg.Storage.CatalogFile)
	return filestore.NewCatalogRepository(path, slogger), func() {}, nil
}
