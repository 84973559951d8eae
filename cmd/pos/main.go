// cmd/pos/main.go

// Command pos is the operator-facing entry point for the checkout
// engine: catalog search, cart checkout, bill lookup and line removal,
// all against the configured storage backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/clementech/checkout-be/internal/adapters/db"
	"github.com/clementech/checkout-be/internal/adapters/filestore"
	redis_a "github.com/clementech/checkout-be/internal/adapters/redis_adapter"
	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/ports"
	"github.com/clementech/checkout-be/internal/core/services"
	"github.com/clementech/checkout-be/internal/pkg/config"
	"github.com/clementech/checkout-be/internal/pkg/logger"
)

func main() {
	var (
		command  = flag.String("cmd", "search", "command to run: search, checkout, bills, remove-line, migrate")
		query    = flag.String("query", "", "search query (search)")
		items    = flag.String("items", "", "cart lines as id:qty pairs, e.g. A1:2,B3:1 (checkout)")
		buyer    = flag.String("buyer", "", "buyer name or contact info (checkout)")
		operator = flag.String("operator", "", "operator recording the sale (checkout)")
		billNum  = flag.Int64("bill", 0, "bill number (remove-line)")
		itemID   = flag.String("item", "", "item id (remove-line)")
		date     = flag.String("date", "", "calendar day as YYYY-MM-DD, defaults to today (bills)")
	)
	flag.Parse()

	slogger := logger.SetupLogger("info", "json").Logger

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger

	ctx := context.Background()

	app, err := newApp(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.close()

	switch *command {
	case "search":
		err = app.search(ctx, *query)
	case "checkout":
		err = app.checkout(ctx, *items, *buyer, *operator)
	case "bills":
		err = app.billsOnDate(ctx, *date)
	case "remove-line":
		err = app.removeLine(ctx, *billNum, *itemID)
	case "migrate":
		err = app.migrate(ctx)
	default:
		err = fmt.Errorf("unknown command %q", *command)
	}

	if err != nil {
		slogger.Error("command failed",
			slog.String("cmd", *command),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	service ports.CheckoutService
	bills   ports.BillRepository
	closers []func()
}

func pgConfig(cfg *config.Config) *db.Config {
	return &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}
}

func newApp(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: slogger}

	var (
		catalogRepo ports.CatalogRepository
		billRepo    ports.BillRepository
	)
	if cfg.Storage.Backend == config.BackendPostgres {
		database, err := db.NewDatabase(ctx, pgConfig(cfg), slogger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, database.Close)
		catalogRepo = db.NewCatalogRepository(database, slogger)
		billRepo = db.NewBillRepository(database, slogger)
	} else {
		catalogRepo = filestore.NewCatalogRepository(
			filepath.Join(cfg.Storage.DataDir, cfg.Storage.CatalogFile), slogger)
		billRepo = filestore.NewBillRepository(
			filepath.Join(cfg.Storage.DataDir, cfg.Storage.BillsFile), slogger)
	}
	a.bills = billRepo

	// Bill numbers restart at max(history)+1 so a crash never reissues
	// an already-used number.
	seq := services.NewSequenceAllocator()
	maxNumber, err := billRepo.MaxBillNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to recover bill sequence: %w", err)
	}
	seq.Initialize(maxNumber)

	var cache ports.CacheRepository
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		a.closers = append(a.closers, func() { client.Close() })
		cache = redis_a.NewCache(client, cfg.Redis.TTL, slogger)
	}

	var tasks services.TaskEnqueuer
	if cfg.Asynq.Enabled {
		client := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Asynq.RedisAddr,
			Password: cfg.Asynq.RedisPassword,
			DB:       cfg.Asynq.RedisDB,
		})
		a.closers = append(a.closers, func() { client.Close() })
		tasks = client
	}

	a.service = services.NewCheckoutService(catalogRepo, billRepo, seq, cache, tasks, slogger)
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) search(ctx context.Context, query string) error {
	items, err := a.service.SearchItems(ctx, query)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %-30s %10s %7s %6s %-12s\n", "ID", "NAME", "PRICE", "DISC%", "STOCK", "SECTOR")
	for _, item := range items {
		fmt.Printf("%-12s %-30s %10s %7s %6d %-12s\n",
			item.ItemID, item.Name,
			domain.FormatMoney(item.SellingPrice),
			item.DiscountPercentage.StringFixed(1),
			item.StockQuantity, item.Sector)
	}
	fmt.Printf("%d item(s)\n", len(items))
	return nil
}

func (a *app) checkout(ctx context.Context, itemsArg, buyer, operator string) error {
	if strings.TrimSpace(itemsArg) == "" {
		return fmt.Errorf("-items is required, e.g. -items A1:2,B3:1")
	}

	catalog, err := a.service.Catalog(ctx)
	if err != nil {
		return err
	}

	cart := domain.NewCart()
	for _, pair := range strings.Split(itemsArg, ",") {
		id, qty, err := parseCartPair(pair)
		if err != nil {
			return err
		}
		for u := 0; u < qty; u++ {
			if err := cart.AddItem(id, catalog); err != nil {
				return fmt.Errorf("add %s: %w", id, err)
			}
		}
	}

	bill, err := a.service.Finalize(ctx, cart, buyer, operator)
	if err != nil {
		return err
	}

	fmt.Printf("Bill #%d committed: %d unit(s), subtotal %s, discount %s, total %s\n",
		bill.BillNumber, bill.UnitCount(),
		domain.FormatMoney(bill.Subtotal),
		domain.FormatMoney(bill.DiscountAmount),
		domain.FormatMoney(bill.Total))
	return nil
}

func (a *app) billsOnDate(ctx context.Context, dateArg string) error {
	day := time.Now()
	if dateArg != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateArg, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -date %q: %w", dateArg, err)
		}
		day = parsed
	}

	bills, err := a.service.BillsOnDate(ctx, day)
	if err != nil {
		return err
	}

	total := domain.FormatMoney(sumTotals(bills))
	for _, b := range bills {
		fmt.Printf("Bill #%-6d %s  %-25s %3d unit(s) %12s\n",
			b.BillNumber, b.DateCreated.Format("15:04:05"), b.BuyerInfo,
			b.UnitCount(), domain.FormatMoney(b.Total))
	}
	fmt.Printf("%d bill(s) on %s, %s total\n", len(bills), day.Format("2006-01-02"), total)
	return nil
}

func (a *app) removeLine(ctx context.Context, billNum int64, itemID string) error {
	if billNum <= 0 || strings.TrimSpace(itemID) == "" {
		return fmt.Errorf("-bill and -item are required")
	}

	bill, err := a.bills.FindByNumber(ctx, billNum)
	if err != nil {
		return err
	}
	if bill == nil {
		return fmt.Errorf("bill %d not found", billNum)
	}

	if err := a.service.RemoveBillLine(ctx, bill, itemID); err != nil {
		return err
	}

	fmt.Printf("Bill #%d now %d unit(s), total %s\n",
		bill.BillNumber, bill.UnitCount(), domain.FormatMoney(bill.Total))
	return nil
}

func (a *app) migrate(ctx context.Context) error {
	if a.cfg.Storage.Backend != config.BackendPostgres {
		return fmt.Errorf("migrate requires the postgres storage backend")
	}
	return db.RunMigrations(ctx, a.cfg.GetDatabaseURL(), a.logger)
}

func parseCartPair(pair string) (string, int, error) {
	pair = strings.TrimSpace(pair)
	id, qtyStr, found := strings.Cut(pair, ":")
	if !found {
		return strings.TrimSpace(id), 1, nil
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err != nil || qty <= 0 {
		return "", 0, fmt.Errorf("invalid quantity in %q", pair)
	}
	return strings.TrimSpace(id), qty, nil
}

func sumTotals(bills []domain.Bill) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bills {
		total = total.Add(b.Total)
	}
	return total
}
