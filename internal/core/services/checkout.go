// internal/core/services/checkout.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/ports"
	"github.com/clementech/checkout-be/internal/workers"
)

// catalogCacheKey caches the full catalog snapshot; every durable catalog
// mutation invalidates the catalog prefix.
const (
	catalogCacheKey     = "catalog:all"
	catalogCachePattern = "catalog:*"
)

// TaskEnqueuer matches the subset of *asynq.Client the service uses to
// hand off background work.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// CheckoutService converts finalized carts into committed bills. All
// durable mutation runs under a single mutex: the per-unit check-then-act
// of the original design is not safe for concurrent callers, so the
// whole finalize path is serialized.
type CheckoutService struct {
	catalog ports.CatalogRepository
	bills   ports.BillRepository
	seq     *SequenceAllocator
	cache   ports.CacheRepository // optional
	tasks   TaskEnqueuer          // optional
	logger  *slog.Logger

	mu sync.Mutex
}

// Statically assert that *CheckoutService implements the CheckoutService port.
var _ ports.CheckoutService = (*CheckoutService)(nil)

// NewCheckoutService creates a checkout service. cache and tasks may be
// nil; the engine then runs without read caching or background receipts.
func NewCheckoutService(
	catalog ports.CatalogRepository,
	bills ports.BillRepository,
	seq *SequenceAllocator,
	cache ports.CacheRepository,
	tasks TaskEnqueuer,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		catalog: catalog,
		bills:   bills,
		seq:     seq,
		cache:   cache,
		tasks:   tasks,
		logger:  logger.With(slog.String("service", "checkout")),
	}
}

// Finalize converts the cart into a committed bill.
//
// The commit is two-phase: every cart line is first re-resolved against a
// fresh catalog load and validated in full against current stock, then
// all decrements are applied and persisted once. Stock is either
// decremented for the whole cart or not at all; there are no partial
// bills. Validation failures leave durable state untouched.
func (s *CheckoutService) Finalize(ctx context.Context, cart *domain.Cart, buyerInfo, createdBy string) (*domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart == nil || cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if strings.TrimSpace(buyerInfo) == "" {
		return nil, domain.ErrInvalidBuyerInfo
	}

	items, err := s.catalog.LoadAll(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load catalog", Err: err}
	}
	catalog := domain.NewCatalog(items)

	// Phase one: resolve every line by id and validate the full
	// requested quantity against current stock.
	type plannedLine struct {
		item *domain.Item
		qty  int
	}
	plan := make([]plannedLine, 0, len(cart.Lines()))
	for _, line := range cart.Lines() {
		item := catalog.FindByID(line.ItemID)
		if item == nil {
			return nil, fmt.Errorf("finalize line %q: %w", line.ItemID, domain.ErrItemNotFound)
		}
		if item.StockQuantity < line.Quantity {
			return nil, &domain.OutOfStockError{
				ItemID:    item.ItemID,
				Requested: line.Quantity,
				Available: item.StockQuantity,
			}
		}
		plan = append(plan, plannedLine{item: item, qty: line.Quantity})
	}

	bill, err := domain.NewBill(s.seq.Next(), buyerInfo, createdBy)
	if err != nil {
		return nil, err
	}

	// Phase two: apply all decrements and record one bill line per unit.
	now := time.Now()
	for _, p := range plan {
		for u := 0; u < p.qty; u++ {
			p.item.StockQuantity--
			p.item.NumberSold++
			sold := now
			p.item.DateSold = &sold
			bill.AppendUnit(p.item)
		}
	}

	if err := s.bills.Append(ctx, *bill); err != nil {
		return nil, &domain.PersistenceError{Op: "append bill", Err: err}
	}
	if err := s.catalog.SaveAll(ctx, catalog.Items()); err != nil {
		// The bill is already in the history but the stock update did
		// not land; surface the failure so the operator can reconcile.
		return nil, &domain.PersistenceError{Op: "save catalog", Err: err}
	}

	s.invalidateCatalogCache(ctx)
	s.enqueueReceipt(ctx, bill.BillNumber)

	s.logger.InfoContext(ctx, "bill committed",
		slog.Int64("bill_number", bill.BillNumber),
		slog.Int("units", bill.UnitCount()),
		slog.String("total", domain.FormatMoney(bill.Total)),
		slog.String("created_by", bill.CreatedBy))

	return bill, nil
}

// RemoveBillLine removes one sold unit of the given item from the bill,
// restoring stock and sales count, and persists both stores. An item id
// not present on the bill, or an empty bill, is a logged no-op.
func (s *CheckoutService) RemoveBillLine(ctx context.Context, bill *domain.Bill, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bill == nil || bill.UnitCount() == 0 {
		s.logger.WarnContext(ctx, "remove line on empty bill", slog.String("item_id", itemID))
		return nil
	}
	if !bill.RemoveUnit(itemID) {
		s.logger.WarnContext(ctx, "item not on bill",
			slog.Int64("bill_number", bill.BillNumber),
			slog.String("item_id", itemID))
		return nil
	}

	items, err := s.catalog.LoadAll(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "load catalog", Err: err}
	}
	catalog := domain.NewCatalog(items)
	if item := catalog.FindByID(itemID); item != nil {
		item.StockQuantity++
		if item.NumberSold > 0 {
			item.NumberSold--
		}
		if item.NumberSold == 0 {
			item.DateSold = nil
		}
	}

	bills, err := s.bills.LoadAll(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "load bills", Err: err}
	}
	for i := range bills {
		if bills[i].BillNumber == bill.BillNumber {
			bills[i] = *bill
			break
		}
	}
	if err := s.bills.SaveAll(ctx, bills); err != nil {
		return &domain.PersistenceError{Op: "save bills", Err: err}
	}
	if err := s.catalog.SaveAll(ctx, catalog.Items()); err != nil {
		return &domain.PersistenceError{Op: "save catalog", Err: err}
	}

	s.invalidateCatalogCache(ctx)

	s.logger.InfoContext(ctx, "bill line removed",
		slog.Int64("bill_number", bill.BillNumber),
		slog.String("item_id", itemID),
		slog.String("total", domain.FormatMoney(bill.Total)))

	return nil
}

// SearchItems returns catalog items matching the query by id or name.
// Reads go through the cache when one is configured; the cached snapshot
// is invalidated on every durable catalog mutation.
func (s *CheckoutService) SearchItems(ctx context.Context, query string) ([]domain.Item, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Search(query), nil
}

// Catalog loads the current catalog into an indexed view.
func (s *CheckoutService) Catalog(ctx context.Context) (*domain.Catalog, error) {
	if s.cache != nil {
		var cached []domain.Item
		err := s.cache.Get(ctx, catalogCacheKey, &cached)
		if err == nil {
			return domain.NewCatalog(cached), nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "catalog cache read failed", slog.String("error", err.Error()))
		}
	}

	items, err := s.catalog.LoadAll(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load catalog", Err: err}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, items); err != nil {
			s.logger.WarnContext(ctx, "catalog cache write failed", slog.String("error", err.Error()))
		}
	}
	return domain.NewCatalog(items), nil
}

// BillsOnDate returns the bills cut on the given calendar day.
func (s *CheckoutService) BillsOnDate(ctx context.Context, day time.Time) ([]domain.Bill, error) {
	bills, err := s.bills.BillsOnDate(ctx, day)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load bills", Err: err}
	}
	return bills, nil
}

func (s *CheckoutService) invalidateCatalogCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, catalogCachePattern); err != nil {
		s.logger.WarnContext(ctx, "catalog cache invalidation failed", slog.String("error", err.Error()))
	}
}

func (s *CheckoutService) enqueueReceipt(ctx context.Context, billNumber int64) {
	if s.tasks == nil {
		return
	}
	task, err := workers.NewReceiptRenderTask(billNumber)
	if err != nil {
		s.logger.WarnContext(ctx, "receipt task build failed", slog.String("error", err.Error()))
		return
	}
	if _, err := s.tasks.Enqueue(task); err != nil {
		s.logger.WarnContext(ctx, "receipt task enqueue failed",
			slog.Int64("bill_number", billNumber),
			slog.String("error", err.Error()))
	}
}
