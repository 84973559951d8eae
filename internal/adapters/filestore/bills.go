// internal/adapters/filestore/bills.go
package filestore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/ports"
)

// BillRepository stores the bill history in a single JSON file.
type BillRepository struct {
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

var _ ports.BillRepository = (*BillRepository)(nil)

// NewBillRepository creates a file-backed bill repository at path.
func NewBillRepository(path string, logger *slog.Logger) *BillRepository {
	return &BillRepository{
		path:   path,
		logger: logger.With(slog.String("repository", "bill_file")),
	}
}

// LoadAll reads the whole bill history. A missing file is an empty history.
func (r *BillRepository) LoadAll(ctx context.Context) ([]domain.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadLocked()
}

func (r *BillRepository) loadLocked() ([]domain.Bill, error) {
	var bills []domain.Bill
	if err := readJSONFile(r.path, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// SaveAll atomically replaces the stored history with bills.
func (r *BillRepository) SaveAll(ctx context.Context, bills []domain.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(ctx, bills)
}

func (r *BillRepository) saveLocked(ctx context.Context, bills []domain.Bill) error {
	if bills == nil {
		bills = []domain.Bill{}
	}
	if err := writeJSONFile(r.path, bills); err != nil {
		return err
	}
	r.logger.DebugContext(ctx, "bill history saved",
		slog.String("path", r.path),
		slog.Int("bills", len(bills)))
	return nil
}

// Append adds one bill to the history and rewrites the whole document.
func (r *BillRepository) Append(ctx context.Context, bill domain.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bills, err := r.loadLocked()
	if err != nil {
		return err
	}
	bills = append(bills, bill)
	return r.saveLocked(ctx, bills)
}

// FindByNumber returns the bill with the given number, or nil when absent.
func (r *BillRepository) FindByNumber(ctx context.Context, number int64) (*domain.Bill, error) {
	bills, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		if bills[i].BillNumber == number {
			return &bills[i], nil
		}
	}
	return nil, nil
}

// BillsOnDate returns the bills cut on the given calendar day.
func (r *BillRepository) BillsOnDate(ctx context.Context, day time.Time) ([]domain.Bill, error) {
	bills, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	y, m, d := day.Date()
	matched := make([]domain.Bill, 0)
	for _, b := range bills {
		by, bm, bd := b.DateCreated.Date()
		if by == y && bm == m && bd == d {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// MaxBillNumber returns the highest persisted bill number, or 0 when empty.
func (r *BillRepository) MaxBillNumber(ctx context.Context) (int64, error) {
	bills, err := r.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	var max int64
	for _, b := range bills {
		if b.BillNumber > max {
			max = b.BillNumber
		}
	}
	return max, nil
}
