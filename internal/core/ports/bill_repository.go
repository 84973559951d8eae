// internal/core/ports/bill_repository.go
package ports

import (
	"context"
	"time"

	"github.com/clementech/checkout-be/internal/core/domain"
)

// BillRepository is the persistence port for the durable bill history.
// Like the catalog, the history is replaced as a whole on SaveAll;
// Append is the common path for committing a new sale.
type BillRepository interface {
	LoadAll(ctx context.Context) ([]domain.Bill, error)
	SaveAll(ctx context.Context, bills []domain.Bill) error
	Append(ctx context.Context, bill domain.Bill) error
	// FindByNumber returns the bill with the given number, or nil when
	// the history holds no such bill.
	FindByNumber(ctx context.Context, number int64) (*domain.Bill, error)
	// BillsOnDate returns the bills cut on the given calendar day.
	BillsOnDate(ctx context.Context, day time.Time) ([]domain.Bill, error)
	// MaxBillNumber returns the highest persisted bill number, or 0 when
	// the history is empty. The sequence allocator recovers from this
	// after a restart.
	MaxBillNumber(ctx context.Context) (int64, error)
}
