// internal/core/ports/checkout_service.go
package ports

import (
	"context"
	"time"

	"github.com/clementech/checkout-be/internal/core/domain"
)

// CheckoutService is the engine boundary consumed by the UI layer.
type CheckoutService interface {
	// Finalize converts a cart into a committed bill, durably mutating
	// catalog stock and appending to the bill history.
	Finalize(ctx context.Context, cart *domain.Cart, buyerInfo, createdBy string) (*domain.Bill, error)
	// RemoveBillLine restores one unit of stock and sales count for the
	// given item and removes it from the bill. A missing item id or an
	// empty bill is a logged no-op.
	RemoveBillLine(ctx context.Context, bill *domain.Bill, itemID string) error
	// SearchItems returns catalog items matching the query by id or name.
	SearchItems(ctx context.Context, query string) ([]domain.Item, error)
	// Catalog loads the current catalog into an indexed view.
	Catalog(ctx context.Context) (*domain.Catalog, error)
	// BillsOnDate returns the bills cut on the given calendar day.
	BillsOnDate(ctx context.Context, day time.Time) ([]domain.Bill, error)
}
