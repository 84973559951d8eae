// internal/core/ports/catalog_repository.go
package ports

import (
	"context"

	"github.com/clementech/checkout-be/internal/core/domain"
)

// CatalogRepository is the persistence port for the item catalog.
//
// The collection is durable as a whole: SaveAll atomically replaces the
// entire stored collection, and readers observe either the old or the new
// collection, never a partial write. Callers treat every LoadAll as the
// current source of truth and re-resolve items by id before mutating.
type CatalogRepository interface {
	LoadAll(ctx context.Context) ([]domain.Item, error)
	SaveAll(ctx context.Context, items []domain.Item) error
	// FindByID resolves a single item by case-insensitive id. Returns
	// domain.ErrItemNotFound when absent.
	FindByID(ctx context.Context, itemID string) (*domain.Item, error)
}
