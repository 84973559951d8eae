// internal/adapters/filestore/catalog.go
package filestore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/ports"
)

// CatalogRepository stores the item catalog in a single JSON file.
type CatalogRepository struct {
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a file-backed catalog repository at path.
func NewCatalogRepository(path string, logger *slog.Logger) *CatalogRepository {
	return &CatalogRepository{
		path:   path,
		logger: logger.With(slog.String("repository", "catalog_file")),
	}
}

// LoadAll reads the whole catalog. A missing file is an empty catalog.
func (r *CatalogRepository) LoadAll(ctx context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []domain.Item
	if err := readJSONFile(r.path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveAll atomically replaces the stored catalog with items.
func (r *CatalogRepository) SaveAll(ctx context.Context, items []domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if items == nil {
		items = []domain.Item{}
	}
	if err := writeJSONFile(r.path, items); err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "catalog saved",
		slog.String("path", r.path),
		slog.Int("items", len(items)))
	return nil
}

// FindByID resolves a single item by case-insensitive id.
func (r *CatalogRepository) FindByID(ctx context.Context, itemID string) (*domain.Item, error) {
	items, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	item := domain.NewCatalog(items).FindByID(itemID)
	if item == nil {
		return nil, fmt.Errorf("item %q: %w", itemID, domain.ErrItemNotFound)
	}
	return item, nil
}
