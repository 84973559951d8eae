// internal/adapters/db/catalog_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/ports"
)

// catalogRepository implements ports.CatalogRepository on PostgreSQL.
// SaveAll keeps the whole-collection replace semantics of the file store
// by rewriting the items table inside a single transaction.
type catalogRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewCatalogRepository creates a new Postgres-backed catalog repository
func NewCatalogRepository(db *Database, logger *slog.Logger) ports.CatalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "catalog_pg")),
	}
}

const itemColumns = `
	item_id, name, brand, purchase_price, selling_price,
	stock_quantity, discount_percentage, sector, supplier_name,
	number_sold, date_sold, date_bought, low_stock_threshold`

func scanItem(row pgx.Row) (domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ItemID, &item.Name, &item.Brand, &item.PurchasePrice, &item.SellingPrice,
		&item.StockQuantity, &item.DiscountPercentage, &item.Sector, &item.SupplierName,
		&item.NumberSold, &item.DateSold, &item.DateBought, &item.LowStockThreshold,
	)
	return item, err
}

// LoadAll reads the whole catalog ordered by item id.
func (r *catalogRepository) LoadAll(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY lower(item_id)`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// SaveAll replaces the stored catalog with items in one transaction.
func (r *catalogRepository) SaveAll(ctx context.Context, items []domain.Item) error {
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM items`); err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}
		if len(items) == 0 {
			return nil
		}

		query := `
			INSERT INTO items (` + itemColumns + `
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
			)`

		batch := &pgx.Batch{}
		for i := range items {
			batch.Queue(query,
				items[i].ItemID, items[i].Name, items[i].Brand,
				items[i].PurchasePrice, items[i].SellingPrice,
				items[i].StockQuantity, items[i].DiscountPercentage,
				items[i].Sector, items[i].SupplierName,
				items[i].NumberSold, items[i].DateSold, items[i].DateBought,
				items[i].LowStockThreshold,
			)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for i := range items {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("failed to insert item %s: %w", items[i].ItemID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "catalog saved", slog.Int("items", len(items)))
	return nil
}

// FindByID resolves a single item by case-insensitive id.
func (r *catalogRepository) FindByID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE lower(item_id) = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, domain.NormalizeID(itemID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %q: %w", itemID, domain.ErrItemNotFound)
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}
