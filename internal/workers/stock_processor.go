// internal/workers/stock_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/clementech/checkout-be/internal/core/ports"
)

// LowStockEntry is one catalog item at or below its restock threshold.
type LowStockEntry struct {
	ItemID        string `json:"item_id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	Threshold     int    `json:"threshold"`
	NumberSold    int    `json:"number_sold"`
}

// LowStockReport is the cached output of a low-stock scan.
type LowStockReport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Entries     []LowStockEntry `json:"entries"`
}

// NewLowStockReportTask builds an asynq task that scans the catalog for
// items at or below their restock threshold.
func NewLowStockReportTask() *asynq.Task {
	return asynq.NewTask(TypeLowStockReport, nil, asynq.MaxRetry(3))
}

// StockProcessor generates low-stock reports from the catalog.
type StockProcessor struct {
	catalog ports.CatalogRepository
	cache   ports.CacheRepository // optional
	logger  *slog.Logger
}

// NewStockProcessor creates a new stock processor. cache may be nil; the
// report is then only logged.
func NewStockProcessor(catalog ports.CatalogRepository, cache ports.CacheRepository, logger *slog.Logger) *StockProcessor {
	return &StockProcessor{
		catalog: catalog,
		cache:   cache,
		logger:  logger.With(slog.String("processor", "stock")),
	}
}

// ProcessLowStockReport scans the catalog and records every item whose
// stock is at or below its threshold.
func (p *StockProcessor) ProcessLowStockReport(ctx context.Context, t *asynq.Task) error {
	items, err := p.catalog.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	report := LowStockReport{GeneratedAt: time.Now()}
	for _, item := range items {
		if item.StockQuantity > item.Threshold() {
			continue
		}
		report.Entries = append(report.Entries, LowStockEntry{
			ItemID:        item.ItemID,
			Name:          item.Name,
			StockQuantity: item.StockQuantity,
			Threshold:     item.Threshold(),
			NumberSold:    item.NumberSold,
		})
		p.logger.WarnContext(ctx, "item low on stock",
			slog.String("item_id", item.ItemID),
			slog.String("name", item.Name),
			slog.Int("stock_quantity", item.StockQuantity),
			slog.Int("threshold", item.Threshold()))
	}

	if p.cache != nil {
		key := fmt.Sprintf("report:low_stock:%s", report.GeneratedAt.Format("2006-01-02"))
		if err := p.cache.SetWithTTL(ctx, key, report, 48*time.Hour); err != nil {
			p.logger.WarnContext(ctx, "failed to cache low stock report", slog.String("error", err.Error()))
		}
	}

	p.logger.InfoContext(ctx, "low stock report generated",
		slog.Int("catalog_size", len(items)),
		slog.Int("low_stock_items", len(report.Entries)))

	return nil
}
