// internal/workers/receipt_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/clementech/checkout-be/internal/core/ports"
)

const (
	TypeReceiptRender  = "receipt:render"
	TypeLowStockReport = "report:low_stock"
)

// ReceiptPayload is the payload for receipt rendering jobs.
type ReceiptPayload struct {
	BillNumber int64 `json:"bill_number"`
}

// NewReceiptRenderTask builds an asynq task that renders the receipt for
// the given bill number.
func NewReceiptRenderTask(billNumber int64) (*asynq.Task, error) {
	payload, err := json.Marshal(ReceiptPayload{BillNumber: billNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal receipt payload: %w", err)
	}
	return asynq.NewTask(TypeReceiptRender, payload, asynq.MaxRetry(5)), nil
}

// ReceiptProcessor renders committed bills into durable text receipts.
type ReceiptProcessor struct {
	bills    ports.BillRepository
	receipts ports.ReceiptRenderer
	logger   *slog.Logger
}

// NewReceiptProcessor creates a new receipt processor.
func NewReceiptProcessor(bills ports.BillRepository, receipts ports.ReceiptRenderer, logger *slog.Logger) *ReceiptProcessor {
	return &ReceiptProcessor{
		bills:    bills,
		receipts: receipts,
		logger:   logger.With(slog.String("processor", "receipt")),
	}
}

// ProcessReceipt looks the bill up in the history and writes its receipt.
// A bill number with no matching bill fails the task so asynq retries it;
// the finalize path enqueues after the bill is persisted, so a miss means
// the history read raced a slower store.
func (p *ReceiptProcessor) ProcessReceipt(ctx context.Context, t *asynq.Task) error {
	var payload ReceiptPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	bill, err := p.bills.FindByNumber(ctx, payload.BillNumber)
	if err != nil {
		return fmt.Errorf("failed to load bill %d: %w", payload.BillNumber, err)
	}
	if bill == nil {
		return fmt.Errorf("bill %d not found in history", payload.BillNumber)
	}

	path, err := p.receipts.Write(*bill)
	if err != nil {
		return fmt.Errorf("failed to write receipt for bill %d: %w", payload.BillNumber, err)
	}

	p.logger.InfoContext(ctx, "receipt rendered",
		slog.Int64("bill_number", payload.BillNumber),
		slog.String("path", path))

	return nil
}
