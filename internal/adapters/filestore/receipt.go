// internal/adapters/filestore/receipt.go
package filestore

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/ports"
)

// ReceiptWriter renders bills as plain-text receipts, one file per bill.
type ReceiptWriter struct {
	dir    string
	logger *slog.Logger
}

var _ ports.ReceiptRenderer = (*ReceiptWriter)(nil)

// NewReceiptWriter creates a receipt writer that writes under dir.
func NewReceiptWriter(dir string, logger *slog.Logger) *ReceiptWriter {
	return &ReceiptWriter{
		dir:    dir,
		logger: logger.With(slog.String("adapter", "receipt_writer")),
	}
}

// Write renders the bill and writes it to Bill_<number>_<date>.txt under
// the receipts directory, returning the full path.
func (w *ReceiptWriter) Write(bill domain.Bill) (string, error) {
	name := fmt.Sprintf("Bill_%d_%s.txt", bill.BillNumber, bill.DateCreated.Format("2006-01-02"))
	path := filepath.Join(w.dir, name)

	if err := writeFileAtomic(path, []byte(renderReceipt(bill))); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	return path, nil
}

func renderReceipt(bill domain.Bill) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Bill #%d\n", bill.BillNumber)
	fmt.Fprintf(&b, "Date:       %s\n", bill.DateCreated.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Buyer:      %s\n", bill.BuyerInfo)
	if bill.CreatedBy != "" {
		fmt.Fprintf(&b, "Created by: %s\n", bill.CreatedBy)
	}
	b.WriteString(strings.Repeat("-", 72) + "\n")
	fmt.Fprintf(&b, "%-12s %-30s %12s %7s\n", "ITEM", "NAME", "PRICE", "DISC%")

	for _, line := range bill.Lines {
		fmt.Fprintf(&b, "%-12s %-30s %12s %7s\n",
			line.ItemID,
			truncate(line.ItemName, 30),
			domain.FormatMoney(line.UnitPrice),
			line.DiscountPercentage.StringFixed(1))
	}

	b.WriteString(strings.Repeat("-", 72) + "\n")
	fmt.Fprintf(&b, "%-43s %12s\n", "Subtotal:", domain.FormatMoney(bill.Subtotal))
	fmt.Fprintf(&b, "%-43s %12s\n", "Discount:", domain.FormatMoney(bill.DiscountAmount))
	fmt.Fprintf(&b, "%-43s %12s\n", "Total:", domain.FormatMoney(bill.Total))

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
