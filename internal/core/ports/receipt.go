// internal/core/ports/receipt.go
package ports

import "github.com/clementech/checkout-be/internal/core/domain"

// ReceiptRenderer renders a committed bill into a durable, human-readable
// receipt and returns the location it was written to.
type ReceiptRenderer interface {
	Write(bill domain.Bill) (string, error)
}
