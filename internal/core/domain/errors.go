// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by cart and checkout operations. Validation
// errors never mutate durable state.
var (
	ErrItemNotFound     = errors.New("item not found in catalog")
	ErrEmptyCart        = errors.New("cart has no lines")
	ErrInvalidBuyerInfo = errors.New("buyer info must not be blank")
	ErrDuplicateItemID  = errors.New("item id already exists in catalog")

	// ErrOutOfStock matches any *OutOfStockError via errors.Is.
	ErrOutOfStock = errors.New("out of stock")
)

// OutOfStockError reports a stock shortfall for a specific item, either
// pre-emptively on cart add or during finalize pre-validation.
type OutOfStockError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("item %s out of stock: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

func (e *OutOfStockError) Is(target error) bool {
	return target == ErrOutOfStock
}

// PersistenceError wraps an I/O failure on a durable store. The sale did
// not durably complete; the caller retries or surfaces it to the operator.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
