// internal/core/domain/cart.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a requested quantity of a single item. One line exists per
// distinct item; repeated adds accumulate on the existing line.
type CartLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Cart is an ephemeral, per-checkout-session collection of requested
// item quantities. It is owned by exactly one session and never
// persisted. A cart reserves nothing: quantities held in the cart are an
// advisory read-side view over the catalog, not a lock.
type Cart struct {
	ID        uuid.UUID
	CreatedAt time.Time
	lines     []CartLine
}

// CartTotals holds the derived money amounts for a cart.
type CartTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// NewCart creates an empty cart for a new checkout session.
func NewCart() *Cart {
	return &Cart{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// AddItem adds one unit of the given item to the cart, validated against
// the current catalog state. Available stock is the catalog stock minus
// what this cart already holds; when it is zero or less the add fails
// with an OutOfStockError and the cart is unchanged.
func (c *Cart) AddItem(itemID string, catalog *Catalog) error {
	item := catalog.FindByID(itemID)
	if item == nil {
		return fmt.Errorf("add %q: %w", itemID, ErrItemNotFound)
	}

	reserved := c.ReservedQuantity(item.ItemID)
	available := item.StockQuantity - reserved
	if available <= 0 {
		return &OutOfStockError{
			ItemID:    item.ItemID,
			Requested: reserved + 1,
			Available: item.StockQuantity,
		}
	}

	for i := range c.lines {
		if NormalizeID(c.lines[i].ItemID) == NormalizeID(item.ItemID) {
			c.lines[i].Quantity++
			return nil
		}
	}
	c.lines = append(c.lines, CartLine{ItemID: item.ItemID, Quantity: 1})
	return nil
}

// RemoveLine deletes the entire line for the given item, all quantity
// included. Catalog stock is untouched. Returns false when no line
// matched.
func (c *Cart) RemoveLine(itemID string) bool {
	for i := range c.lines {
		if NormalizeID(c.lines[i].ItemID) == NormalizeID(itemID) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// ReservedQuantity returns the quantity of the given item already held
// in this cart.
func (c *Cart) ReservedQuantity(itemID string) int {
	sum := 0
	for _, line := range c.lines {
		if NormalizeID(line.ItemID) == NormalizeID(itemID) {
			sum += line.Quantity
		}
	}
	return sum
}

// AvailableStock returns catalog stock minus the quantity reserved in
// this cart. The result can be transiently negative if catalog stock
// dropped since the cart was filled; callers clamp to 0 for display and
// treat <= 0 as "cannot add more".
func (c *Cart) AvailableStock(itemID string, catalog *Catalog) (int, error) {
	item := catalog.FindByID(itemID)
	if item == nil {
		return 0, fmt.Errorf("available stock %q: %w", itemID, ErrItemNotFound)
	}
	return item.StockQuantity - c.ReservedQuantity(item.ItemID), nil
}

// LowStock reports whether the item's available stock has reached its
// low-stock threshold.
func (c *Cart) LowStock(itemID string, catalog *Catalog) (bool, error) {
	item := catalog.FindByID(itemID)
	if item == nil {
		return false, fmt.Errorf("low stock %q: %w", itemID, ErrItemNotFound)
	}
	available := item.StockQuantity - c.ReservedQuantity(item.ItemID)
	return available <= item.Threshold(), nil
}

// Totals recomputes subtotal, discount amount and total from the CURRENT
// catalog state. Nothing is cached: totals can change between calls when
// another part of the system mutates stock or discounts, so callers pass
// a catalog rebuilt from a fresh load. Lines whose item no longer exists
// in the catalog are skipped.
func (c *Cart) Totals(catalog *Catalog) CartTotals {
	totals := CartTotals{
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		Total:          decimal.Zero,
	}
	for _, line := range c.lines {
		item := catalog.FindByID(line.ItemID)
		if item == nil {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		totals.Subtotal = totals.Subtotal.Add(item.SellingPrice.Mul(qty))
		totals.DiscountAmount = totals.DiscountAmount.Add(
			LineDiscountAmount(item.SellingPrice, item.DiscountPercentage, line.Quantity))
	}
	totals.Total = totals.Subtotal.Sub(totals.DiscountAmount)
	return totals
}

// Clear removes all lines from the cart.
func (c *Cart) Clear() {
	c.lines = nil
}
