// internal/core/domain/bill.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BillLine records one sold unit. A bill holding three units of the same
// item carries three lines. Unit price and discount are snapshotted at
// append time so a committed bill's totals stay stable even if the
// catalog item is repriced later.
type BillLine struct {
	ItemID             string          `json:"item_id"`
	ItemName           string          `json:"item_name"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// Bill is the permanent record of a completed sale.
type Bill struct {
	BillNumber     int64           `json:"bill_number"`
	BuyerInfo      string          `json:"buyer_info"`
	CreatedBy      string          `json:"created_by,omitempty"`
	DateCreated    time.Time       `json:"date_created"`
	Lines          []BillLine      `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// NewBill creates an empty bill with the given allocated number.
// Buyer info must not be blank.
func NewBill(number int64, buyerInfo, createdBy string) (*Bill, error) {
	if strings.TrimSpace(buyerInfo) == "" {
		return nil, ErrInvalidBuyerInfo
	}
	b := &Bill{
		BillNumber:  number,
		BuyerInfo:   strings.TrimSpace(buyerInfo),
		CreatedBy:   strings.TrimSpace(createdBy),
		DateCreated: time.Now(),
	}
	b.RecalcTotals()
	return b, nil
}

// AppendUnit appends one sold unit of the item and recomputes totals.
// Stock bookkeeping belongs to the checkout service; the bill only
// records the sale.
func (b *Bill) AppendUnit(item *Item) {
	b.Lines = append(b.Lines, BillLine{
		ItemID:             item.ItemID,
		ItemName:           item.Name,
		UnitPrice:          item.SellingPrice,
		DiscountPercentage: ClampDiscount(item.DiscountPercentage),
	})
	b.RecalcTotals()
}

// RemoveUnit removes the first line matching the given item id and
// recomputes totals. Returns false when the bill holds no such line.
func (b *Bill) RemoveUnit(itemID string) bool {
	for i := range b.Lines {
		if NormalizeID(b.Lines[i].ItemID) == NormalizeID(itemID) {
			b.Lines = append(b.Lines[:i], b.Lines[i+1:]...)
			b.RecalcTotals()
			return true
		}
	}
	return false
}

// UnitCount returns the number of sold units on the bill.
func (b *Bill) UnitCount() int {
	return len(b.Lines)
}

// UnitsOf returns how many units of the given item the bill carries.
func (b *Bill) UnitsOf(itemID string) int {
	n := 0
	for _, line := range b.Lines {
		if NormalizeID(line.ItemID) == NormalizeID(itemID) {
			n++
		}
	}
	return n
}

// RecalcTotals recomputes subtotal, discount amount and total from the
// current lines. The invariant Total == Subtotal - DiscountAmount holds
// exactly after every call.
func (b *Bill) RecalcTotals() {
	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, line := range b.Lines {
		pct := ClampDiscount(line.DiscountPercentage)
		subtotal = subtotal.Add(line.UnitPrice)
		discount = discount.Add(line.UnitPrice.Mul(pct.Div(oneHundred)))
	}
	b.Subtotal = subtotal
	b.DiscountAmount = discount
	b.Total = subtotal.Sub(discount)
}
