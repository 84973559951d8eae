// internal/core/domain/item.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sector represents the sales-floor category an item belongs to
type Sector string

// Sector constants
const (
	SectorPhones      Sector = "phones"
	SectorLaptops     Sector = "laptops"
	SectorTablets     Sector = "tablets"
	SectorTVs         Sector = "tvs"
	SectorHousehold   Sector = "household"
	SectorAccessories Sector = "accessories"
	SectorOther       Sector = "other"
)

// DefaultLowStockThreshold is the stock level at or below which an item
// is flagged as running low.
const DefaultLowStockThreshold = 3

// Item represents a single sellable catalog entry.
//
// Item identity is the ItemID compared case-insensitively; two items with
// ids "a1" and "A1" are the same item.
type Item struct {
	ItemID             string          `json:"item_id"`
	Name               string          `json:"name"`
	Brand              string          `json:"brand,omitempty"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	SellingPrice       decimal.Decimal `json:"selling_price"`
	StockQuantity      int             `json:"stock_quantity"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Sector             Sector          `json:"sector"`
	SupplierName       string          `json:"supplier_name,omitempty"`
	NumberSold         int             `json:"number_sold"`
	DateSold           *time.Time      `json:"date_sold,omitempty"`
	DateBought         *time.Time      `json:"date_bought,omitempty"`
	LowStockThreshold  int             `json:"low_stock_threshold"`
}

// Validate performs domain validation on the item and applies defaults
func (i *Item) Validate() error {
	if strings.TrimSpace(i.ItemID) == "" {
		return fmt.Errorf("item_id is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if i.PurchasePrice.IsNegative() {
		return fmt.Errorf("purchase_price cannot be negative")
	}
	if i.SellingPrice.IsNegative() {
		return fmt.Errorf("selling_price cannot be negative")
	}
	if i.StockQuantity < 0 {
		return fmt.Errorf("stock_quantity cannot be negative")
	}
	if i.NumberSold < 0 {
		return fmt.Errorf("number_sold cannot be negative")
	}
	if i.Sector == "" {
		i.Sector = SectorOther
	}
	if i.LowStockThreshold <= 0 {
		i.LowStockThreshold = DefaultLowStockThreshold
	}
	i.DiscountPercentage = ClampDiscount(i.DiscountPercentage)
	return nil
}

// SameID reports whether the item's id matches the given id,
// ignoring case and surrounding whitespace.
func (i *Item) SameID(itemID string) bool {
	return strings.EqualFold(strings.TrimSpace(i.ItemID), strings.TrimSpace(itemID))
}

// Equal reports whether two items refer to the same catalog entry.
// Items with blank ids are never equal.
func (i *Item) Equal(other *Item) bool {
	if other == nil || i.ItemID == "" || other.ItemID == "" {
		return false
	}
	return i.SameID(other.ItemID)
}

// EffectiveUnitPrice returns the discounted selling price for one unit.
func (i *Item) EffectiveUnitPrice() decimal.Decimal {
	return EffectiveUnitPrice(i.SellingPrice, i.DiscountPercentage)
}

// Threshold returns the configured low-stock threshold, falling back to
// the default when unset.
func (i *Item) Threshold() int {
	if i.LowStockThreshold <= 0 {
		return DefaultLowStockThreshold
	}
	return i.LowStockThreshold
}

// NormalizeID canonicalizes an item id for index lookups.
func NormalizeID(itemID string) string {
	return strings.ToLower(strings.TrimSpace(itemID))
}
