// internal/core/domain/catalog.go
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog is an in-memory index over a loaded item collection, keyed by
// normalized item id. It exists so callers always resolve items by stable
// id instead of holding long-lived references across a reload boundary:
// build a fresh Catalog from LoadAll, mutate through FindByID, then hand
// Items() back to SaveAll.
type Catalog struct {
	items []*Item
	byID  map[string]*Item
}

// NewCatalog builds an index over a copy of the given items. Later ids
// win on (invalid) case-insensitive duplicates.
func NewCatalog(items []Item) *Catalog {
	c := &Catalog{
		items: make([]*Item, 0, len(items)),
		byID:  make(map[string]*Item, len(items)),
	}
	for i := range items {
		item := items[i]
		c.items = append(c.items, &item)
		c.byID[NormalizeID(item.ItemID)] = &item
	}
	return c
}

// FindByID returns the live indexed item for a case-insensitive id match,
// or nil when absent. Mutations through the returned pointer are visible
// in Items().
func (c *Catalog) FindByID(itemID string) *Item {
	return c.byID[NormalizeID(itemID)]
}

// Items returns the current collection by value, in load order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	for i, item := range c.items {
		out[i] = *item
	}
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Search returns items whose id or name contains the query,
// case-insensitively. A blank query returns everything.
func (c *Catalog) Search(query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Items()
	}
	var out []Item
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.ItemID), q) ||
			strings.Contains(strings.ToLower(item.Name), q) {
			out = append(out, *item)
		}
	}
	return out
}

// TotalValue returns the summed selling value of all stock on hand.
func (c *Catalog) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.SellingPrice.Mul(decimal.NewFromInt(int64(item.StockQuantity))))
	}
	return total
}
