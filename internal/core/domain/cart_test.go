package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clementech/checkout-be/internal/core/domain"
)

func testCatalog() *domain.Catalog {
	return domain.NewCatalog([]domain.Item{
		{
			ItemID:             "A1",
			Name:               "Nokia 3310",
			SellingPrice:       decimal.NewFromInt(100),
			DiscountPercentage: decimal.NewFromInt(10),
			StockQuantity:      2,
			Sector:             domain.SectorPhones,
		},
		{
			ItemID:        "B2",
			Name:          "ThinkPad X1",
			SellingPrice:  decimal.NewFromInt(1200),
			StockQuantity: 5,
			Sector:        domain.SectorLaptops,
		},
		{
			ItemID:            "C3",
			Name:              "Kettle",
			SellingPrice:      decimal.NewFromInt(30),
			StockQuantity:     3,
			LowStockThreshold: 3,
			Sector:            domain.SectorHousehold,
		},
	})
}

func TestCart_AddItem(t *testing.T) {
	catalog := testCatalog()
	cart := domain.NewCart()

	require.NoError(t, cart.AddItem("A1", catalog))
	require.NoError(t, cart.AddItem("a1", catalog), "case-insensitive id accumulates on one line")

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "A1", lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Quantity)

	// Stock is 2 and both units are reserved: the third add fails.
	err := cart.AddItem("A1", catalog)
	require.Error(t, err)

	var oos *domain.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, "A1", oos.ItemID)
	assert.Equal(t, 3, oos.Requested)
	assert.Equal(t, 2, oos.Available)
	assert.True(t, errors.Is(err, domain.ErrOutOfStock))

	// The failed add left the cart unchanged.
	assert.Equal(t, 2, cart.ReservedQuantity("A1"))
}

func TestCart_AddItem_UnknownItem(t *testing.T) {
	cart := domain.NewCart()

	err := cart.AddItem("nope", testCatalog())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrItemNotFound))
	assert.True(t, cart.IsEmpty())
}

func TestCart_RemoveLine(t *testing.T) {
	catalog := testCatalog()
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem("A1", catalog))
	require.NoError(t, cart.AddItem("A1", catalog))
	require.NoError(t, cart.AddItem("B2", catalog))

	assert.True(t, cart.RemoveLine("a1"), "removes the whole line, quantity included")
	assert.Equal(t, 0, cart.ReservedQuantity("A1"))
	assert.Equal(t, 1, cart.ReservedQuantity("B2"))

	assert.False(t, cart.RemoveLine("A1"), "already gone")
}

func TestCart_AvailableStock(t *testing.T) {
	catalog := testCatalog()
	cart := domain.NewCart()

	avail, err := cart.AvailableStock("A1", catalog)
	require.NoError(t, err)
	assert.Equal(t, 2, avail)

	require.NoError(t, cart.AddItem("A1", catalog))
	avail, err = cart.AvailableStock("A1", catalog)
	require.NoError(t, err)
	assert.Equal(t, 1, avail)

	_, err = cart.AvailableStock("nope", catalog)
	assert.True(t, errors.Is(err, domain.ErrItemNotFound))
}

func TestCart_LowStock(t *testing.T) {
	catalog := testCatalog()
	cart := domain.NewCart()

	// B2 has 5 in stock against the default threshold of 3.
	low, err := cart.LowStock("B2", catalog)
	require.NoError(t, err)
	assert.False(t, low)

	require.NoError(t, cart.AddItem("B2", catalog))
	require.NoError(t, cart.AddItem("B2", catalog))
	low, err = cart.LowStock("B2", catalog)
	require.NoError(t, err)
	assert.True(t, low, "reserving units counts against available stock")

	// C3 sits exactly at its threshold.
	low, err = cart.LowStock("C3", catalog)
	require.NoError(t, err)
	assert.True(t, low)
}

func TestCart_Totals(t *testing.T) {
	catalog := testCatalog()
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem("A1", catalog))
	require.NoError(t, cart.AddItem("A1", catalog))
	require.NoError(t, cart.AddItem("B2", catalog))

	totals := cart.Totals(catalog)
	// 2 x 100 + 1 x 1200 = 1400; discount 10% on the two A1 units = 20.
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(1400)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(20)), "discount %s", totals.DiscountAmount)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(1380)), "total %s", totals.Total)
}

func TestCart_Totals_RecomputedFromCatalog(t *testing.T) {
	catalog := testCatalog()
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem("A1", catalog))

	// Reprice through the live catalog pointer; totals must follow.
	catalog.FindByID("A1").SellingPrice = decimal.NewFromInt(200)
	totals := cart.Totals(catalog)
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)))

	// A line whose item left the catalog is skipped.
	rebuilt := domain.NewCatalog(nil)
	totals = cart.Totals(rebuilt)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestCart_Clear(t *testing.T) {
	catalog := testCatalog()
	cart := domain.NewCart()
	require.NoError(t, cart.AddItem("A1", catalog))
	require.False(t, cart.IsEmpty())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.Lines())
}
