package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clementech/checkout-be/internal/core/domain"
)

func TestNewBill(t *testing.T) {
	bill, err := domain.NewBill(7, "  Jane Doe  ", "operator1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), bill.BillNumber)
	assert.Equal(t, "Jane Doe", bill.BuyerInfo)
	assert.Equal(t, "operator1", bill.CreatedBy)
	assert.False(t, bill.DateCreated.IsZero())
	assert.True(t, bill.Total.IsZero())

	_, err = domain.NewBill(8, "   ", "operator1")
	assert.ErrorIs(t, err, domain.ErrInvalidBuyerInfo)
}

func TestBill_AppendUnit(t *testing.T) {
	item := &domain.Item{
		ItemID:             "A1",
		Name:               "Nokia 3310",
		SellingPrice:       decimal.NewFromInt(100),
		DiscountPercentage: decimal.NewFromInt(10),
	}

	bill, err := domain.NewBill(1, "Jane Doe", "operator1")
	require.NoError(t, err)

	bill.AppendUnit(item)
	bill.AppendUnit(item)

	require.Equal(t, 2, bill.UnitCount())
	assert.Equal(t, 2, bill.UnitsOf("a1"))

	line := bill.Lines[0]
	assert.Equal(t, "A1", line.ItemID)
	assert.Equal(t, "Nokia 3310", line.ItemName)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, line.DiscountPercentage.Equal(decimal.NewFromInt(10)))

	assert.True(t, bill.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal %s", bill.Subtotal)
	assert.True(t, bill.DiscountAmount.Equal(decimal.NewFromInt(20)), "discount %s", bill.DiscountAmount)
	assert.True(t, bill.Total.Equal(decimal.NewFromInt(180)), "total %s", bill.Total)
}

func TestBill_LinesSnapshotPricing(t *testing.T) {
	item := &domain.Item{
		ItemID:       "A1",
		Name:         "Nokia 3310",
		SellingPrice: decimal.NewFromInt(100),
	}

	bill, err := domain.NewBill(1, "Jane Doe", "")
	require.NoError(t, err)
	bill.AppendUnit(item)

	// Repricing the catalog item does not touch a committed line.
	item.SellingPrice = decimal.NewFromInt(500)
	bill.RecalcTotals()
	assert.True(t, bill.Total.Equal(decimal.NewFromInt(100)))
}

func TestBill_RemoveUnit(t *testing.T) {
	a := &domain.Item{ItemID: "A1", Name: "Nokia 3310", SellingPrice: decimal.NewFromInt(100)}
	b := &domain.Item{ItemID: "B2", Name: "ThinkPad X1", SellingPrice: decimal.NewFromInt(1200)}

	bill, err := domain.NewBill(1, "Jane Doe", "")
	require.NoError(t, err)
	bill.AppendUnit(a)
	bill.AppendUnit(a)
	bill.AppendUnit(b)

	require.True(t, bill.RemoveUnit("a1"), "removes exactly one unit")
	assert.Equal(t, 1, bill.UnitsOf("A1"))
	assert.Equal(t, 2, bill.UnitCount())
	assert.True(t, bill.Total.Equal(decimal.NewFromInt(1300)))

	require.True(t, bill.RemoveUnit("A1"))
	assert.False(t, bill.RemoveUnit("A1"), "no unit left to remove")
	assert.True(t, bill.Total.Equal(decimal.NewFromInt(1200)))
}

func TestBill_RecalcTotals_Invariant(t *testing.T) {
	bill := &domain.Bill{
		Lines: []domain.BillLine{
			{ItemID: "A1", UnitPrice: decimal.NewFromFloat(33.33), DiscountPercentage: decimal.NewFromFloat(7.5)},
			{ItemID: "B2", UnitPrice: decimal.NewFromFloat(19.99)},
			{ItemID: "C3", UnitPrice: decimal.NewFromInt(250), DiscountPercentage: decimal.NewFromInt(150)},
		},
	}

	bill.RecalcTotals()
	assert.True(t, bill.Total.Equal(bill.Subtotal.Sub(bill.DiscountAmount)),
		"total %s must equal subtotal %s minus discount %s", bill.Total, bill.Subtotal, bill.DiscountAmount)

	// The 150% line clamps to 100%: that unit is fully discounted.
	expectedDiscount := decimal.NewFromFloat(33.33).
		Mul(decimal.NewFromFloat(0.075)).
		Add(decimal.NewFromInt(250))
	assert.True(t, bill.DiscountAmount.Equal(expectedDiscount), "discount %s", bill.DiscountAmount)
}
