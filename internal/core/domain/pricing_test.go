package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clementech/checkout-be/internal/core/domain"
)

func TestClampDiscount(t *testing.T) {
	tests := []struct {
		name string
		pct  decimal.Decimal
		want decimal.Decimal
	}{
		{name: "in_range", pct: decimal.NewFromInt(25), want: decimal.NewFromInt(25)},
		{name: "zero", pct: decimal.Zero, want: decimal.Zero},
		{name: "hundred", pct: decimal.NewFromInt(100), want: decimal.NewFromInt(100)},
		{name: "negative_clamps_to_zero", pct: decimal.NewFromInt(-5), want: decimal.Zero},
		{name: "over_hundred_clamps_to_hundred", pct: decimal.NewFromInt(150), want: decimal.NewFromInt(100)},
		{name: "fractional", pct: decimal.NewFromFloat(12.5), want: decimal.NewFromFloat(12.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ClampDiscount(tt.pct)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestEffectiveUnitPrice(t *testing.T) {
	tests := []struct {
		name    string
		selling decimal.Decimal
		pct     decimal.Decimal
		want    decimal.Decimal
	}{
		{
			name:    "ten_percent_off",
			selling: decimal.NewFromInt(100),
			pct:     decimal.NewFromInt(10),
			want:    decimal.NewFromInt(90),
		},
		{
			name:    "no_discount",
			selling: decimal.NewFromFloat(49.99),
			pct:     decimal.Zero,
			want:    decimal.NewFromFloat(49.99),
		},
		{
			name:    "full_discount_is_free",
			selling: decimal.NewFromInt(100),
			pct:     decimal.NewFromInt(100),
			want:    decimal.Zero,
		},
		{
			name:    "over_hundred_clamps_never_negative",
			selling: decimal.NewFromInt(100),
			pct:     decimal.NewFromInt(200),
			want:    decimal.Zero,
		},
		{
			name:    "negative_discount_clamps_to_full_price",
			selling: decimal.NewFromInt(80),
			pct:     decimal.NewFromInt(-10),
			want:    decimal.NewFromInt(80),
		},
		{
			name:    "negative_price_floors_at_zero",
			selling: decimal.NewFromInt(-10),
			pct:     decimal.Zero,
			want:    decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.EffectiveUnitPrice(tt.selling, tt.pct)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestLineDiscountAmount(t *testing.T) {
	tests := []struct {
		name    string
		selling decimal.Decimal
		pct     decimal.Decimal
		qty     int
		want    decimal.Decimal
	}{
		{
			name:    "ten_percent_over_three_units",
			selling: decimal.NewFromInt(100),
			pct:     decimal.NewFromInt(10),
			qty:     3,
			want:    decimal.NewFromInt(30),
		},
		{
			name:    "zero_quantity",
			selling: decimal.NewFromInt(100),
			pct:     decimal.NewFromInt(10),
			qty:     0,
			want:    decimal.Zero,
		},
		{
			name:    "no_discount",
			selling: decimal.NewFromInt(100),
			pct:     decimal.Zero,
			qty:     5,
			want:    decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.LineDiscountAmount(tt.selling, tt.pct, tt.qty)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "100.00", domain.FormatMoney(decimal.NewFromInt(100)))
	assert.Equal(t, "49.99", domain.FormatMoney(decimal.NewFromFloat(49.99)))
	assert.Equal(t, "0.33", domain.FormatMoney(decimal.NewFromFloat(0.333)))
}
