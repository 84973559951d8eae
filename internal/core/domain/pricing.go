// internal/core/domain/pricing.go
package domain

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// ClampDiscount clamps a discount percentage into [0,100].
// Persisted data may carry out-of-range values; every pricing rule
// clamps before use so a price can never go negative.
func ClampDiscount(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(oneHundred) {
		return oneHundred
	}
	return pct
}

// EffectiveUnitPrice returns sellingPrice * (1 - pct/100) with the
// percentage clamped to [0,100].
func EffectiveUnitPrice(sellingPrice, pct decimal.Decimal) decimal.Decimal {
	if sellingPrice.IsNegative() {
		return decimal.Zero
	}
	discount := ClampDiscount(pct).Div(oneHundred)
	return sellingPrice.Mul(decimal.NewFromInt(1).Sub(discount))
}

// LineDiscountAmount returns the total discount over qty units:
// sellingPrice * qty * (pct/100).
func LineDiscountAmount(sellingPrice, pct decimal.Decimal, qty int) decimal.Decimal {
	if sellingPrice.IsNegative() || qty <= 0 {
		return decimal.Zero
	}
	discount := ClampDiscount(pct).Div(oneHundred)
	return sellingPrice.Mul(decimal.NewFromInt(int64(qty))).Mul(discount)
}

// FormatMoney renders an amount with two decimal places. Internal
// computation keeps full precision; rounding happens only here, at the
// presentation boundary.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
