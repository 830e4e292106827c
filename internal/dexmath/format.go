package dexmath

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// ToDecimal converts a raw token amount into its human-readable value given
// the token's decimals.
func ToDecimal(amount *uint256.Int, decimals int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount.ToBig(), -decimals)
}

// Format renders a raw token amount with the token's decimals, e.g.
// 1500000 with 6 decimals becomes "1.5".
func Format(amount *uint256.Int, decimals int32) string {
	return ToDecimal(amount, decimals).String()
}

// Scaled is Format as a float64. Precision loss is acceptable here because
// the value is only compared against configured thresholds.
func Scaled(amount *uint256.Int, decimals int32) float64 {
	return ToDecimal(amount, decimals).InexactFloat64()
}
