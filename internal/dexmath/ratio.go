package dexmath

import "github.com/holiman/uint256"

// mantissaBits is the width of a float64 fraction.
const mantissaBits = 52

// Scale approximates num/den as a float64 for display and filtering.
//
// Both operands are shifted right by the same amount until the wider one
// fits the float64 mantissa, so the ratio is preserved while the division
// itself stays exact in the low bits. If the shift would discard every
// significant bit of the narrower operand the ratio is reported as 0.
// A zero operand also yields 0.
//
// Scale is not used on any path that decides a trade amount.
func Scale(num, den *uint256.Int) float64 {
	if num == nil || den == nil || num.IsZero() || den.IsZero() {
		return 0
	}

	nl2 := num.BitLen() - 1
	dl2 := den.BitLen() - 1

	drop := max(nl2, dl2) - mantissaBits
	if drop < 0 {
		drop = 0
	}
	if drop > nl2 || drop > dl2 {
		return 0
	}

	a := new(uint256.Int).Rsh(num, uint(drop))
	b := new(uint256.Int).Rsh(den, uint(drop))

	return float64(a.Uint64()) / float64(b.Uint64())
}
