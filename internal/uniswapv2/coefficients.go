package uniswapv2

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	bigFeeDen  = big.NewInt(FeeDenominator)
	bigFeeDen2 = big.NewInt(FeeDenominator * FeeDenominator)
)

// Derive returns the coefficients of the quadratic whose positive root is
// the profit-maximising amount of a.Y to sell into pool a and route through
// pool b. Pool a must be the one pricing X lower (a.Y/a.X < b.Y/b.X). Both
// pools charge feeBP.
func Derive(a, b Reserves, feeBP uint32) (Coefficients, error) {
	return DeriveWithFees(a, b, feeBP, feeBP)
}

// DeriveWithFees is Derive for pools charging different fees. With
// γa = 1 - feeA and γb = 1 - feeB:
//
//	K   = γa·bx + γa·γb·ax
//	A   = K²
//	B   = 2·K·ay·bx
//	c1  = (ay·bx)²
//	c2  = γa·γb·ax·ay·bx·by
//	NegC = c2 - c1
//
// Fee factors are applied as exact integer ratios over 10000 and each scaled
// term is floored. When c1 > c2 the pools admit no profitable trade and
// ErrNoArbitrageAfterFee or ErrNoArbitrage is returned, depending on whether
// the fee-less cross term c21 = ax·ay·bx·by exceeds c1.
func DeriveWithFees(a, b Reserves, feeA, feeB uint32) (Coefficients, error) {
	if err := a.validate(); err != nil {
		return Coefficients{}, errors.Wrap(err, "pool a")
	}
	if err := b.validate(); err != nil {
		return Coefficients{}, errors.Wrap(err, "pool b")
	}
	if err := validateFee(feeA); err != nil {
		return Coefficients{}, err
	}
	if err := validateFee(feeB); err != nil {
		return Coefficients{}, err
	}

	ax, ay := a.X.ToBig(), a.Y.ToBig()
	bx, by := b.X.ToBig(), b.Y.ToBig()
	ga := big.NewInt(int64(FeeDenominator - feeA))
	gab := new(big.Int).Mul(ga, big.NewInt(int64(FeeDenominator-feeB)))

	// k = γa*bx/10000 + γa*γb*ax/10000².
	k := new(big.Int).Mul(ga, bx)
	k.Quo(k, bigFeeDen)
	k2 := new(big.Int).Mul(gab, ax)
	k2.Quo(k2, bigFeeDen2)
	k.Add(k, k2)

	ybx := new(big.Int).Mul(ay, bx)

	coefA := new(big.Int).Mul(k, k)
	coefB := new(big.Int).Mul(k, ybx)
	coefB.Lsh(coefB, 1)

	c1 := new(big.Int).Mul(ybx, ybx)
	c21 := new(big.Int).Mul(ybx, ax)
	c21.Mul(c21, by)
	c2 := new(big.Int).Mul(gab, c21)
	c2.Quo(c2, bigFeeDen2)

	if c1.Cmp(c2) > 0 {
		if c1.Cmp(c21) < 0 {
			return Coefficients{}, ErrNoArbitrageAfterFee
		}
		return Coefficients{}, ErrNoArbitrage
	}

	c := Coefficients{A: coefA, B: coefB, NegC: c2.Sub(c2, c1)}
	if err := c.validate(); err != nil {
		return Coefficients{}, err
	}
	return c, nil
}
