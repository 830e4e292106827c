package uniswapv2

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Solve returns the positive root of A·t² + B·t − NegC = 0:
//
//	t = (isqrt(B² + 4·A·NegC) − B) / (2·A)
//
// Both the square root and the division are floored. Coefficients are at
// most 512 bits wide, so the discriminant is computed at double that width.
// The discriminant is never negative and its root is never below B.
//
// A root wider than 128 bits saturates to MaxUint128.
func Solve(c Coefficients) (*uint256.Int, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if c.A.Sign() == 0 {
		return nil, errors.Wrap(ErrDivisionByZero, "leading coefficient is zero")
	}

	delta := new(big.Int).Mul(c.B, c.B)
	ac4 := new(big.Int).Mul(c.A, c.NegC)
	ac4.Lsh(ac4, 2)
	delta.Add(delta, ac4)

	root := delta.Sqrt(delta)
	root.Sub(root, c.B)
	root.Quo(root, new(big.Int).Lsh(c.A, 1))

	if root.BitLen() > amountBits {
		return MaxUint128.Clone(), nil
	}
	out, _ := uint256.FromBig(root)
	return out, nil
}
