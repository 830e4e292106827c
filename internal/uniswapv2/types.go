package uniswapv2

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const (
	// FeeDenominator is the basis-point scale fees are expressed in.
	FeeDenominator = 10000

	// DefaultFeeBP is the Uniswap V2 pool fee, 0.3%.
	DefaultFeeBP = 30

	amountBits      = 128
	coefficientBits = 512
)

// MaxUint128 is the largest amount the engine accepts or returns.
var MaxUint128 = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), amountBits), 1)

// Reserves holds the balances of one constant-product pool. X is the pool's
// first asset, Y its second; the price of X is Y/X.
type Reserves struct {
	X *uint256.Int
	Y *uint256.Int
}

// NewReserves builds Reserves from uint64 balances.
func NewReserves(x, y uint64) Reserves {
	return Reserves{X: uint256.NewInt(x), Y: uint256.NewInt(y)}
}

func (r Reserves) validate() error {
	if r.X == nil || r.Y == nil || r.X.IsZero() || r.Y.IsZero() {
		return ErrZeroReserve
	}
	if r.X.BitLen() > amountBits || r.Y.BitLen() > amountBits {
		return errors.Wrap(ErrOverflow, "reserve exceeds 128 bits")
	}
	return nil
}

// Cheaper reports whether r prices X strictly lower than o does, comparing
// r.Y/r.X against o.Y/o.X by cross-multiplication.
func (r Reserves) Cheaper(o Reserves) bool {
	lhs := new(big.Int).Mul(r.Y.ToBig(), o.X.ToBig())
	rhs := new(big.Int).Mul(o.Y.ToBig(), r.X.ToBig())
	return lhs.Cmp(rhs) < 0
}

// Coefficients of A·t² + B·t − NegC = 0. The constant term is carried as a
// non-negative magnitude; all three values are non-negative.
type Coefficients struct {
	A    *big.Int
	B    *big.Int
	NegC *big.Int
}

func (c Coefficients) validate() error {
	for _, v := range []*big.Int{c.A, c.B, c.NegC} {
		if v == nil || v.Sign() < 0 {
			return ErrInvalidCoefficients
		}
		if v.BitLen() > coefficientBits {
			return errors.Wrap(ErrOverflow, "coefficient exceeds 512 bits")
		}
	}
	return nil
}

// TradeResult is the outcome of a simulated two-hop round trip.
type TradeResult struct {
	// Input is the amount of pool A's Y asset sold into pool A.
	Input *uint256.Int
	// Intermediate is the amount of X received from pool A and sold into pool B.
	Intermediate *uint256.Int
	// Output is the amount of Y recovered from pool B.
	Output *uint256.Int
	// Profit is Output - Input, floored at zero.
	Profit *uint256.Int
}

func zeroTrade() TradeResult {
	return TradeResult{
		Input:        new(uint256.Int),
		Intermediate: new(uint256.Int),
		Output:       new(uint256.Int),
		Profit:       new(uint256.Int),
	}
}

// Viable reports whether the trade has a non-zero input and a positive profit.
func (t TradeResult) Viable() bool {
	return t.Input != nil && !t.Input.IsZero() && t.Profit != nil && !t.Profit.IsZero()
}

func validateFee(feeBP uint32) error {
	if feeBP >= FeeDenominator {
		return errors.Wrapf(ErrInvalidFee, "fee %d bp", feeBP)
	}
	return nil
}
