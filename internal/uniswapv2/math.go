package uniswapv2

import (
	"math/big"
	"sync"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Uniswap V2 fee constants: 0.3% = 997/1000.
var (
	feeMul = uint256.NewInt(997)
	feeDen = uint256.NewInt(1000)
)

type wideTmp struct {
	a, b, c big.Int
}

var widePool = sync.Pool{
	New: func() any {
		return new(wideTmp)
	},
}

// SwapOut computes the amount of Y received for selling dx of X into a pool
// holding reserves (x, y), using the Uniswap V2 formula:
//
//	dy = 997*dx*y / (1000*x + 997*dx)
//
// Division truncates exactly like the on-chain router. A zero reserve is
// rejected with ErrDivisionByZero; dx == 0 yields 0. The result is always
// strictly less than y.
func SwapOut(dx, x, y *uint256.Int) (*uint256.Int, error) {
	return swapOut(dx, x, y, feeMul, feeDen)
}

// SwapOutWithFee is SwapOut with the fee given in basis points. With
// DefaultFeeBP it returns exactly what SwapOut returns.
func SwapOutWithFee(dx, x, y *uint256.Int, feeBP uint32) (*uint256.Int, error) {
	if err := validateFee(feeBP); err != nil {
		return nil, err
	}
	return swapOut(dx, x, y, uint256.NewInt(uint64(FeeDenominator-feeBP)), uint256.NewInt(FeeDenominator))
}

func swapOut(dx, x, y, mul, den *uint256.Int) (*uint256.Int, error) {
	if x == nil || y == nil || x.IsZero() || y.IsZero() {
		return nil, errors.Wrap(ErrDivisionByZero, "zero reserve")
	}
	if dx == nil || dx.IsZero() {
		return new(uint256.Int), nil
	}

	// ainFee := dx * mul.
	ainFee, o1 := new(uint256.Int).MulOverflow(dx, mul)
	// num := ainFee * y.
	num, o2 := new(uint256.Int).MulOverflow(ainFee, y)
	// d := x * den + ainFee.
	d, o3 := new(uint256.Int).MulOverflow(x, den)
	_, o4 := d.AddOverflow(d, ainFee)
	if o1 || o2 || o3 || o4 {
		return swapOutWide(dx, x, y, mul, den), nil
	}

	return num.Div(num, d), nil
}

// swapOutWide is the arbitrary-precision path for inputs whose product does
// not fit 256 bits. The quotient is below y, so it always fits back.
func swapOutWide(dx, x, y, mul, den *uint256.Int) *uint256.Int {
	t := widePool.Get().(*wideTmp)
	defer widePool.Put(t)

	t.a.Mul(dx.ToBig(), mul.ToBig())
	t.b.Mul(&t.a, y.ToBig())
	t.c.Mul(x.ToBig(), den.ToBig())
	t.c.Add(&t.c, &t.a)
	t.b.Quo(&t.b, &t.c)

	out, _ := uint256.FromBig(&t.b)
	return out
}
