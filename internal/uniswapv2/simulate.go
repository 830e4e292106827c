package uniswapv2

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Simulate sizes the arbitrage between pool a (cheaper X) and pool b with
// the same fee on both, then replays it: sell the optimal amount of Y into a,
// sell the X received into b. Neither Reserves value is modified.
func Simulate(a, b Reserves, feeBP uint32) (TradeResult, error) {
	return SimulateWithFees(a, b, feeBP, feeBP)
}

// SimulateWithFees is Simulate for pools charging different fees.
//
// Errors from Derive and Solve are returned as is. An optimal input of zero
// yields a zero TradeResult and no error.
func SimulateWithFees(a, b Reserves, feeA, feeB uint32) (TradeResult, error) {
	coef, err := DeriveWithFees(a, b, feeA, feeB)
	if err != nil {
		return TradeResult{}, err
	}

	in, err := Solve(coef)
	if err != nil {
		return TradeResult{}, err
	}
	if in.IsZero() {
		return zeroTrade(), nil
	}

	step1, err := SwapOutWithFee(in, a.Y, a.X, feeA)
	if err != nil {
		return TradeResult{}, errors.Wrap(err, "pool a swap")
	}
	step2, err := SwapOutWithFee(step1, b.X, b.Y, feeB)
	if err != nil {
		return TradeResult{}, errors.Wrap(err, "pool b swap")
	}

	profit := new(uint256.Int)
	if step2.Gt(in) {
		profit.Sub(step2, in)
	}

	return TradeResult{
		Input:        in,
		Intermediate: step1,
		Output:       step2,
		Profit:       profit,
	}, nil
}
