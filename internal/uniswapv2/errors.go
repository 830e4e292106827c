package uniswapv2

import "github.com/pkg/errors"

var (
	// ErrDivisionByZero is returned when a degenerate zero reserve or a zero
	// leading coefficient would collapse a denominator.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNoArbitrage is returned when the pools are priced so that no trade
	// direction is profitable even before fees.
	ErrNoArbitrage = errors.New("no arbitrage")

	// ErrNoArbitrageAfterFee is returned when a raw price gap exists but is
	// fully absorbed by the pool fees.
	ErrNoArbitrageAfterFee = errors.New("no arbitrage after fee")

	// ErrOverflow is returned when a value exceeds the working width chosen for it.
	ErrOverflow = errors.New("overflow")

	// ErrZeroReserve is returned when a pool with an empty side is simulated.
	ErrZeroReserve = errors.New("zero reserve")

	// ErrInvalidFee is returned for fee rates outside [0, 10000) basis points.
	ErrInvalidFee = errors.New("invalid fee")

	// ErrInvalidCoefficients is returned for missing or negative coefficients.
	ErrInvalidCoefficients = errors.New("invalid coefficients")
)

// IsNoArbitrage reports whether err is one of the expected "no opportunity"
// outcomes rather than a computational failure.
func IsNoArbitrage(err error) bool {
	return errors.Is(err, ErrNoArbitrage) || errors.Is(err, ErrNoArbitrageAfterFee)
}
