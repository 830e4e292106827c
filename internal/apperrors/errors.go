package apperrors

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when the request parameters are invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientLiquidity is returned when a pool has an empty reserve
	// and cannot be traded against.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")

	// ErrPairRead is returned when fetching pair data (tokens or reserves) fails,
	// typically due to an RPC or ABI decoding error.
	ErrPairRead = errors.New("pair read failed")

	// ErrPairMismatch is returned when two pools do not trade the same tokens.
	ErrPairMismatch = errors.New("pools trade different tokens")

	// ErrNoOpportunity is returned when two pools admit no profitable trade.
	ErrNoOpportunity = errors.New("no arbitrage opportunity")
)
