package dto

import (
	"fmt"
	"math"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/fleshka4/gofi/internal/dexmath"
	"github.com/fleshka4/gofi/internal/uniswapv2"
)

// Coin is an ERC20 token with its display metadata.
type Coin struct {
	Address  common.Address
	Symbol   string
	Decimals int32
}

// Pool is a Uniswap V2 pair. Coin0 is the pair's token0 (X), Coin1 its token1 (Y).
type Pool struct {
	Address common.Address
	Coin0   Coin
	Coin1   Coin
}

// PoolSnapshot is a pool with reserves observed at a block.
type PoolSnapshot struct {
	Pool           Pool
	Reserves       uniswapv2.Reserves
	BlockNumber    uint64
	BlockTimestamp uint64
}

// Price returns the human-readable price of Coin0 in Coin1.
func (p PoolSnapshot) Price() float64 {
	raw := dexmath.Scale(p.Reserves.Y, p.Reserves.X)
	return raw * math.Pow10(int(p.Pool.Coin0.Decimals-p.Pool.Coin1.Decimals))
}

// BlockTime formats the snapshot's block timestamp in UTC.
func (p PoolSnapshot) BlockTime() string {
	return time.Unix(int64(p.BlockTimestamp), 0).UTC().Format(time.DateTime)
}

// Pair is two pools trading the same token0/token1.
type Pair struct {
	Pool0 PoolSnapshot
	Pool1 PoolSnapshot
}

// Oriented returns the pair with Pool0 being the pool that prices X lower.
// ok is false when both pools quote the same price.
func (p Pair) Oriented() (oriented Pair, ok bool) {
	switch {
	case p.Pool0.Reserves.Cheaper(p.Pool1.Reserves):
		return p, true
	case p.Pool1.Reserves.Cheaper(p.Pool0.Reserves):
		return Pair{Pool0: p.Pool1, Pool1: p.Pool0}, true
	default:
		return p, false
	}
}

// Match is a simulated round trip over a Pair: sell Y into Pool0, sell the X
// received into Pool1.
type Match struct {
	Pair  Pair
	Trade uniswapv2.TradeResult
}

// QuoteCoin is the coin the trade starts and ends in.
func (m Match) QuoteCoin() Coin {
	return m.Pair.Pool0.Pool.Coin1
}

// Profit returns the raw profit in QuoteCoin units.
func (m Match) Profit() *uint256.Int {
	if m.Trade.Profit == nil {
		return new(uint256.Int)
	}
	return m.Trade.Profit
}

// ScaledProfit returns the profit in whole QuoteCoin.
func (m Match) ScaledProfit() float64 {
	return dexmath.Scaled(m.Profit(), m.QuoteCoin().Decimals)
}

// String renders a one-line summary.
func (m Match) String() string {
	quote := m.QuoteCoin()
	return fmt.Sprintf("%s%s profit:%s%s p0:%s @%.2f #%s p1:%s @%.2f #%s",
		dexmath.ToDecimal(m.Trade.Input, quote.Decimals).StringFixed(4),
		quote.Symbol,
		dexmath.ToDecimal(m.Profit(), quote.Decimals).StringFixed(4),
		quote.Symbol,
		m.Pair.Pool0.Pool.Address.Hex(),
		m.Pair.Pool0.Price(),
		m.Pair.Pool0.BlockTime(),
		m.Pair.Pool1.Pool.Address.Hex(),
		m.Pair.Pool1.Price(),
		m.Pair.Pool1.BlockTime(),
	)
}

// SimulateRequest asks for an on-demand simulation between two pools.
type SimulateRequest struct {
	PoolA common.Address
	PoolB common.Address
}
