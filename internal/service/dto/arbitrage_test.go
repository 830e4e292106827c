package dto

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/fleshka4/gofi/internal/uniswapv2"
)

var (
	weth = Coin{Address: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), Symbol: "WETH", Decimals: 18}
	usdt = Coin{Address: common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"), Symbol: "USDT", Decimals: 6}
)

func snapshot(addr string, x, y uint64, ts uint64) PoolSnapshot {
	return PoolSnapshot{
		Pool:           Pool{Address: common.HexToAddress(addr), Coin0: weth, Coin1: usdt},
		Reserves:       uniswapv2.NewReserves(x, y),
		BlockTimestamp: ts,
	}
}

func TestPair_Oriented(t *testing.T) {
	t.Parallel()

	cheap := snapshot("0x01", 310000, 210000, 0)
	dear := snapshot("0x02", 220000, 320000, 0)

	got, ok := Pair{Pool0: dear, Pool1: cheap}.Oriented()
	assert.True(t, ok)
	assert.Equal(t, cheap.Pool.Address, got.Pool0.Pool.Address)
	assert.Equal(t, dear.Pool.Address, got.Pool1.Pool.Address)

	got, ok = Pair{Pool0: cheap, Pool1: dear}.Oriented()
	assert.True(t, ok)
	assert.Equal(t, cheap.Pool.Address, got.Pool0.Pool.Address)

	_, ok = Pair{Pool0: snapshot("0x01", 2, 4, 0), Pool1: snapshot("0x02", 1, 2, 0)}.Oriented()
	assert.False(t, ok)
}

func TestPoolSnapshot_Price(t *testing.T) {
	t.Parallel()

	// 1 WETH : 2500 USDT
	p := PoolSnapshot{
		Pool:     Pool{Coin0: weth, Coin1: usdt},
		Reserves: uniswapv2.Reserves{X: uint256.MustFromDecimal("1000000000000000000"), Y: uint256.NewInt(2_500_000_000)},
	}
	assert.InDelta(t, 2500.0, p.Price(), 1e-6)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	m := Match{
		Pair: Pair{
			Pool0: snapshot("0x0000000000000000000000000000000000000001", 1e18, 2_500_000_000, 1700000000),
			Pool1: snapshot("0x0000000000000000000000000000000000000002", 1e18, 2_510_000_000, 1700000012),
		},
		Trade: uniswapv2.TradeResult{
			Input:        uint256.NewInt(1543173),
			Intermediate: uint256.NewInt(618082166611520),
			Output:       uint256.NewInt(1571794),
			Profit:       uint256.NewInt(28621),
		},
	}

	assert.Equal(t, usdt, m.QuoteCoin())
	assert.InDelta(t, 0.028621, m.ScaledProfit(), 1e-12)
	assert.Equal(t,
		"1.5432USDT profit:0.0286USDT "+
			"p0:0x0000000000000000000000000000000000000001 @2500.00 #2023-11-14 22:13:20 "+
			"p1:0x0000000000000000000000000000000000000002 @2510.00 #2023-11-14 22:13:32",
		m.String())

	assert.True(t, Match{}.Profit().IsZero())
}
