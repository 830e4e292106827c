package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fleshka4/gofi/internal/infra/uniswap"
	uniswapmock "github.com/fleshka4/gofi/internal/infra/uniswap/mock"
	"github.com/fleshka4/gofi/internal/service"
	"github.com/fleshka4/gofi/internal/service/dto"
	"github.com/fleshka4/gofi/internal/service/mock"
	"github.com/fleshka4/gofi/internal/uniswapv2"
)

var (
	weth  = dto.Coin{Address: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), Symbol: "WETH", Decimals: 18}
	usdt  = dto.Coin{Address: common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"), Symbol: "USDT", Decimals: 6}
	poolA = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	poolB = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

func TestParsePools(t *testing.T) {
	t.Parallel()

	pools, err := parsePools(" 0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc,,0x0d4a11d5eeaac28ec3f61d100daf4d40471f1852 ")
	require.NoError(t, err)
	assert.Equal(t, []common.Address{
		common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"),
		common.HexToAddress("0x0d4a11d5EEaaC28EC3F61d100daF4d40471f1852"),
	}, pools)

	_, err = parsePools("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc,0x1234")
	require.Error(t, err)
}

type roundFixture struct {
	client *uniswapmock.MockClient
	store  *mock.MockStore
	out    bytes.Buffer
	round  round
}

func newRound(t *testing.T) *roundFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &roundFixture{
		client: uniswapmock.NewMockClient(ctrl),
		store:  mock.NewMockStore(ctrl),
	}
	svc := service.NewArbitrageService(slog.New(slog.NewTextHandler(io.Discard, nil)), f.client, f.store, nil, service.Options{
		BaseToken:  weth.Address,
		QuoteToken: usdt.Address,
		FeeBP:      uniswapv2.DefaultFeeBP,
		MinProfit:  0.01,
		Workers:    1,
		DryRun:     true,
	})
	f.round = round{svc: svc, out: &f.out}

	pool := func(addr common.Address, x, y uint64) dto.PoolSnapshot {
		return dto.PoolSnapshot{
			Pool:     dto.Pool{Address: addr, Coin0: weth, Coin1: usdt},
			Reserves: uniswapv2.NewReserves(x, y),
		}
	}
	f.store.EXPECT().PairsWith(gomock.Any(), weth.Address).Return([]dto.Pair{
		{Pool0: pool(poolA, 220000, 320000), Pool1: pool(poolB, 310000, 210000)},
	}, nil)
	return f
}

func (f *roundFixture) expectRefresh(a, b uniswap.Reserves) {
	f.client.EXPECT().BlockNumber(gomock.Any()).Return(uint64(101), nil)
	f.client.EXPECT().GetPairReserves(gomock.Any(), poolA).Return(a, nil)
	f.client.EXPECT().GetPairReserves(gomock.Any(), poolB).Return(b, nil)
	f.store.EXPECT().InsertBlock(gomock.Any(), uint64(101), gomock.Any()).Return(nil)
	f.store.EXPECT().InsertReserve(gomock.Any(), gomock.Any(), uint64(101), gomock.Any()).Return(nil).Times(2)
}

func reserves(x, y uint64) uniswap.Reserves {
	return uniswap.Reserves{Reserve0: uint256.NewInt(x), Reserve1: uint256.NewInt(y)}
}

func TestRound(t *testing.T) {
	t.Parallel()

	t.Run("gap closed before execution", func(t *testing.T) {
		t.Parallel()

		f := newRound(t)
		f.expectRefresh(reserves(1000, 1000), reserves(1000, 1000))
		f.round.beforeExecute = func(context.Context, dto.Match) { t.Fatal("must not reach execution") }

		require.NoError(t, f.round.run(context.Background()))
		assert.Contains(t, f.out.String(), "1 matches\n")
		assert.Contains(t, f.out.String(), "winner: ")
		assert.Contains(t, f.out.String(), "gap closed, skipping")
	})

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()

		f := newRound(t)
		f.expectRefresh(reserves(220000, 320000), reserves(310000, 210000))
		var executed dto.Match
		f.round.beforeExecute = func(_ context.Context, m dto.Match) { executed = m }

		require.NoError(t, f.round.run(context.Background()))
		assert.Contains(t, f.out.String(), "fresh: ")
		assert.NotContains(t, f.out.String(), "tx:")
		assert.Equal(t, "18608", executed.Profit().Dec())
		assert.Equal(t, poolB, executed.Pair.Pool0.Pool.Address)
	})

	t.Run("refresh rpc error", func(t *testing.T) {
		t.Parallel()

		f := newRound(t)
		f.client.EXPECT().BlockNumber(gomock.Any()).Return(uint64(0), errors.New("connection refused")).AnyTimes()
		f.client.EXPECT().GetPairReserves(gomock.Any(), gomock.Any()).Return(reserves(1, 1), nil).AnyTimes()

		err := f.round.run(context.Background())
		require.ErrorContains(t, err, "connection refused")
	})
}
