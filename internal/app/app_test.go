package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/gofi/internal/config"
	"github.com/fleshka4/gofi/internal/uniswapv2"
)

func TestOptions(t *testing.T) {
	t.Parallel()

	dry := false
	fee := uint32(uniswapv2.DefaultFeeBP)
	opts := Options(config.Config{
		BaseToken:  "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		QuoteToken: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		FeeBP:      &fee,
		MinProfit:  0.03,
		MaxProfit:  2,
		Workers:    8,
		DryRun:     &dry,
	})

	assert.Equal(t, common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), opts.BaseToken)
	assert.Equal(t, common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"), opts.QuoteToken)
	assert.Equal(t, uint32(30), opts.FeeBP)
	assert.Equal(t, 0.03, opts.MinProfit)
	assert.Equal(t, 2.0, opts.MaxProfit)
	assert.Equal(t, 8, opts.Workers)
	assert.False(t, opts.DryRun)

	assert.True(t, Options(config.Config{}).DryRun)
}

func TestNewDryRun(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		RPCURL: "http://127.0.0.1:8545",
		DBPath: filepath.Join(t.TempDir(), "gofi.db"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := New(context.Background(), cfg, logger, true)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Close()) })

	assert.NotNil(t, a.Client)
	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.Service)
	assert.Nil(t, a.Executor)
}

func TestNewLiveNeedsSwapContract(t *testing.T) {
	t.Parallel()

	dry := false
	cfg := config.Config{
		RPCURL: "http://127.0.0.1:8545",
		DBPath: filepath.Join(t.TempDir(), "gofi.db"),
		DryRun: &dry,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := New(context.Background(), cfg, logger, true)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestNewStoreFailureReleasesClient(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		RPCURL: "http://127.0.0.1:8545",
		DBPath: filepath.Join(t.TempDir(), "missing", "dir", "gofi.db"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := New(context.Background(), cfg, logger, false)
	require.ErrorContains(t, err, "sqlite.Open")
	assert.Nil(t, a)
}
