// Package app wires config into the RPC client, the pool store, the swab
// executor and the arbitrage service shared by the binaries.
package app

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fleshka4/gofi/internal/config"
	"github.com/fleshka4/gofi/internal/infra/swab"
	"github.com/fleshka4/gofi/internal/infra/uniswap"
	"github.com/fleshka4/gofi/internal/service"
	"github.com/fleshka4/gofi/internal/storage/sqlite"
)

// App holds the wired components of a running process.
type App struct {
	Client   uniswap.Client
	Store    *sqlite.Store
	Executor *swab.Executor
	Service  *service.ArbitrageService

	closers []func() error
}

// Options maps config onto service options.
func Options(cfg config.Config) service.Options {
	return service.Options{
		BaseToken:  common.HexToAddress(cfg.BaseToken),
		QuoteToken: common.HexToAddress(cfg.QuoteToken),
		FeeBP:      cfg.Fee(),
		MinProfit:  cfg.MinProfit,
		MaxProfit:  cfg.MaxProfit,
		Workers:    cfg.Workers,
		DryRun:     cfg.IsDryRun(),
	}
}

// New dials the RPC endpoint and opens the store. When withExecutor is set
// and dry run is off, a signing executor is built from eth_priv_key.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, withExecutor bool) (*App, error) {
	a := &App{}

	client, err := uniswap.NewClient(cfg.RPCURL, cfg.RequestTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "uniswap.NewClient")
	}
	a.Client = client
	a.closers = append(a.closers, func() error {
		client.Close()
		return nil
	})

	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		_ = a.Close()
		return nil, errors.Wrap(err, "sqlite.Open")
	}
	a.Store = store
	a.closers = append(a.closers, store.Close)

	var executor service.Executor
	if withExecutor && !cfg.IsDryRun() {
		if err := a.dialExecutor(ctx, cfg); err != nil {
			_ = a.Close()
			return nil, err
		}
		executor = a.Executor
		logger.Info("executor ready", "from", a.Executor.From().Hex(), "swap", cfg.SwapContract)
	}

	a.Service = service.NewArbitrageService(logger, client, store, executor, Options(cfg))
	return a, nil
}

func (a *App) dialExecutor(ctx context.Context, cfg config.Config) error {
	if cfg.SwapContract == "" {
		return errors.Wrap(config.ErrInvalid, "swap_contract is required unless dry_run is set")
	}
	_, key, err := cfg.Account()
	if err != nil {
		return err
	}

	ec, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return errors.Wrap(err, "ethclient.DialContext")
	}
	a.closers = append(a.closers, func() error {
		ec.Close()
		return nil
	})

	exec, err := swab.New(ctx, ec, common.HexToAddress(cfg.SwapContract), key, cfg.GasLimit)
	if err != nil {
		return errors.Wrap(err, "swab.New")
	}
	a.Executor = exec
	return nil
}

// Close releases everything New opened.
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	return err
}
