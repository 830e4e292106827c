package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/gofi/internal/app"
	"github.com/fleshka4/gofi/internal/apperrors"
	"github.com/fleshka4/gofi/internal/config"
	"github.com/fleshka4/gofi/internal/dexmath"
	"github.com/fleshka4/gofi/internal/logging"
	"github.com/fleshka4/gofi/internal/service/dto"
	"github.com/fleshka4/gofi/internal/uniswapv2"
)

// arbitrager is the part of the service a scan round drives.
type arbitrager interface {
	Scan(ctx context.Context) ([]dto.Match, error)
	Winners(matches []dto.Match) []dto.Match
	Refresh(ctx context.Context, m dto.Match) (dto.Match, error)
	Execute(ctx context.Context, m dto.Match) (common.Hash, error)
}

func main() {
	track := flag.String("track", "", "comma-separated pool addresses to index before scanning")
	flag.Parse()

	cfg, err := config.Load(config.Path())
	if err != nil {
		logging.NewLogger("info").Error("config.Load", "err", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *track); err != nil {
		logger.Error("gofi", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, track string) error {
	a, err := app.New(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("a.Close", "err", err)
		}
	}()

	if track != "" {
		pools, err := parsePools(track)
		if err != nil {
			return err
		}
		if err := a.Service.Track(ctx, pools); err != nil {
			// Partial failures still leave the other pools indexed.
			logger.Warn("track", "err", err)
		}
	}

	n, err := a.Store.Count(ctx, "pools")
	if err != nil {
		return errors.Wrap(err, "a.Store.Count")
	}
	fmt.Printf("%d pools\n", n)

	r := round{svc: a.Service, out: os.Stdout, displayProfit: cfg.DisplayProfit}
	if a.Executor != nil {
		r.beforeExecute = func(ctx context.Context, m dto.Match) { printBalances(ctx, os.Stdout, a, m) }
	}
	return r.run(ctx)
}

// round is one scan → refresh → execute pass.
type round struct {
	svc           arbitrager
	out           io.Writer
	displayProfit float64
	beforeExecute func(ctx context.Context, m dto.Match)
}

func (r round) run(ctx context.Context) error {
	matches, err := r.svc.Scan(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%d matches\n", len(matches))
	for _, m := range matches {
		if m.ScaledProfit() >= r.displayProfit {
			fmt.Fprintln(r.out, m)
		}
	}

	winners := r.svc.Winners(matches)
	if len(winners) == 0 {
		fmt.Fprintln(r.out, "no winners")
		return nil
	}
	best := winners[0]
	fmt.Fprintln(r.out, "winner:", best)

	fresh, err := r.svc.Refresh(ctx, best)
	switch {
	case noOpportunity(err):
		fmt.Fprintln(r.out, "gap closed, skipping:", err)
		return nil
	case err != nil:
		return errors.Wrap(err, "refresh winner")
	}
	fmt.Fprintln(r.out, "fresh: ", fresh)
	if len(r.svc.Winners([]dto.Match{fresh})) == 0 {
		fmt.Fprintln(r.out, "profit moved out of bounds, skipping")
		return nil
	}

	if r.beforeExecute != nil {
		r.beforeExecute(ctx, fresh)
	}

	hash, err := r.svc.Execute(ctx, fresh)
	switch {
	case noOpportunity(err):
		fmt.Fprintln(r.out, "nothing to execute:", err)
		return nil
	case err != nil:
		return err
	}
	if hash != (common.Hash{}) {
		fmt.Fprintln(r.out, "tx:", hash.Hex())
	}
	return nil
}

func noOpportunity(err error) bool {
	return errors.Is(err, apperrors.ErrNoOpportunity) || uniswapv2.IsNoArbitrage(err)
}

func printBalances(ctx context.Context, w io.Writer, a *app.App, m dto.Match) {
	eth, err := a.Executor.Balance(ctx)
	if err != nil {
		fmt.Fprintln(w, "balance:", err)
		return
	}
	quote := m.QuoteCoin()
	tok, err := a.Executor.TokenBalance(ctx, quote.Address)
	if err != nil {
		fmt.Fprintln(w, "token balance:", err)
		return
	}
	fmt.Fprintf(w, "%s: %s ETH, %s %s\n", a.Executor.From().Hex(),
		dexmath.Format(eth, 18), dexmath.Format(tok, quote.Decimals), quote.Symbol)
}

func parsePools(list string) ([]common.Address, error) {
	var pools []common.Address
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !common.IsHexAddress(s) {
			return nil, errors.Errorf("bad pool address %q", s)
		}
		pools = append(pools, common.HexToAddress(s))
	}
	return pools, nil
}
