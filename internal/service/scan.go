package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/fleshka4/gofi/internal/apperrors"
	"github.com/fleshka4/gofi/internal/service/dto"
	"github.com/fleshka4/gofi/internal/uniswapv2"
)

// Scan loads every stored pair whose token0 is the base token, simulates
// each on the worker pool and returns the matches with a non-zero input,
// most profitable first. A pair that fails to simulate is logged and
// skipped.
func (s *ArbitrageService) Scan(ctx context.Context) ([]dto.Match, error) {
	if s.store == nil {
		return nil, errors.New("scan: no store configured")
	}

	pairs, err := s.store.PairsWith(ctx, s.opts.BaseToken)
	if err != nil {
		return nil, errors.Wrap(err, "s.store.PairsWith")
	}

	results := make([]*dto.Match, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, pair := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			m, err := s.simulatePair(pair)
			if err != nil {
				s.logPairError(pair, err)
				return nil
			}
			if m.Trade.Input.IsZero() {
				return nil
			}
			results[i] = &m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "scan")
	}

	matches := make([]dto.Match, 0, len(results))
	for _, m := range results {
		if m != nil {
			matches = append(matches, *m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Profit().Gt(matches[j].Profit())
	})

	s.logger.Info("scan finished", "pairs", len(pairs), "matches", len(matches))

	return matches, nil
}

// Winners keeps the matches that end in the quote token with a scaled profit
// inside the configured bounds.
func (s *ArbitrageService) Winners(matches []dto.Match) []dto.Match {
	var winners []dto.Match
	for _, m := range matches {
		if m.QuoteCoin().Address != s.opts.QuoteToken {
			continue
		}
		p := m.ScaledProfit()
		if p < s.opts.MinProfit || (s.opts.MaxProfit > 0 && p > s.opts.MaxProfit) {
			continue
		}
		winners = append(winners, m)
	}
	return winners
}

func (s *ArbitrageService) simulatePair(pair dto.Pair) (dto.Match, error) {
	oriented, ok := pair.Oriented()
	if !ok {
		return dto.Match{}, noOpportunity(uniswapv2.ErrNoArbitrage)
	}

	trade, err := uniswapv2.Simulate(oriented.Pool0.Reserves, oriented.Pool1.Reserves, s.opts.FeeBP)
	switch {
	case uniswapv2.IsNoArbitrage(err):
		return dto.Match{}, noOpportunity(err)
	case errors.Is(err, uniswapv2.ErrZeroReserve):
		return dto.Match{}, errors.Wrap(apperrors.ErrInsufficientLiquidity, err.Error())
	case err != nil:
		return dto.Match{}, errors.Wrap(err, "uniswapv2.Simulate")
	}

	return dto.Match{Pair: oriented, Trade: trade}, nil
}

func (s *ArbitrageService) logPairError(pair dto.Pair, err error) {
	attrs := []any{
		"pool0", pair.Pool0.Pool.Address.Hex(),
		"pool1", pair.Pool1.Pool.Address.Hex(),
		"err", err,
	}
	if errors.Is(err, apperrors.ErrNoOpportunity) {
		s.logger.Debug("no arbitrage", attrs...)
		return
	}
	s.logger.Warn("pair simulation failed", attrs...)
}

// noOpportunity marks an engine "no arbitrage" outcome so it matches both
// apperrors.ErrNoOpportunity and the engine sentinel.
func noOpportunity(err error) error {
	return fmt.Errorf("%w: %w", apperrors.ErrNoOpportunity, err)
}
