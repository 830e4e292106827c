package service

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/fleshka4/gofi/internal/apperrors"
	"github.com/fleshka4/gofi/internal/infra/uniswap"
	"github.com/fleshka4/gofi/internal/service/dto"
	"github.com/fleshka4/gofi/internal/service/validate"
	"github.com/fleshka4/gofi/internal/uniswapv2"
)

// Simulate reads both pools over RPC, checks that they trade the same
// token0/token1, orients them by price and sizes the arbitrage.
func (s *ArbitrageService) Simulate(ctx context.Context, req dto.SimulateRequest) (dto.Match, error) {
	if err := validate.SimulateRequestValidate(req); err != nil {
		return dto.Match{}, err
	}

	var snaps [2]dto.PoolSnapshot

	g, gctx := errgroup.WithContext(ctx)
	for i, addr := range []common.Address{req.PoolA, req.PoolB} {
		g.Go(func() error {
			snap, err := s.readPool(gctx, addr)
			if err != nil {
				return err
			}
			snaps[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dto.Match{}, err
	}

	a, b := snaps[0].Pool, snaps[1].Pool
	if a.Coin0.Address != b.Coin0.Address || a.Coin1.Address != b.Coin1.Address {
		return dto.Match{}, errors.Wrapf(apperrors.ErrPairMismatch, "%s and %s", req.PoolA.Hex(), req.PoolB.Hex())
	}

	coin0, err := s.coin(ctx, a.Coin0.Address)
	if err != nil {
		return dto.Match{}, err
	}
	coin1, err := s.coin(ctx, a.Coin1.Address)
	if err != nil {
		return dto.Match{}, err
	}
	for i := range snaps {
		snaps[i].Pool.Coin0, snaps[i].Pool.Coin1 = coin0, coin1
	}

	m, err := s.simulatePair(dto.Pair{Pool0: snaps[0], Pool1: snaps[1]})
	if err != nil {
		return dto.Match{}, err
	}

	s.logger.Debug("simulated",
		"pool0", m.Pair.Pool0.Pool.Address.Hex(),
		"pool1", m.Pair.Pool1.Pool.Address.Hex(),
		"input", m.Trade.Input.Dec(),
		"profit", m.Trade.Profit.Dec(),
	)

	return m, nil
}

// readPool fetches a pool's tokens and reserves. Coin metadata is left to the
// caller; only addresses are set.
func (s *ArbitrageService) readPool(ctx context.Context, pool common.Address) (dto.PoolSnapshot, error) {
	token0, token1, err := s.client.GetPairTokens(ctx, pool)
	if err != nil {
		return dto.PoolSnapshot{}, fmt.Errorf("%w: tokens of %s: %w", apperrors.ErrPairRead, pool.Hex(), err)
	}

	res, err := s.client.GetPairReserves(ctx, pool)
	if err != nil {
		return dto.PoolSnapshot{}, fmt.Errorf("%w: reserves of %s: %w", apperrors.ErrPairRead, pool.Hex(), err)
	}

	return dto.PoolSnapshot{
		Pool: dto.Pool{
			Address: pool,
			Coin0:   dto.Coin{Address: token0},
			Coin1:   dto.Coin{Address: token1},
		},
		Reserves:       uniswapv2.Reserves{X: res.Reserve0, Y: res.Reserve1},
		BlockTimestamp: uint64(res.BlockTimestampLast),
	}, nil
}

// coin returns token metadata from the store, falling back to RPC.
func (s *ArbitrageService) coin(ctx context.Context, addr common.Address) (dto.Coin, error) {
	if s.store != nil {
		c, err := s.store.Coin(ctx, addr)
		if err == nil {
			return c, nil
		}
		s.logger.Debug("coin not in store", "coin", addr.Hex(), "err", err)
	}

	tok, err := s.client.GetToken(ctx, addr)
	if err != nil {
		return dto.Coin{}, fmt.Errorf("%w: token %s: %w", apperrors.ErrPairRead, addr.Hex(), err)
	}
	return coinFromToken(tok), nil
}

func coinFromToken(tok uniswap.Token) dto.Coin {
	return dto.Coin{Address: tok.Address, Symbol: tok.Symbol, Decimals: int32(tok.Decimals)}
}
