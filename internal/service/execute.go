package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/fleshka4/gofi/internal/service/dto"
	"github.com/fleshka4/gofi/internal/uniswapv2"
)

// Refresh re-reads both pools of a match over RPC, stores the fresh
// snapshot when a store is configured and simulates again.
func (s *ArbitrageService) Refresh(ctx context.Context, m dto.Match) (dto.Match, error) {
	pair := m.Pair

	var block uint64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.client.BlockNumber(gctx)
		if err != nil {
			return errors.Wrap(err, "s.client.BlockNumber")
		}
		block = n
		return nil
	})
	for _, snap := range []*dto.PoolSnapshot{&pair.Pool0, &pair.Pool1} {
		g.Go(func() error {
			res, err := s.client.GetPairReserves(gctx, snap.Pool.Address)
			if err != nil {
				return errors.Wrapf(err, "reserves of %s", snap.Pool.Address.Hex())
			}
			snap.Reserves = uniswapv2.Reserves{X: res.Reserve0, Y: res.Reserve1}
			snap.BlockTimestamp = uint64(res.BlockTimestampLast)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dto.Match{}, err
	}
	pair.Pool0.BlockNumber, pair.Pool1.BlockNumber = block, block

	if s.store != nil {
		if err := s.persist(ctx, block, pair.Pool0, pair.Pool1); err != nil {
			return dto.Match{}, err
		}
	}

	fresh, err := s.simulatePair(pair)
	if err != nil {
		return dto.Match{}, err
	}

	s.logger.Info("refreshed",
		"block", block,
		"stale_profit", m.Profit().Dec(),
		"fresh_profit", fresh.Profit().Dec(),
	)
	return fresh, nil
}

func (s *ArbitrageService) persist(ctx context.Context, block uint64, snaps ...dto.PoolSnapshot) error {
	if err := s.store.InsertBlock(ctx, block, uint64(s.now().Unix())); err != nil {
		return errors.Wrap(err, "s.store.InsertBlock")
	}
	for _, snap := range snaps {
		if err := s.store.InsertReserve(ctx, snap.Pool.Address, block, snap.Reserves); err != nil {
			return errors.Wrap(err, "s.store.InsertReserve")
		}
	}
	return nil
}

// Execute submits swab(Intermediate, pool0, pool1) and waits for it to be
// mined, approving both of the pair's tokens for the swap contract first.
// In dry-run mode nothing is sent and the zero hash is returned.
func (s *ArbitrageService) Execute(ctx context.Context, m dto.Match) (common.Hash, error) {
	if !m.Trade.Viable() {
		return common.Hash{}, noOpportunity(uniswapv2.ErrNoArbitrage)
	}

	pool0, pool1 := m.Pair.Pool0.Pool, m.Pair.Pool1.Pool
	if s.opts.DryRun {
		s.logger.Info("dry run, not sending",
			"amount_out", m.Trade.Intermediate.Dec(),
			"pool0", pool0.Address.Hex(),
			"pool1", pool1.Address.Hex(),
		)
		return common.Hash{}, nil
	}
	if s.executor == nil {
		return common.Hash{}, errors.New("execute: no executor configured")
	}

	for _, token := range []common.Address{pool0.Coin0.Address, pool0.Coin1.Address} {
		hash, err := s.executor.EnsureAllowance(ctx, token)
		if err != nil {
			return common.Hash{}, errors.Wrapf(err, "allowance for %s", token.Hex())
		}
		if hash == (common.Hash{}) {
			continue
		}
		s.logger.Info("approval sent", "token", token.Hex(), "tx", hash.Hex())
		if _, err := s.executor.WaitReceipt(ctx, hash); err != nil {
			return common.Hash{}, errors.Wrap(err, "approval receipt")
		}
	}

	hash, err := s.executor.Swab(ctx, m.Trade.Intermediate, pool0.Address, pool1.Address)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "s.executor.Swab")
	}
	s.logger.Info("swab sent", "tx", hash.Hex(), "amount_out", m.Trade.Intermediate.Dec())

	receipt, err := s.executor.WaitReceipt(ctx, hash)
	if err != nil {
		return hash, errors.Wrap(err, "swab receipt")
	}
	s.logger.Info("swab mined", "tx", hash.Hex(), "block", receipt.BlockNumber, "gas_used", receipt.GasUsed)

	return hash, nil
}
