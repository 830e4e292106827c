package service

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/fleshka4/gofi/internal/service/validate"
)

// Track reads the given pools over RPC and records their tokens, coin
// metadata and current reserves in the store so later scans can find them.
// Pools are processed on the worker pool; failures are combined and do not
// stop the other pools.
func (s *ArbitrageService) Track(ctx context.Context, pools []common.Address) error {
	if s.store == nil {
		return errors.New("track: no store configured")
	}
	if err := validate.TrackRequestValidate(pools); err != nil {
		return err
	}

	block, err := s.client.BlockNumber(ctx)
	if err != nil {
		return errors.Wrap(err, "s.client.BlockNumber")
	}
	if err := s.store.InsertBlock(ctx, block, uint64(s.now().Unix())); err != nil {
		return errors.Wrap(err, "s.store.InsertBlock")
	}

	var (
		mu       sync.Mutex
		combined error
		coins    sync.Map
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for _, pool := range pools {
		g.Go(func() error {
			if err := s.trackPool(gctx, pool, block, &coins); err != nil {
				mu.Lock()
				combined = multierr.Append(combined, errors.Wrapf(err, "pool %s", pool.Hex()))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if combined != nil {
		return errors.Wrap(combined, "track")
	}
	s.logger.Info("tracked pools", "count", len(pools), "block", block)
	return nil
}

func (s *ArbitrageService) trackPool(ctx context.Context, pool common.Address, block uint64, seen *sync.Map) error {
	snap, err := s.readPool(ctx, pool)
	if err != nil {
		return err
	}

	for _, token := range []common.Address{snap.Pool.Coin0.Address, snap.Pool.Coin1.Address} {
		if _, ok := seen.Load(token); ok {
			continue
		}
		tok, err := s.client.GetToken(ctx, token)
		if err != nil {
			return errors.Wrapf(err, "token %s", token.Hex())
		}
		if err := s.store.UpsertCoin(ctx, coinFromToken(tok)); err != nil {
			return err
		}
		seen.Store(token, struct{}{})
	}

	if err := s.store.UpsertPool(ctx, pool, snap.Pool.Coin0.Address, snap.Pool.Coin1.Address); err != nil {
		return err
	}
	return s.store.InsertReserve(ctx, pool, block, snap.Reserves)
}

