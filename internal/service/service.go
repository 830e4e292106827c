package service

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

import (
	"context"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/fleshka4/gofi/internal/infra/uniswap"
	"github.com/fleshka4/gofi/internal/service/dto"
	"github.com/fleshka4/gofi/internal/uniswapv2"
)

// Service represents interface for business logic.
type Service interface {
	// Simulate reads two pools on demand and sizes the arbitrage between them.
	Simulate(ctx context.Context, req dto.SimulateRequest) (dto.Match, error)
	// Scan simulates every stored pair that trades the base token.
	Scan(ctx context.Context) ([]dto.Match, error)
}

// Store is the pool registry the service scans and refreshes.
type Store interface {
	PairsWith(ctx context.Context, base common.Address) ([]dto.Pair, error)
	Coin(ctx context.Context, addr common.Address) (dto.Coin, error)
	UpsertCoin(ctx context.Context, c dto.Coin) error
	UpsertPool(ctx context.Context, pool, token0, token1 common.Address) error
	InsertBlock(ctx context.Context, number, timestamp uint64) error
	InsertReserve(ctx context.Context, pool common.Address, block uint64, r uniswapv2.Reserves) error
}

// Executor sends trades on chain.
type Executor interface {
	EnsureAllowance(ctx context.Context, token common.Address) (common.Hash, error)
	Swab(ctx context.Context, amountOut *uint256.Int, pool0, pool1 common.Address) (common.Hash, error)
	WaitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// Options tune scanning and trade selection.
type Options struct {
	BaseToken  common.Address
	QuoteToken common.Address
	// FeeBP is charged by both pools; zero means a fee-free pool.
	FeeBP      uint32
	// MinProfit and MaxProfit bound the scaled profit of a winner. A zero
	// MaxProfit means no upper bound.
	MinProfit float64
	MaxProfit float64
	Workers   int
	DryRun    bool
}

// ArbitrageService represents struct for business logic.
type ArbitrageService struct {
	logger   *slog.Logger
	client   uniswap.Client
	store    Store
	executor Executor
	opts     Options

	now func() time.Time
}

// NewArbitrageService creates ArbitrageService. store and executor may be
// nil when the caller only needs on-demand simulation.
func NewArbitrageService(logger *slog.Logger, cli uniswap.Client, store Store, executor Executor, opts Options) *ArbitrageService {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &ArbitrageService{
		logger:   logger,
		client:   cli,
		store:    store,
		executor: executor,
		opts:     opts,
		now:      time.Now,
	}
}
