// Package swab submits two-pool arbitrage trades to the on-chain swap
// contract and manages the ERC20 approvals it needs.
package swab

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const swabABIJSON = `[
	{"inputs":[{"internalType":"uint256","name":"amountOut","type":"uint256"},{"internalType":"address","name":"pool0","type":"address"},{"internalType":"address","name":"pool1","type":"address"}],"name":"swab","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

const erc20ABIJSON = `[
	{"inputs":[{"internalType":"address","name":"owner","type":"address"},{"internalType":"address","name":"spender","type":"address"}],"name":"allowance","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"spender","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"approve","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const defaultPollInterval = 2 * time.Second

var (
	// ErrReverted is returned by WaitReceipt for a mined but failed transaction.
	ErrReverted = errors.New("transaction reverted")

	maxUint256 = new(uint256.Int).SetAllOne()
)

// Backend is the chain connection the executor needs. *ethclient.Client
// satisfies it.
type Backend interface {
	bind.ContractBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

type chainReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// contract is the subset of *bind.BoundContract used here.
type contract interface {
	Call(opts *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
}

// Executor signs and sends swab transactions from a single account.
type Executor struct {
	chain    chainReader
	swap     contract
	swapAddr common.Address
	token    func(common.Address) contract

	auth     *bind.TransactOpts
	gasLimit uint64

	pollInterval time.Duration
}

// New binds the swap contract at swapAddr and prepares a signer for key on
// the backend's chain.
func New(ctx context.Context, backend Backend, swapAddr common.Address, key *ecdsa.PrivateKey, gasLimit uint64) (*Executor, error) {
	swapABI, err := abi.JSON(strings.NewReader(swabABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}
	tokenABI, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "backend.ChainID")
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "bind.NewKeyedTransactorWithChainID")
	}

	return &Executor{
		chain:    backend,
		swap:     bind.NewBoundContract(swapAddr, swapABI, backend, backend, backend),
		swapAddr: swapAddr,
		token: func(addr common.Address) contract {
			return bind.NewBoundContract(addr, tokenABI, backend, backend, backend)
		},
		auth:         auth,
		gasLimit:     gasLimit,
		pollInterval: defaultPollInterval,
	}, nil
}

// From returns the sending account.
func (e *Executor) From() common.Address {
	return e.auth.From
}

func (e *Executor) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *e.auth
	opts.Context = ctx
	opts.GasLimit = e.gasLimit
	return &opts
}

func (e *Executor) callUint(ctx context.Context, c contract, method string, params ...interface{}) (*uint256.Int, error) {
	var out []interface{}
	if err := c.Call(&bind.CallOpts{Context: ctx, From: e.auth.From}, &out, method, params...); err != nil {
		return nil, errors.Wrapf(err, "call %s", method)
	}
	if len(out) == 0 {
		return nil, errors.Errorf("empty %s result", method)
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("failed to cast %s result to *big.Int", method)
	}
	res, overflow := uint256.FromBig(v)
	if overflow {
		return nil, errors.Errorf("%s result overflows 256 bits", method)
	}
	return res, nil
}

// Allowance returns how much of token the swap contract may spend.
func (e *Executor) Allowance(ctx context.Context, token common.Address) (*uint256.Int, error) {
	return e.callUint(ctx, e.token(token), "allowance", e.auth.From, e.swapAddr)
}

// EnsureAllowance approves the swap contract for the maximum amount of token
// when no allowance is set. It returns the approval hash, or the zero hash
// when nothing was sent.
func (e *Executor) EnsureAllowance(ctx context.Context, token common.Address) (common.Hash, error) {
	allowance, err := e.Allowance(ctx, token)
	if err != nil {
		return common.Hash{}, err
	}
	if !allowance.IsZero() {
		return common.Hash{}, nil
	}

	tx, err := e.token(token).Transact(e.transactOpts(ctx), "approve", e.swapAddr, maxUint256.ToBig())
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "transact approve")
	}
	return tx.Hash(), nil
}

// Balance returns the sender's ether balance.
func (e *Executor) Balance(ctx context.Context) (*uint256.Int, error) {
	v, err := e.chain.BalanceAt(ctx, e.auth.From, nil)
	if err != nil {
		return nil, errors.Wrap(err, "e.chain.BalanceAt")
	}
	res, _ := uint256.FromBig(v)
	return res, nil
}

// TokenBalance returns the sender's balance of token.
func (e *Executor) TokenBalance(ctx context.Context, token common.Address) (*uint256.Int, error) {
	return e.callUint(ctx, e.token(token), "balanceOf", e.auth.From)
}

// Swab sends swab(amountOut, pool0, pool1): the contract borrows amountOut of
// the intermediate asset from pool0 and repays it with the proceeds of pool1.
func (e *Executor) Swab(ctx context.Context, amountOut *uint256.Int, pool0, pool1 common.Address) (common.Hash, error) {
	if amountOut == nil || amountOut.IsZero() {
		return common.Hash{}, errors.New("zero swab amount")
	}

	tx, err := e.swap.Transact(e.transactOpts(ctx), "swab", amountOut.ToBig(), pool0, pool1)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "transact swab")
	}
	return tx.Hash(), nil
}

// WaitReceipt polls until the transaction is mined or ctx is done.
func (e *Executor) WaitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := e.chain.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, errors.Wrapf(ErrReverted, "tx %s", hash.Hex())
			}
			return receipt, nil
		case !errors.Is(err, ethereum.NotFound):
			return nil, errors.Wrap(err, "e.chain.TransactionReceipt")
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "waiting for receipt")
		case <-ticker.C:
		}
	}
}
