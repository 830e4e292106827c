package uniswap

//go:generate mockgen -source=client.go -destination=mock/client.go -package=mock

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const pairABIJSON = `[
	{"inputs":[],"name":"token0","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"token1","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getReserves","outputs":[{"internalType":"uint112","name":"_reserve0","type":"uint112"},{"internalType":"uint112","name":"_reserve1","type":"uint112"},{"internalType":"uint32","name":"_blockTimestampLast","type":"uint32"}],"stateMutability":"view","type":"function"}
]`

const erc20MetaABIJSON = `[
	{"inputs":[],"name":"symbol","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`

// Reserves is a getReserves snapshot of a pair.
type Reserves struct {
	Reserve0           *uint256.Int
	Reserve1           *uint256.Int
	BlockTimestampLast uint32
}

// Token is the ERC20 metadata needed to display amounts.
type Token struct {
	Address  common.Address
	Symbol   string
	Decimals uint8
}

// Client defines an abstraction for reading Uniswap V2 pair data from the Ethereum blockchain.
type Client interface {
	// GetPairTokens returns the addresses of token0 and token1 for a given pair contract.
	GetPairTokens(ctx context.Context, pair common.Address) (common.Address, common.Address, error)
	// GetPairReserves returns the current reserves of token0 and token1 for a given pair contract.
	GetPairReserves(ctx context.Context, pair common.Address) (Reserves, error)
	// GetToken returns the symbol and decimals of an ERC20 token.
	GetToken(ctx context.Context, token common.Address) (Token, error)
	// BlockNumber returns the latest block number.
	BlockNumber(ctx context.Context) (uint64, error)
	// Close releases the RPC connection the client dialed, if any.
	Close()
}

// EthCaller represents interface for calling contracts.
type EthCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

type ethClientImpl struct {
	caller   EthCaller
	pairABI  abi.ABI
	erc20ABI abi.ABI

	callTimeout time.Duration
	closer      func()
}

// NewClient creates a new Uniswap Client backed by an Ethereum RPC connection.
func NewClient(rpcURL string, callTimeout time.Duration) (Client, error) {
	caller, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "ethclient.Dial")
	}

	client, err := newClient(caller, callTimeout)
	if err != nil {
		caller.Close()
		return nil, err
	}
	client.closer = caller.Close
	return client, nil
}

// NewClientWithCaller builds a Client on top of an existing connection.
// Close leaves that connection open.
func NewClientWithCaller(caller EthCaller, callTimeout time.Duration) (Client, error) {
	return newClient(caller, callTimeout)
}

func newClient(caller EthCaller, callTimeout time.Duration) (*ethClientImpl, error) {
	pairABI, err := abi.JSON(strings.NewReader(pairABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}
	erc20ABI, err := abi.JSON(strings.NewReader(erc20MetaABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}

	return &ethClientImpl{
		caller:   caller,
		pairABI:  pairABI,
		erc20ABI: erc20ABI,

		callTimeout: callTimeout,
	}, nil
}

func (c *ethClientImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.callTimeout)
}

func (c *ethClientImpl) call(ctx context.Context, contract *abi.ABI, to common.Address, method string) ([]interface{}, error) {
	data, err := contract.Pack(method)
	if err != nil {
		return nil, errors.Wrap(err, "contract.Pack")
	}

	ctxCall, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.caller.CallContract(
		ctxCall,
		ethereum.CallMsg{
			To:   &to,
			Data: data,
		},
		nil,
	)
	if err != nil {
		return nil, errors.Wrap(err, "c.caller.CallContract")
	}

	out, err := contract.Unpack(method, res)
	if err != nil {
		return nil, errors.Wrap(err, "contract.Unpack")
	}

	return out, nil
}

// GetPairTokens returns the addresses of token0 and token1 for a given pair contract.
// Both calls run concurrently; failures of either are combined.
func (c *ethClientImpl) GetPairTokens(ctx context.Context, pair common.Address) (common.Address, common.Address, error) {
	const (
		numTokens    = 2
		token0Method = "token0"
		token1Method = "token1"
	)

	type tokenResult struct {
		token common.Address
		err   error
		name  string
	}

	var wg sync.WaitGroup
	ch := make(chan tokenResult, numTokens)

	getToken := func(method string) {
		defer wg.Done()

		if err := ctx.Err(); err != nil {
			ch <- tokenResult{err: errors.Wrap(err, "context cancelled before call")}
			return
		}

		out, err := c.call(ctx, &c.pairABI, pair, method)
		if err != nil {
			ch <- tokenResult{err: errors.Wrapf(err, "failed to call %s", method)}
			return
		}

		addr, ok := out[0].(common.Address)
		if !ok {
			ch <- tokenResult{err: errors.Errorf("failed to cast %s result to address", method)}
			return
		}

		ch <- tokenResult{token: addr, name: method}
	}

	wg.Add(numTokens)
	go getToken(token0Method)
	go getToken(token1Method)

	go func() {
		wg.Wait()
		close(ch)
	}()

	var (
		token0, token1 common.Address
		combinedErr    error
	)

	for result := range ch {
		if result.err != nil {
			combinedErr = multierr.Append(combinedErr, result.err)
			continue
		}

		switch result.name {
		case token0Method:
			token0 = result.token
		case token1Method:
			token1 = result.token
		}
	}

	if combinedErr != nil {
		return common.Address{}, common.Address{}, errors.Wrap(combinedErr, "failed to get pair tokens")
	}

	return token0, token1, nil
}

// GetPairReserves returns the current reserves of token0 and token1 for a given pair contract.
func (c *ethClientImpl) GetPairReserves(ctx context.Context, pair common.Address) (Reserves, error) {
	out, err := c.call(ctx, &c.pairABI, pair, "getReserves")
	if err != nil {
		return Reserves{}, errors.Wrap(err, "c.call")
	}

	const requiredSize = 3
	if len(out) < requiredSize {
		return Reserves{}, errors.Errorf("insufficient outputs from getReserves call: expected %d, got %d", requiredSize, len(out))
	}

	reserves := make([]*uint256.Int, 2)
	reserveNames := []string{"reserve0", "reserve1"}

	for i := range reserves {
		reserve, ok := out[i].(*big.Int)
		if !ok {
			return Reserves{}, errors.Errorf("failed to cast %s to *big.Int", reserveNames[i])
		}
		v, overflow := uint256.FromBig(reserve)
		if overflow {
			return Reserves{}, errors.Errorf("%s does not fit 256 bits", reserveNames[i])
		}
		reserves[i] = v
	}

	ts, ok := out[2].(uint32)
	if !ok {
		return Reserves{}, errors.New("failed to cast blockTimestampLast to uint32")
	}

	return Reserves{Reserve0: reserves[0], Reserve1: reserves[1], BlockTimestampLast: ts}, nil
}

// GetToken returns the symbol and decimals of an ERC20 token. Both calls
// run concurrently; failures of either are combined.
func (c *ethClientImpl) GetToken(ctx context.Context, token common.Address) (Token, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		symbol   string
		decimals uint8
		combined error
	)

	fail := func(err error) {
		mu.Lock()
		combined = multierr.Append(combined, err)
		mu.Unlock()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()

		out, err := c.call(ctx, &c.erc20ABI, token, "symbol")
		if err != nil {
			fail(errors.Wrap(err, "failed to call symbol"))
			return
		}
		s, ok := out[0].(string)
		if !ok {
			fail(errors.New("failed to cast symbol to string"))
			return
		}
		symbol = s
	}()
	go func() {
		defer wg.Done()

		out, err := c.call(ctx, &c.erc20ABI, token, "decimals")
		if err != nil {
			fail(errors.Wrap(err, "failed to call decimals"))
			return
		}
		d, ok := out[0].(uint8)
		if !ok {
			fail(errors.New("failed to cast decimals to uint8"))
			return
		}
		decimals = d
	}()
	wg.Wait()

	if combined != nil {
		return Token{}, errors.Wrap(combined, "failed to get token")
	}
	return Token{Address: token, Symbol: symbol, Decimals: decimals}, nil
}

// Close closes the connection dialed by NewClient.
func (c *ethClientImpl) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// BlockNumber returns the latest block number.
func (c *ethClientImpl) BlockNumber(ctx context.Context) (uint64, error) {
	ctxCall, cancel := c.withTimeout(ctx)
	defer cancel()

	n, err := c.caller.BlockNumber(ctxCall)
	if err != nil {
		return 0, errors.Wrap(err, "c.caller.BlockNumber")
	}
	return n, nil
}
