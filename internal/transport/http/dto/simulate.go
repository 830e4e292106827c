package dto

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/fleshka4/gofi/internal/dexmath"
	servicedto "github.com/fleshka4/gofi/internal/service/dto"
)

// SimulateRequest represents a parsed HTTP request for the /simulate endpoint.
type SimulateRequest struct {
	PoolA common.Address
	PoolB common.Address
}

// MatchesRequest represents a parsed HTTP request for the /matches endpoint.
// Zero Limit means all matches.
type MatchesRequest struct {
	Limit int
}

// Pool is one side of a match. Amounts are base-10 integer strings.
type Pool struct {
	Address        string `json:"address"`
	Token0         string `json:"token0"`
	Token1         string `json:"token1"`
	Reserve0       string `json:"reserve0"`
	Reserve1       string `json:"reserve1"`
	BlockNumber    uint64 `json:"block_number,omitempty"`
	BlockTimestamp uint64 `json:"block_timestamp,omitempty"`
}

// Match is the JSON form of a simulated round trip.
type Match struct {
	Pool0        Pool   `json:"pool0"`
	Pool1        Pool   `json:"pool1"`
	Quote        string `json:"quote"`
	Input        string `json:"input"`
	Intermediate string `json:"intermediate"`
	Output       string `json:"output"`
	Profit       string `json:"profit"`
	// ProfitScaled is Profit in whole quote units.
	ProfitScaled string `json:"profit_scaled"`
}

// MatchesResponse is returned by /matches.
type MatchesResponse struct {
	Count   int     `json:"count"`
	Matches []Match `json:"matches"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewMatch converts a service match.
func NewMatch(m servicedto.Match) Match {
	quote := m.QuoteCoin()
	return Match{
		Pool0:        newPool(m.Pair.Pool0),
		Pool1:        newPool(m.Pair.Pool1),
		Quote:        coinName(quote),
		Input:        m.Trade.Input.Dec(),
		Intermediate: m.Trade.Intermediate.Dec(),
		Output:       m.Trade.Output.Dec(),
		Profit:       m.Profit().Dec(),
		ProfitScaled: dexmath.Format(m.Profit(), quote.Decimals),
	}
}

func newPool(p servicedto.PoolSnapshot) Pool {
	return Pool{
		Address:        p.Pool.Address.Hex(),
		Token0:         coinName(p.Pool.Coin0),
		Token1:         coinName(p.Pool.Coin1),
		Reserve0:       p.Reserves.X.Dec(),
		Reserve1:       p.Reserves.Y.Dec(),
		BlockNumber:    p.BlockNumber,
		BlockTimestamp: p.BlockTimestamp,
	}
}

func coinName(c servicedto.Coin) string {
	if c.Symbol != "" {
		return c.Symbol
	}
	return c.Address.Hex()
}
