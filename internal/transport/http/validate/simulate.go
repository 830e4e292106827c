package validate

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/gofi/internal/transport/http/dto"
)

const maxLimit = 1000

// SimulateRequestValidate validates /simulate request and returns dto.
func SimulateRequestValidate(r *http.Request) (*dto.SimulateRequest, int, error) {
	if r.Method != http.MethodGet {
		return nil, http.StatusMethodNotAllowed, errors.New("method not allowed")
	}

	q := r.URL.Query()
	a := q.Get("pool_a")
	b := q.Get("pool_b")
	if a == "" || b == "" {
		return nil, http.StatusBadRequest, errors.New("missing params")
	}
	if !common.IsHexAddress(a) || !common.IsHexAddress(b) {
		return nil, http.StatusBadRequest, errors.New("bad address format")
	}

	return &dto.SimulateRequest{
		PoolA: common.HexToAddress(a),
		PoolB: common.HexToAddress(b),
	}, 0, nil
}

// MatchesRequestValidate validates /matches request and returns dto.
func MatchesRequestValidate(r *http.Request) (*dto.MatchesRequest, int, error) {
	if r.Method != http.MethodGet {
		return nil, http.StatusMethodNotAllowed, errors.New("method not allowed")
	}

	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return &dto.MatchesRequest{}, 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > maxLimit {
		return nil, http.StatusBadRequest, errors.Errorf("bad limit %q", raw)
	}
	return &dto.MatchesRequest{Limit: limit}, 0, nil
}
