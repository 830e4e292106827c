package validate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/gofi/internal/apperrors"
	"github.com/fleshka4/gofi/internal/service/dto"
)

// SimulateRequestValidate validates business logic request.
func SimulateRequestValidate(req dto.SimulateRequest) error {
	var zeroAddress = common.Address{}

	if req.PoolA == zeroAddress || req.PoolB == zeroAddress {
		return errors.Wrap(apperrors.ErrInvalidArgument, "pool address cannot be empty")
	}

	if req.PoolA == req.PoolB {
		return errors.Wrap(apperrors.ErrInvalidArgument, "pools must be different")
	}

	return nil
}

// TrackRequestValidate checks a list of pools to index.
func TrackRequestValidate(pools []common.Address) error {
	if len(pools) == 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "no pools given")
	}

	seen := make(map[common.Address]struct{}, len(pools))
	for _, p := range pools {
		if p == (common.Address{}) {
			return errors.Wrap(apperrors.ErrInvalidArgument, "pool address cannot be empty")
		}
		if _, ok := seen[p]; ok {
			return errors.Wrapf(apperrors.ErrInvalidArgument, "duplicate pool %s", p.Hex())
		}
		seen[p] = struct{}{}
	}

	return nil
}
