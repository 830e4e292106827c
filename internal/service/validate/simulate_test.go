package validate

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/fleshka4/gofi/internal/apperrors"
	"github.com/fleshka4/gofi/internal/service/dto"
)

func TestSimulateRequestValidate(t *testing.T) {
	t.Parallel()

	poolA := common.HexToAddress("0x123")
	poolB := common.HexToAddress("0x456")

	tests := []struct {
		name    string
		req     dto.SimulateRequest
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "valid request",
			req:     dto.SimulateRequest{PoolA: poolA, PoolB: poolB},
			wantErr: assert.NoError,
		},
		{
			name:    "zero pool a",
			req:     dto.SimulateRequest{PoolB: poolB},
			wantErr: assert.Error,
		},
		{
			name:    "zero pool b",
			req:     dto.SimulateRequest{PoolA: poolA},
			wantErr: assert.Error,
		},
		{
			name:    "same pool",
			req:     dto.SimulateRequest{PoolA: poolA, PoolB: poolA},
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := SimulateRequestValidate(tt.req)
			tt.wantErr(t, err)
			if err != nil {
				assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			}
		})
	}
}

func TestTrackRequestValidate(t *testing.T) {
	t.Parallel()

	a := common.HexToAddress("0x1")
	b := common.HexToAddress("0x2")

	assert.NoError(t, TrackRequestValidate([]common.Address{a, b}))
	assert.ErrorIs(t, TrackRequestValidate(nil), apperrors.ErrInvalidArgument)
	assert.ErrorIs(t, TrackRequestValidate([]common.Address{a, {}}), apperrors.ErrInvalidArgument)
	assert.ErrorIs(t, TrackRequestValidate([]common.Address{a, b, a}), apperrors.ErrInvalidArgument)
}
