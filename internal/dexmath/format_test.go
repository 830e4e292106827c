package dexmath

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.5", Format(uint256.NewInt(1500000), 6))
	assert.Equal(t, "0.028621", Format(uint256.NewInt(28621), 6))
	assert.Equal(t, "42", Format(uint256.NewInt(42), 0))
	assert.Equal(t, "0", Format(nil, 18))
	assert.Equal(t, "1", Format(uint256.MustFromDecimal("1000000000000000000"), 18))
}

func TestScaled(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.028621, Scaled(uint256.NewInt(28621), 6), 1e-12)
	assert.Zero(t, Scaled(new(uint256.Int), 6))
}
