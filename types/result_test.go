package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolutionResultDecimal(t *testing.T) {
	value := "12728"
	result := ResolutionResult{Value: &value, Success: true}

	d, err := result.Decimal()
	require.NoError(t, err)
	assert.Equal(t, "12728", d.String())
}

func TestResolutionResultDecimal_NoValue(t *testing.T) {
	result := ResolutionResult{}
	_, err := result.Decimal()
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrResolution))
}

func TestResolutionResultDecimal_NonNumeric(t *testing.T) {
	value := "gold-tier"
	result := ResolutionResult{Value: &value, Success: true}
	_, err := result.Decimal()
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrResolution))
}
