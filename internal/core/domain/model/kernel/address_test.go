package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("normalizes postcode and country", func(t *testing.T) {
		a, err := kernel.NewAddress(" 1 Main St ", "", "London", "sw1a  1aa", "gb")

		require.NoError(t, err)
		assert.Equal(t, "1 Main St", a.Line1())
		assert.Equal(t, "SW1A 1AA", a.Postcode())
		assert.Equal(t, "GB", a.Country())
		assert.Equal(t, "1 Main St, London, SW1A 1AA, GB", a.String())
	})

	t.Run("reports every missing part", func(t *testing.T) {
		_, err := kernel.NewAddress("", "", "", "", "")

		require.ErrorIs(t, err, errs.ErrValidation)
		for _, part := range []string{"address line1", "city", "postcode", "country"} {
			assert.Contains(t, err.Error(), part)
		}
	})

	t.Run("rejects malformed postcode", func(t *testing.T) {
		_, err := kernel.NewAddress("1 Main St", "", "Berlin", "!!", "DE")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAddress_IsEqual(t *testing.T) {
	a, err := kernel.NewAddress("1 Main St", "Flat 2", "Berlin", "10115", "DE")
	require.NoError(t, err)
	b, err := kernel.NewAddress("1 Main St", "Flat 2", "Berlin", "10115", "de")
	require.NoError(t, err)
	c, err := kernel.NewAddress("2 Main St", "Flat 2", "Berlin", "10115", "DE")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestNormalizePostcode(t *testing.T) {
	assert.Equal(t, "SW1A 1AA", kernel.NormalizePostcode("  sw1a   1aa "))
	assert.Equal(t, "", kernel.NormalizePostcode("   "))
}
