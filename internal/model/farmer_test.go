package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTokens(t *testing.T) {
	f := &Farmer{}

	require.NoError(t, f.AddTokens(10))
	assert.Equal(t, 10, f.TokenCount)

	require.NoError(t, f.AddTokens(25))
	assert.Equal(t, 35, f.TokenCount)

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		assert.ErrorIs(t, f.AddTokens(0), ErrInvalidTokenAmount)
		assert.ErrorIs(t, f.AddTokens(-5), ErrInvalidTokenAmount)
		assert.Equal(t, 35, f.TokenCount)
	})
}

func TestDeductTokens(t *testing.T) {
	t.Run("deduct from fresh balance fails", func(t *testing.T) {
		f := &Farmer{}
		assert.ErrorIs(t, f.DeductTokens(1), ErrInsufficientTokens)
		assert.Equal(t, 0, f.TokenCount)
	})

	t.Run("credit then deduct drains to zero", func(t *testing.T) {
		f := &Farmer{}
		require.NoError(t, f.AddTokens(7))
		require.NoError(t, f.DeductTokens(7))
		assert.Equal(t, 0, f.TokenCount)
	})

	t.Run("overdraft leaves balance unchanged", func(t *testing.T) {
		f := &Farmer{TokenCount: 7}
		assert.ErrorIs(t, f.DeductTokens(8), ErrInsufficientTokens)
		assert.Equal(t, 7, f.TokenCount)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		f := &Farmer{TokenCount: 7}
		assert.ErrorIs(t, f.DeductTokens(0), ErrInvalidTokenAmount)
		assert.ErrorIs(t, f.DeductTokens(-3), ErrInvalidTokenAmount)
		assert.Equal(t, 7, f.TokenCount)
	})
}

func TestHasEnoughTokens(t *testing.T) {
	f := &Farmer{TokenCount: 10}

	assert.True(t, f.HasEnoughTokens(10))
	assert.True(t, f.HasEnoughTokens(1))
	assert.False(t, f.HasEnoughTokens(11))
	assert.False(t, f.HasEnoughTokens(0))
	assert.False(t, f.HasEnoughTokens(-1))
}
