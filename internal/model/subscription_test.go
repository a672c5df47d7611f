package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPackage(t *testing.T) {
	tests := []struct {
		name   string
		tier   SubscriptionTier
		amount float64
		tokens int
		want   bool
	}{
		{"basic ok", TierBasic, 50.0, 10, true},
		{"standard ok", TierStandard, 100.0, 25, true},
		{"premium ok", TierPremium, 500.0, 150, true},
		{"basic wrong tokens", TierBasic, 50.0, 25, false},
		{"basic wrong amount", TierBasic, 49.0, 10, false},
		{"standard premium mix", TierStandard, 500.0, 150, false},
		{"unknown tier", SubscriptionTier("gold"), 1000.0, 500, false},
		{"empty tier", SubscriptionTier(""), 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidPackage(tt.tier, decimal.NewFromFloat(tt.amount), tt.tokens)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTierPackage(t *testing.T) {
	p, ok := TierStandard.Package()
	require.True(t, ok)
	assert.True(t, p.Amount.Equal(decimal.NewFromFloat(100.0)))
	assert.Equal(t, 25, p.Tokens)

	_, ok = SubscriptionTier("gold").Package()
	assert.False(t, ok)
}
