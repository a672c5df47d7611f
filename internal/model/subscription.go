package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionTier is one of the fixed token packages a farmer can buy.
type SubscriptionTier string

const (
	TierBasic    SubscriptionTier = "basic"
	TierStandard SubscriptionTier = "standard"
	TierPremium  SubscriptionTier = "premium"
)

// SubscriptionStatus tracks the admin decision on a subscription request.
type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionApproved SubscriptionStatus = "approved"
	SubscriptionRejected SubscriptionStatus = "rejected"
)

// TierPackage is the fixed price and token count of a tier.
type TierPackage struct {
	Amount decimal.Decimal
	Tokens int
}

var tierPackages = map[SubscriptionTier]TierPackage{
	TierBasic:    {Amount: decimal.NewFromFloat(50.0), Tokens: 10},
	TierStandard: {Amount: decimal.NewFromFloat(100.0), Tokens: 25},
	TierPremium:  {Amount: decimal.NewFromFloat(500.0), Tokens: 150},
}

// Package returns the fixed package for a tier, or false for an unknown tier.
func (t SubscriptionTier) Package() (TierPackage, bool) {
	p, ok := tierPackages[t]
	return p, ok
}

// ValidPackage reports whether (tier, amount, tokens) matches the fixed
// package table exactly. A request that fails this check must not be stored.
func ValidPackage(tier SubscriptionTier, amount decimal.Decimal, tokens int) bool {
	p, ok := tierPackages[tier]
	if !ok {
		return false
	}
	return p.Amount.Equal(amount) && p.Tokens == tokens
}

// Subscription is a farmer's request to buy a token package. Approval is
// what credits the farmer's ledger, exactly once per subscription.
type Subscription struct {
	ID            string             `json:"id"`
	FarmerID      string             `json:"farmer_id"`
	Tier          SubscriptionTier   `json:"tier"`
	Amount        decimal.Decimal    `json:"amount"`
	Tokens        int                `json:"tokens"`
	TransactionID string             `json:"transaction_id"`
	Status        SubscriptionStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	DecidedAt     *time.Time         `json:"decided_at,omitempty"`
}
