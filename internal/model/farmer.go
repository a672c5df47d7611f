package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTokenAmount = errors.New("token amount must be positive")
	ErrInsufficientTokens = errors.New("insufficient token balance")
)

// Farmer is a user who sells products and holds a prepaid token balance.
// The balance starts at zero, never goes negative, and is only mutated
// through AddTokens and DeductTokens.
type Farmer struct {
	User
	TokenCount int `json:"token_count"`
}

// AddTokens credits the ledger. A non-positive amount is rejected and the
// balance is left unchanged.
func (f *Farmer) AddTokens(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTokenAmount, n)
	}
	f.TokenCount += n
	return nil
}

// DeductTokens debits the ledger. It fails, leaving the balance unchanged,
// unless n is positive and the balance covers it.
func (f *Farmer) DeductTokens(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTokenAmount, n)
	}
	if f.TokenCount < n {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientTokens, f.TokenCount, n)
	}
	f.TokenCount -= n
	return nil
}

// HasEnoughTokens reports whether the balance covers n.
func (f *Farmer) HasEnoughTokens(n int) bool {
	return n > 0 && f.TokenCount >= n
}
