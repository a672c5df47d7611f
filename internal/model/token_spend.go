package model

import "time"

// TokenSpend is the audit record of a single ledger deduction.
type TokenSpend struct {
	ID          string    `json:"id"`
	FarmerID    string    `json:"farmer_id"`
	Tokens      int       `json:"tokens"`
	Reason      string    `json:"reason"`
	ProcessedAt time.Time `json:"processed_at"`
}
