package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"farmhub/internal/model"
)

var ErrFarmerNotFound = errors.New("farmer not found")

type TokenService struct {
	db  *sql.DB
	now func() time.Time
}

func NewTokenService(db *sql.DB) *TokenService {
	return &TokenService{db: db, now: time.Now}
}

type TokenBalance struct {
	Tokens int `json:"tokens"`
	Spent  int `json:"spent"`
}

func (s *TokenService) Balance(ctx context.Context, farmerID string) (*TokenBalance, error) {
	var b TokenBalance
	err := s.db.QueryRowContext(ctx, `
		SELECT u.token_count, COALESCE((SELECT SUM(tokens) FROM token_spends WHERE farmer_id = u.id), 0)
		FROM users u WHERE u.id = $1 AND u.role = 'farmer'
	`, farmerID).Scan(&b.Tokens, &b.Spent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFarmerNotFound
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// Spend deducts tokens from the farmer's ledger and records the spend. The
// farmer row is locked for the duration of the check-then-debit so two
// concurrent spends cannot both pass the balance guard.
func (s *TokenService) Spend(ctx context.Context, farmerID string, tokens int, reason string) error {
	if tokens <= 0 {
		return model.ErrInvalidTokenAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var farmer model.Farmer
	err = tx.QueryRowContext(ctx,
		`SELECT token_count FROM users WHERE id = $1 AND role = 'farmer' FOR UPDATE`,
		farmerID,
	).Scan(&farmer.TokenCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFarmerNotFound
		}
		return fmt.Errorf("get token count: %w", err)
	}

	if err := farmer.DeductTokens(tokens); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET token_count = $1 WHERE id = $2`,
		farmer.TokenCount, farmerID,
	)
	if err != nil {
		return fmt.Errorf("update token count: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO token_spends (farmer_id, tokens, reason, processed_at) VALUES ($1, $2, $3, $4)`,
		farmerID, tokens, reason, s.now(),
	)
	if err != nil {
		return fmt.Errorf("insert token spend: %w", err)
	}

	return tx.Commit()
}

func (s *TokenService) ListSpends(ctx context.Context, farmerID string) ([]model.TokenSpend, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, farmer_id, tokens, reason, processed_at FROM token_spends WHERE farmer_id = $1 ORDER BY processed_at DESC`,
		farmerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query token spends: %w", err)
	}
	defer rows.Close()

	var spends []model.TokenSpend
	for rows.Next() {
		var sp model.TokenSpend
		if err := rows.Scan(&sp.ID, &sp.FarmerID, &sp.Tokens, &sp.Reason, &sp.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan token spend: %w", err)
		}
		spends = append(spends, sp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return spends, nil
}
