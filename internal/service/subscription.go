package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"farmhub/internal/model"
)

var (
	ErrInvalidPackage         = errors.New("tier, amount and tokens do not match a known package")
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrSubscriptionNotPending = errors.New("subscription already decided")
)

type SubscriptionService struct {
	db  *sql.DB
	now func() time.Time
}

func NewSubscriptionService(db *sql.DB) *SubscriptionService {
	return &SubscriptionService{db: db, now: time.Now}
}

// Request stores a pending subscription after validating the package against
// the fixed tier table. An empty transaction id gets a generated reference.
func (s *SubscriptionService) Request(ctx context.Context, farmerID string, tier model.SubscriptionTier, amount decimal.Decimal, tokens int, transactionID string) (*model.Subscription, error) {
	if !model.ValidPackage(tier, amount, tokens) {
		return nil, ErrInvalidPackage
	}
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	sub := &model.Subscription{
		FarmerID:      farmerID,
		Tier:          tier,
		Amount:        amount,
		Tokens:        tokens,
		TransactionID: transactionID,
		Status:        model.SubscriptionPending,
		CreatedAt:     s.now(),
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO subscriptions (farmer_id, tier, amount, tokens, transaction_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, sub.FarmerID, sub.Tier, sub.Amount, sub.Tokens, sub.TransactionID, sub.Status, sub.CreatedAt)
	if err := row.Scan(&sub.ID); err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}

	return sub, nil
}

// Approve flips a pending subscription to approved and credits the farmer's
// ledger in the same transaction. The row lock plus the pending check make
// the credit happen exactly once per subscription, however many times
// approval is attempted.
func (s *SubscriptionService) Approve(ctx context.Context, id string) error {
	return s.decide(ctx, id, model.SubscriptionApproved)
}

// Reject flips a pending subscription to rejected. No tokens move.
func (s *SubscriptionService) Reject(ctx context.Context, id string) error {
	return s.decide(ctx, id, model.SubscriptionRejected)
}

func (s *SubscriptionService) decide(ctx context.Context, id string, decision model.SubscriptionStatus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var (
		farmerID string
		tokens   int
		status   model.SubscriptionStatus
	)
	err = tx.QueryRowContext(ctx,
		`SELECT farmer_id, tokens, status FROM subscriptions WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&farmerID, &tokens, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSubscriptionNotFound
		}
		return fmt.Errorf("get subscription: %w", err)
	}

	if status != model.SubscriptionPending {
		return ErrSubscriptionNotPending
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE subscriptions SET status = $1, decided_at = $2 WHERE id = $3`,
		decision, s.now(), id,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	if decision == model.SubscriptionApproved {
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET token_count = token_count + $1 WHERE id = $2`,
			tokens, farmerID,
		)
		if err != nil {
			return fmt.Errorf("credit tokens: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SubscriptionService) ListByFarmer(ctx context.Context, farmerID string) ([]model.Subscription, error) {
	return s.list(ctx, `farmer_id = $1`, farmerID)
}

func (s *SubscriptionService) ListPending(ctx context.Context) ([]model.Subscription, error) {
	return s.list(ctx, `status = $1`, string(model.SubscriptionPending))
}

func (s *SubscriptionService) list(ctx context.Context, where, arg string) ([]model.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, farmer_id, tier, amount, tokens, transaction_id, status, created_at, decided_at
		FROM subscriptions WHERE `+where+` ORDER BY created_at DESC
	`, arg)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		var sub model.Subscription
		if err := rows.Scan(&sub.ID, &sub.FarmerID, &sub.Tier, &sub.Amount, &sub.Tokens,
			&sub.TransactionID, &sub.Status, &sub.CreatedAt, &sub.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return subs, nil
}
