package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"farmhub/internal/model"
)

var ErrRecipientNotFound = errors.New("recipient not found")

type MessageService struct {
	db *sql.DB
}

func NewMessageService(db *sql.DB) *MessageService {
	return &MessageService{db: db}
}

func (s *MessageService) Send(ctx context.Context, senderID, recipientID, body string) (*model.Message, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = $1`, recipientID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("check recipient: %w", err)
	}

	m := &model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO messages (sender_id, recipient_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, sent_at
	`, m.SenderID, m.RecipientID, m.Body)
	if err := row.Scan(&m.ID, &m.SentAt); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	return m, nil
}

func (s *MessageService) Inbox(ctx context.Context, userID string) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender_id, recipient_id, body, read, sent_at
		FROM messages WHERE recipient_id = $1 ORDER BY sent_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.Read, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return messages, nil
}

// MarkRead flags every message in the user's inbox as read.
func (s *MessageService) MarkRead(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE messages SET read = TRUE WHERE recipient_id = $1 AND NOT read`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}
