package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"farmhub/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskService struct {
	db *sql.DB
}

func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

func (s *TaskService) Create(ctx context.Context, farmerID, title, details string, dueDate *time.Time) (*model.Task, error) {
	t := &model.Task{
		FarmerID: farmerID,
		Title:    title,
		Details:  details,
		DueDate:  dueDate,
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (farmer_id, title, details, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, t.FarmerID, t.Title, t.Details, t.DueDate)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return t, nil
}

func (s *TaskService) Complete(ctx context.Context, id, farmerID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET done = TRUE WHERE id = $1 AND farmer_id = $2`,
		id, farmerID,
	)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) ListByFarmer(ctx context.Context, farmerID string) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, farmer_id, title, details, due_date, done, created_at
		FROM tasks WHERE farmer_id = $1 ORDER BY created_at DESC
	`, farmerID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.FarmerID, &t.Title, &t.Details, &t.DueDate, &t.Done, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return tasks, nil
}
