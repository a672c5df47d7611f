package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"farmhub/internal/model"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentDecided  = errors.New("appointment already completed or cancelled")
)

type AppointmentService struct {
	db *sql.DB
}

func NewAppointmentService(db *sql.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

func (s *AppointmentService) Book(ctx context.Context, farmerID, vetID, animalID string, scheduledAt time.Time, reason string) (*model.Appointment, error) {
	ap := &model.Appointment{
		FarmerID:    farmerID,
		VetID:       vetID,
		AnimalID:    animalID,
		ScheduledAt: scheduledAt,
		Reason:      reason,
		Status:      model.AppointmentScheduled,
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO appointments (farmer_id, vet_id, animal_id, scheduled_at, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, ap.FarmerID, ap.VetID, ap.AnimalID, ap.ScheduledAt, ap.Reason, ap.Status)
	if err := row.Scan(&ap.ID, &ap.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	return ap, nil
}

// Complete and Cancel are guarded single-step updates: only a scheduled
// appointment can move, and only once.
func (s *AppointmentService) Complete(ctx context.Context, id, vetID string) error {
	return s.close(ctx, id, "vet_id", vetID, model.AppointmentCompleted)
}

func (s *AppointmentService) Cancel(ctx context.Context, id, farmerID string) error {
	return s.close(ctx, id, "farmer_id", farmerID, model.AppointmentCancelled)
}

func (s *AppointmentService) close(ctx context.Context, id, ownerColumn, ownerID string, to model.AppointmentStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE appointments SET status = $1
		WHERE id = $2 AND `+ownerColumn+` = $3 AND status = $4
	`, to, id, ownerID, model.AppointmentScheduled)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		var one int
		err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM appointments WHERE id = $1 AND `+ownerColumn+` = $2`, id, ownerID,
		).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAppointmentNotFound
		}
		if err != nil {
			return fmt.Errorf("check appointment: %w", err)
		}
		return ErrAppointmentDecided
	}
	return nil
}

func (s *AppointmentService) ListByVet(ctx context.Context, vetID string) ([]model.Appointment, error) {
	return s.list(ctx, "vet_id", vetID)
}

func (s *AppointmentService) ListByFarmer(ctx context.Context, farmerID string) ([]model.Appointment, error) {
	return s.list(ctx, "farmer_id", farmerID)
}

func (s *AppointmentService) list(ctx context.Context, column, id string) ([]model.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, farmer_id, vet_id, animal_id, scheduled_at, reason, status, created_at
		FROM appointments WHERE `+column+` = $1 ORDER BY scheduled_at ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []model.Appointment
	for rows.Next() {
		var ap model.Appointment
		if err := rows.Scan(&ap.ID, &ap.FarmerID, &ap.VetID, &ap.AnimalID, &ap.ScheduledAt, &ap.Reason, &ap.Status, &ap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, ap)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return appointments, nil
}
