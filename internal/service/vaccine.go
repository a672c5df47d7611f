package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"farmhub/internal/model"
)

type VaccineService struct {
	db *sql.DB
}

func NewVaccineService(db *sql.DB) *VaccineService {
	return &VaccineService{db: db}
}

func (s *VaccineService) Record(ctx context.Context, animalID, vetID, name string, administeredAt time.Time, nextDue *time.Time) (*model.Vaccine, error) {
	v := &model.Vaccine{
		AnimalID:       animalID,
		VetID:          vetID,
		Name:           name,
		AdministeredAt: administeredAt,
		NextDue:        nextDue,
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO vaccines (animal_id, vet_id, name, administered_at, next_due)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, v.AnimalID, v.VetID, v.Name, v.AdministeredAt, v.NextDue)
	if err := row.Scan(&v.ID); err != nil {
		return nil, fmt.Errorf("insert vaccine: %w", err)
	}

	return v, nil
}

func (s *VaccineService) ListByAnimal(ctx context.Context, animalID string) ([]model.Vaccine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, animal_id, vet_id, name, administered_at, next_due, reminded
		FROM vaccines WHERE animal_id = $1 ORDER BY administered_at DESC
	`, animalID)
	if err != nil {
		return nil, fmt.Errorf("query vaccines: %w", err)
	}
	defer rows.Close()

	var vaccines []model.Vaccine
	for rows.Next() {
		var v model.Vaccine
		if err := rows.Scan(&v.ID, &v.AnimalID, &v.VetID, &v.Name, &v.AdministeredAt, &v.NextDue, &v.Reminded); err != nil {
			return nil, fmt.Errorf("scan vaccine: %w", err)
		}
		vaccines = append(vaccines, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return vaccines, nil
}

// DueVaccine pairs a due vaccination with the farmer and tag it concerns,
// for the reminder worker.
type DueVaccine struct {
	VaccineID string
	FarmerID  string
	AnimalTag string
	Name      string
	NextDue   time.Time
}

func (s *VaccineService) GetDue(ctx context.Context, before time.Time, limit int) ([]DueVaccine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, a.farmer_id, a.tag, v.name, v.next_due
		FROM vaccines v
		JOIN animals a ON a.id = v.animal_id
		WHERE v.next_due IS NOT NULL AND NOT v.reminded AND v.next_due <= $1
		ORDER BY v.next_due ASC
		LIMIT $2
	`, before, limit)
	if err != nil {
		return nil, fmt.Errorf("query due vaccines: %w", err)
	}
	defer rows.Close()

	var due []DueVaccine
	for rows.Next() {
		var d DueVaccine
		if err := rows.Scan(&d.VaccineID, &d.FarmerID, &d.AnimalTag, &d.Name, &d.NextDue); err != nil {
			return nil, fmt.Errorf("scan due vaccine: %w", err)
		}
		due = append(due, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return due, nil
}

// MarkReminded records that a reminder task was created for the vaccine so
// the worker never reminds twice.
func (s *VaccineService) MarkReminded(ctx context.Context, vaccineID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE vaccines SET reminded = TRUE WHERE id = $1`, vaccineID)
	if err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}
	return nil
}
