package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmhub/internal/model"
)

var (
	ErrAnimalNotFound = errors.New("animal not found")
	ErrDuplicateTag   = errors.New("animal tag already registered")
)

type AnimalService struct {
	db *sql.DB
}

func NewAnimalService(db *sql.DB) *AnimalService {
	return &AnimalService{db: db}
}

func (s *AnimalService) Register(ctx context.Context, farmerID, tag, species, breed string, dateOfBirth *time.Time) (*model.Animal, error) {
	a := &model.Animal{
		FarmerID:    farmerID,
		Tag:         tag,
		Species:     species,
		Breed:       breed,
		DateOfBirth: dateOfBirth,
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO animals (farmer_id, tag, species, breed, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.FarmerID, a.Tag, a.Species, a.Breed, a.DateOfBirth)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrDuplicateTag
		}
		return nil, fmt.Errorf("insert animal: %w", err)
	}

	return a, nil
}

func (s *AnimalService) ListByFarmer(ctx context.Context, farmerID string) ([]model.Animal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, farmer_id, tag, species, breed, date_of_birth, created_at
		FROM animals WHERE farmer_id = $1 ORDER BY created_at DESC
	`, farmerID)
	if err != nil {
		return nil, fmt.Errorf("query animals: %w", err)
	}
	defer rows.Close()

	var animals []model.Animal
	for rows.Next() {
		var a model.Animal
		if err := rows.Scan(&a.ID, &a.FarmerID, &a.Tag, &a.Species, &a.Breed, &a.DateOfBirth, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan animal: %w", err)
		}
		animals = append(animals, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return animals, nil
}

// Owns reports whether the animal belongs to the farmer.
func (s *AnimalService) Owns(ctx context.Context, farmerID, animalID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM animals WHERE id = $1 AND farmer_id = $2`,
		animalID, farmerID,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check animal owner: %w", err)
	}
	return true, nil
}
