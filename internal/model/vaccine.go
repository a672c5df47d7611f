package model

import "time"

// Vaccine is a vaccination record written by a vet for an animal. NextDue,
// when set, feeds the reminder worker.
type Vaccine struct {
	ID             string     `json:"id"`
	AnimalID       string     `json:"animal_id"`
	VetID          string     `json:"vet_id"`
	Name           string     `json:"name"`
	AdministeredAt time.Time  `json:"administered_at"`
	NextDue        *time.Time `json:"next_due,omitempty"`
	Reminded       bool       `json:"-"`
}
