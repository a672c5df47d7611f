package model

import "time"

// Animal is a head of livestock registered by a farmer.
type Animal struct {
	ID          string     `json:"id"`
	FarmerID    string     `json:"farmer_id"`
	Tag         string     `json:"tag"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
