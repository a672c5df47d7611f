package model

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment is a vet visit booked by a farmer for one of their animals.
type Appointment struct {
	ID          string            `json:"id"`
	FarmerID    string            `json:"farmer_id"`
	VetID       string            `json:"vet_id"`
	AnimalID    string            `json:"animal_id"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	Reason      string            `json:"reason,omitempty"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}
