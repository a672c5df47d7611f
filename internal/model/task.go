package model

import "time"

// Task is a farmer's to-do item. The reminder worker also creates these for
// vaccinations coming due.
type Task struct {
	ID        string     `json:"id"`
	FarmerID  string     `json:"farmer_id"`
	Title     string     `json:"title"`
	Details   string     `json:"details,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Done      bool       `json:"done"`
	CreatedAt time.Time  `json:"created_at"`
}
