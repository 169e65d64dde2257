package models

import "time"

// Booking records a visitor reserving a spot for an event. The
// (event_id, email) pair is unique; the referenced event must exist.
type Booking struct {
	ID        string    `db:"id" json:"id"`
	EventID   string    `db:"event_id" json:"event_id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
