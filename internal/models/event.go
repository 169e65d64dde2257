package models

import (
	"time"

	"github.com/lib/pq"
)

// Event modes.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Event represents a discoverable event. Slug, date and time are always
// stored in canonical form; slug is derived from the title and unique.
type Event struct {
	ID          string         `db:"id" json:"id"`
	Slug        string         `db:"slug" json:"slug"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Overview    string         `db:"overview" json:"overview"`
	Image       string         `db:"image" json:"image"`
	Venue       string         `db:"venue" json:"venue"`
	Location    string         `db:"location" json:"location"`
	Date        string         `db:"event_date" json:"date"`
	Time        string         `db:"event_time" json:"time"`
	Mode        string         `db:"mode" json:"mode"`
	Audience    string         `db:"audience" json:"audience"`
	Agenda      pq.StringArray `db:"agenda" json:"agenda"`
	Organizer   string         `db:"organizer" json:"organizer"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// EventFilter narrows down event listings.
type EventFilter struct {
	Mode string
	Tag  string
}
