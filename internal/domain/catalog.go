package domain

import "time"

// Service represents a bookable catalog entry.
// The scheduling core treats the catalog as read-only; appointments
// freeze duration and price at booking time.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StaffResource represents a bookable staff member.
// Availability is toggled externally and must be re-read on every
// booking attempt, never cached across requests.
type StaffResource struct {
	ID        int64
	Name      string
	Available bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
