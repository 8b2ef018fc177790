package entity

import "time"

// Passenger belongs to exactly one Reservation and carries the traveler
// details parsed from the retrieved payload.
type Passenger struct {
	ID            string
	ReservationID string
	FirstName     string `validate:"required"`
	LastName      string `validate:"required"`
	AccountNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName returns the passenger's display name.
func (p *Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}
