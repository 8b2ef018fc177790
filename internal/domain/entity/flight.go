package entity

import "time"

// FlightDirection is the direction of a leg within an itinerary
type FlightDirection string

const (
	DirectionDeparture FlightDirection = "departure"
	DirectionReturn    FlightDirection = "return"
)

// Flight represents one leg of a reservation's itinerary. Position is the
// 1-based chronological ordinal of the leg within its direction; the
// position-1 leg is the one eligible for check-in scheduling.
type Flight struct {
	ID                 string
	ReservationID      string
	Direction          FlightDirection
	Position           int
	FlightNumber       string
	OriginAirport      string
	DestinationAirport string
	ArrivalCityName    string
	DepartureTime      time.Time
	LastTaskID         string
	LastScheduledAt    *time.Time
	Checkins           []Checkin
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Scheduled reports whether a check-in job has been requested for this leg.
func (f *Flight) Scheduled() bool {
	return f.LastTaskID != ""
}
