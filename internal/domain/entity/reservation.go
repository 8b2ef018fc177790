package entity

import (
	"sort"
	"time"
)

// Reservation is the aggregate root for an ingested airline reservation.
// It is only ever constructed by the ingestion pipeline; Passengers and
// Flights live and die with it.
type Reservation struct {
	ID                 string
	ConfirmationNumber string                 `validate:"required,len=6"`
	FirstName          string                 `validate:"required"`
	LastName           string                 `validate:"required"`
	Payload            map[string]interface{} `validate:"required"`
	ArrivalCityName    string
	Passengers         []Passenger `validate:"dive"`
	Flights            []Flight
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DepartureFlights returns the departure-direction flights ordered by
// departure time ascending.
func (r *Reservation) DepartureFlights() []Flight {
	return r.flightsByDirection(DirectionDeparture)
}

// ReturnFlights returns the return-direction flights ordered by departure
// time ascending.
func (r *Reservation) ReturnFlights() []Flight {
	return r.flightsByDirection(DirectionReturn)
}

// Time returns the departure time of the earliest departure-direction
// flight, or nil if the reservation has none.
func (r *Reservation) Time() *time.Time {
	departures := r.DepartureFlights()
	if len(departures) == 0 {
		return nil
	}
	t := departures[0].DepartureTime
	return &t
}

// International reports whether the stored payload flags the itinerary as
// international. A missing flag means domestic.
func (r *Reservation) International() bool {
	body, ok := r.Payload["body"].(map[string]interface{})
	if !ok {
		return false
	}
	return body["isInternationalPNR"] == "true"
}

// Checkins returns the check-in outcomes across all flights.
func (r *Reservation) Checkins() []Checkin {
	var checkins []Checkin
	for _, f := range r.Flights {
		checkins = append(checkins, f.Checkins...)
	}
	return checkins
}

// CheckinsCompleted reports whether every check-in outcome on the
// reservation is completed. A reservation with no check-ins counts as
// completed.
func (r *Reservation) CheckinsCompleted() bool {
	checkins := r.Checkins()
	for _, c := range checkins {
		if !c.Completed() {
			return false
		}
	}
	return true
}

func (r *Reservation) flightsByDirection(direction FlightDirection) []Flight {
	var flights []Flight
	for _, f := range r.Flights {
		if f.Direction == direction {
			flights = append(flights, f)
		}
	}
	sort.Slice(flights, func(i, j int) bool {
		return flights[i].DepartureTime.Before(flights[j].DepartureTime)
	})
	return flights
}
