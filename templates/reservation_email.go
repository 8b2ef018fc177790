package templates

import (
	"fmt"
	"strings"

	"checkin-service/internal/domain/entity"
)

const reservationCreatedSubject = "Check-in scheduled for your trip to %s"

const reservationCreatedBody = `Hi %s,

We found your reservation %s and we're watching it.

Travelers:
%s

Flights:
%s

We'll check you in automatically for the first leg of each direction as
soon as the airline opens the window. Sit back and enjoy your boarding
position.`

// ReservationCreated renders the subject and body of the new-reservation
// notification email.
func ReservationCreated(reservation *entity.Reservation) (string, string) {
	destination := reservation.ArrivalCityName
	if destination == "" {
		destination = "your destination"
	}

	var travelers []string
	for i := range reservation.Passengers {
		travelers = append(travelers, "  - "+reservation.Passengers[i].FullName())
	}

	var flights []string
	for _, flight := range append(reservation.DepartureFlights(), reservation.ReturnFlights()...) {
		flights = append(flights, fmt.Sprintf("  - %s %s %s -> %s departing %s",
			flight.Direction,
			flight.FlightNumber,
			flight.OriginAirport,
			flight.DestinationAirport,
			flight.DepartureTime.Format("Mon, 02 Jan 2006 15:04 MST")))
	}

	subject := fmt.Sprintf(reservationCreatedSubject, destination)
	body := fmt.Sprintf(reservationCreatedBody,
		reservation.FirstName,
		reservation.ConfirmationNumber,
		strings.Join(travelers, "\n"),
		strings.Join(flights, "\n"))

	return subject, body
}
