package parser

import (
	"fmt"
	"sort"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/pkg/logger"
)

// PayloadParser builds passenger and flight records from an accepted
// retrieval payload body. Parsing is deterministic: the same body always
// yields the same records in the same order.
type PayloadParser struct {
	logger logger.Logger
}

// NewPayloadParser creates a new payload parser
func NewPayloadParser(logger logger.Logger) *PayloadParser {
	return &PayloadParser{
		logger: logger,
	}
}

// Passengers extracts the traveler records from the payload body.
func (p *PayloadParser) Passengers(body map[string]interface{}) ([]entity.Passenger, error) {
	raw, ok := body["passengers"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("payload body has no passengers section")
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("payload body has an empty passengers section")
	}

	passengers := make([]entity.Passenger, 0, len(raw))
	for i, item := range raw {
		record, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("passenger %d is not an object", i)
		}

		firstName := stringField(record, "firstName")
		lastName := stringField(record, "lastName")
		if firstName == "" || lastName == "" {
			return nil, fmt.Errorf("passenger %d is missing a name", i)
		}

		passengers = append(passengers, entity.Passenger{
			FirstName:     firstName,
			LastName:      lastName,
			AccountNumber: stringField(record, "accountNumber"),
		})
	}

	return passengers, nil
}

// Flights extracts the itinerary legs from the payload body. Legs are
// re-sorted chronologically within each direction and positions are
// assigned 1..n from that order, regardless of how the airline ordered
// them.
func (p *PayloadParser) Flights(body map[string]interface{}) ([]entity.Flight, error) {
	itinerary, ok := body["itinerary"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("payload body has no itinerary section")
	}

	directions, ok := itinerary["originationDestinations"].([]interface{})
	if !ok || len(directions) == 0 {
		return nil, fmt.Errorf("itinerary has no origination destinations")
	}

	var flights []entity.Flight
	for i, item := range directions {
		bound, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("origination destination %d is not an object", i)
		}

		direction, err := boundDirection(bound, i)
		if err != nil {
			return nil, err
		}

		legs, err := p.parseSegments(bound, direction)
		if err != nil {
			return nil, err
		}
		flights = append(flights, legs...)
	}

	return flights, nil
}

func (p *PayloadParser) parseSegments(bound map[string]interface{}, direction entity.FlightDirection) ([]entity.Flight, error) {
	raw, ok := bound["segments"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("%s direction has no segments", direction)
	}

	legs := make([]entity.Flight, 0, len(raw))
	for i, item := range raw {
		segment, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s segment %d is not an object", direction, i)
		}

		departureRaw := stringField(segment, "departureDateTime")
		departureTime, err := time.Parse(time.RFC3339, departureRaw)
		if err != nil {
			return nil, fmt.Errorf("%s segment %d has invalid departure time %q: %w", direction, i, departureRaw, err)
		}

		legs = append(legs, entity.Flight{
			Direction:          direction,
			FlightNumber:       stringField(segment, "flightNumber"),
			OriginAirport:      stringField(segment, "originAirportCode"),
			DestinationAirport: stringField(segment, "destinationAirportCode"),
			ArrivalCityName:    stringField(segment, "arrivalCityName"),
			DepartureTime:      departureTime.UTC(),
		})
	}

	// Positions follow chronological order, not payload order.
	sort.SliceStable(legs, func(i, j int) bool {
		return legs[i].DepartureTime.Before(legs[j].DepartureTime)
	})
	for i := range legs {
		legs[i].Position = i + 1
	}

	return legs, nil
}

func boundDirection(bound map[string]interface{}, index int) (entity.FlightDirection, error) {
	switch stringField(bound, "direction") {
	case "departure":
		return entity.DirectionDeparture, nil
	case "return":
		return entity.DirectionReturn, nil
	case "":
		// Older payloads omit the label; the first bound is the outbound.
		if index == 0 {
			return entity.DirectionDeparture, nil
		}
		if index == 1 {
			return entity.DirectionReturn, nil
		}
		return "", fmt.Errorf("origination destination %d has no direction", index)
	default:
		return "", fmt.Errorf("origination destination %d has unknown direction %q", index, stringField(bound, "direction"))
	}
}

func stringField(m map[string]interface{}, key string) string {
	value, _ := m[key].(string)
	return value
}
