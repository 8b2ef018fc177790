package entity

import (
	"strings"
	"time"
)

// Airline error markers observed in retrieval responses.
const (
	markerEnteredIncorrectly = "unable to locate a reservation"
	markerCancelled          = "has been cancelled"
)

// RetrievedReservation is the raw reservation document returned by the
// airline's retrieval endpoint. The ingestion pipeline classifies it
// before any entities are built from it.
type RetrievedReservation struct {
	HTTPStatusCode int                    `json:"httpStatusCode"`
	Opstatus       int                    `json:"opstatus"`
	Errmsg         string                 `json:"errmsg"`
	Body           map[string]interface{} `json:"body"`
}

// IsError reports whether the airline rejected the retrieval.
func (r *RetrievedReservation) IsError() bool {
	return r.Errmsg != ""
}

// IsEnteredIncorrectly reports whether the airline could not match the
// name/confirmation combination.
func (r *RetrievedReservation) IsEnteredIncorrectly() bool {
	return strings.Contains(strings.ToLower(r.Errmsg), markerEnteredIncorrectly)
}

// IsCancelled reports whether the reservation no longer exists at the
// airline.
func (r *RetrievedReservation) IsCancelled() bool {
	return strings.Contains(strings.ToLower(r.Errmsg), markerCancelled)
}

// ErrorMessage returns the airline's error string, empty when accepted.
func (r *RetrievedReservation) ErrorMessage() string {
	return r.Errmsg
}

// IsInternational reports whether the itinerary crosses a border. A
// missing flag means domestic.
func (r *RetrievedReservation) IsInternational() bool {
	if r.Body == nil {
		return false
	}
	return r.Body["isInternationalPNR"] == "true"
}

// ArrivalCityName returns the destination city of the itinerary.
func (r *RetrievedReservation) ArrivalCityName() string {
	if r.Body == nil {
		return ""
	}
	name, _ := r.Body["arrivalCityName"].(string)
	return name
}

// Document returns the full response as the opaque payload stored on the
// Reservation.
func (r *RetrievedReservation) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"httpStatusCode": r.HTTPStatusCode,
		"opstatus":       r.Opstatus,
		"errmsg":         r.Errmsg,
	}
	if r.Body != nil {
		doc["body"] = r.Body
	}
	return doc
}

// Retrieval outcomes recorded in the archive.
const (
	RetrievalOutcomeAccepted      = "accepted"
	RetrievalOutcomeBadCredential = "entered_incorrectly"
	RetrievalOutcomeCancelled     = "cancelled"
	RetrievalOutcomeError         = "error"
)

// RetrievalRecord is one archived retrieval attempt, kept for post-hoc
// inspection regardless of whether ingestion accepted the response.
type RetrievalRecord struct {
	ID                 string                 `bson:"_id,omitempty"`
	ConfirmationNumber string                 `bson:"confirmationNumber"`
	FirstName          string                 `bson:"firstName"`
	LastName           string                 `bson:"lastName"`
	Outcome            string                 `bson:"outcome"`
	ErrorMessage       string                 `bson:"errorMessage,omitempty"`
	Document           map[string]interface{} `bson:"document,omitempty"`
	RetrievedAt        time.Time              `bson:"retrievedAt"`
}
