package entity

import (
	"fmt"
	"strings"
)

// IngestKind categorizes why an ingestion attempt failed.
type IngestKind string

const (
	KindTransportFailure     IngestKind = "transport_failure"
	KindInvalidCredentials   IngestKind = "invalid_credentials"
	KindCancelled            IngestKind = "cancelled"
	KindRejected             IngestKind = "rejected"
	KindUnsupportedItinerary IngestKind = "unsupported_itinerary"
	KindMalformedPayload     IngestKind = "malformed_payload"
	KindValidationFailure    IngestKind = "validation_failure"
)

// User-facing messages attached to rejected ingestions.
const (
	MsgVerifyConfirmationNumber = "verify your confirmation number is entered correctly"
	MsgVerifyFirstName          = "verify your first name is entered correctly"
	MsgVerifyLastName           = "verify your last name is entered correctly"
	MsgCancelled                = "Your reservation has been cancelled"
	MsgInternational            = "Unfortunately, due to uncontrolled limitations of the checkin process, international flights are not yet supported."
)

// FieldError is a user-facing message attached to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// IngestError is the failure result of an ingestion attempt. Base holds
// reservation-level messages, Fields holds per-input messages.
type IngestError struct {
	Kind   IngestKind
	Base   []string
	Fields []FieldError
	Err    error
}

func (e *IngestError) Error() string {
	var parts []string
	for _, msg := range e.Base {
		parts = append(parts, msg)
	}
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	if len(parts) == 0 && e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return fmt.Sprintf("ingest %s: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// Retryable reports whether re-invoking ingestion from scratch can
// succeed. Only transport failures qualify.
func (e *IngestError) Retryable() bool {
	return e.Kind == KindTransportFailure
}

// NewTransportFailure wraps an unreachable/timed-out retrieval call.
func NewTransportFailure(err error) *IngestError {
	return &IngestError{
		Kind: KindTransportFailure,
		Base: []string{"the airline could not be reached, please try again"},
		Err:  err,
	}
}

// NewInvalidCredentials flags all three lookup inputs.
func NewInvalidCredentials() *IngestError {
	return &IngestError{
		Kind: KindInvalidCredentials,
		Fields: []FieldError{
			{Field: "confirmation_number", Message: MsgVerifyConfirmationNumber},
			{Field: "first_name", Message: MsgVerifyFirstName},
			{Field: "last_name", Message: MsgVerifyLastName},
		},
	}
}

// NewCancelled marks a reservation that no longer exists at the airline.
func NewCancelled() *IngestError {
	return &IngestError{
		Kind: KindCancelled,
		Base: []string{MsgCancelled},
	}
}

// NewRejectedOther passes the airline's error string through.
func NewRejectedOther(message string) *IngestError {
	return &IngestError{
		Kind: KindRejected,
		Base: []string{message},
	}
}

// NewUnsupportedItinerary marks an accepted but international itinerary.
func NewUnsupportedItinerary() *IngestError {
	return &IngestError{
		Kind: KindUnsupportedItinerary,
		Base: []string{MsgInternational},
	}
}

// NewMalformedPayload wraps a parser failure on an accepted response.
func NewMalformedPayload(err error) *IngestError {
	return &IngestError{
		Kind: KindMalformedPayload,
		Base: []string{"the reservation could not be interpreted"},
		Err:  err,
	}
}

// NewValidationFailure wraps aggregate invariant violations.
func NewValidationFailure(fields []FieldError, err error) *IngestError {
	return &IngestError{
		Kind:   KindValidationFailure,
		Fields: fields,
		Err:    err,
	}
}

// AsIngestError unwraps err into an IngestError if it is one.
func AsIngestError(err error) (*IngestError, bool) {
	ie, ok := err.(*IngestError)
	return ie, ok
}
