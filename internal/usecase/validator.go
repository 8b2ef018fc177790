package usecase

import (
	"errors"
	"fmt"

	"checkin-service/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// AggregateValidator checks the assembled reservation aggregate against
// its invariants before anything is persisted.
type AggregateValidator struct {
	validate *validator.Validate
}

// NewAggregateValidator creates a new aggregate validator
func NewAggregateValidator() *AggregateValidator {
	return &AggregateValidator{
		validate: validator.New(),
	}
}

// Validate returns nil when the aggregate is well formed. Violations
// should not occur when parsing is correct; callers treat them as
// defects.
func (v *AggregateValidator) Validate(reservation *entity.Reservation) *entity.IngestError {
	if err := v.validate.Struct(reservation); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]entity.FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, entity.FieldError{
					Field:   fieldName(fe.Field()),
					Message: messageFor(fe),
				})
			}
			return entity.NewValidationFailure(fields, err)
		}
		return entity.NewValidationFailure(nil, err)
	}

	// (direction, position) pairs must be unique within the reservation.
	seen := make(map[string]bool, len(reservation.Flights))
	for _, flight := range reservation.Flights {
		key := fmt.Sprintf("%s:%d", flight.Direction, flight.Position)
		if seen[key] {
			return entity.NewValidationFailure(
				[]entity.FieldError{{Field: "flights", Message: fmt.Sprintf("duplicate %s leg at position %d", flight.Direction, flight.Position)}},
				nil,
			)
		}
		seen[key] = true
	}

	return nil
}

func fieldName(structField string) string {
	switch structField {
	case "ConfirmationNumber":
		return "confirmation_number"
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	case "Payload":
		return "payload"
	default:
		return structField
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
