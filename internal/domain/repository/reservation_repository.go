package repository

import (
	"context"
	"errors"
	"time"

	"checkin-service/internal/domain/entity"
)

var (
	// ErrReservationNotFound is returned when no reservation matches.
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrDuplicateReservation is returned when the confirmation number is
	// already stored.
	ErrDuplicateReservation = errors.New("reservation already exists")
)

// ReservationRepository defines the interface for reservation aggregate
// storage. Create persists the reservation together with its passengers
// and flights in a single transaction.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByConfirmationNumber(ctx context.Context, confirmationNumber string) (*entity.Reservation, error)
	ListOrderedByDepartureTime(ctx context.Context) ([]*entity.Reservation, error)
	Delete(ctx context.Context, id string) error
	UpdateFlightTaskInfo(ctx context.Context, flightID, taskID string, scheduledAt time.Time) error
	FindNeedingCheckinScheduling(ctx context.Context, now time.Time, limit int) ([]*entity.Reservation, error)
}
