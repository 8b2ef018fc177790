package repository

import (
	"context"

	"checkin-service/internal/domain/entity"
)

// CheckinRepository defines the interface for check-in outcome storage.
type CheckinRepository interface {
	Create(ctx context.Context, checkin *entity.Checkin) error
	FindByFlight(ctx context.Context, flightID string) ([]*entity.Checkin, error)
	CountsByReservation(ctx context.Context, reservationID string) (total int64, completed int64, err error)
}
