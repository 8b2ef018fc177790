package repository

import (
	"context"

	"checkin-service/internal/domain/entity"
)

// NotificationRepository defines the interface for outbound notifications.
// Delivery is best-effort; failures never roll back an ingestion.
type NotificationRepository interface {
	ReservationCreated(ctx context.Context, reservation *entity.Reservation) error
}
