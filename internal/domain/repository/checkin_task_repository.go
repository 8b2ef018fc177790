package repository

import (
	"context"

	"checkin-service/internal/domain/entity"
)

// CheckinTaskRepository defines the interface for scheduled check-in task
// records.
type CheckinTaskRepository interface {
	Create(ctx context.Context, task *entity.CheckinTask) error
	FindByConfirmationNumber(ctx context.Context, confirmationNumber string) ([]*entity.CheckinTask, error)
	MarkCancelledByFlight(ctx context.Context, flightID string) error
}
