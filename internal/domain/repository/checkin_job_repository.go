package repository

import (
	"context"

	"checkin-service/internal/domain/entity"
)

// CheckinJobClient defines the interface to the check-in worker service.
// ScheduleCheckin is fire-and-forget: the worker owns the exact fire time
// relative to the departure time it is given, and returns a task ID that
// can later be cancelled by flight reference.
type CheckinJobClient interface {
	ScheduleCheckin(ctx context.Context, flight *entity.Flight, confirmationNumber, firstName, lastName string) (string, error)
	CancelByFlight(ctx context.Context, flightID string) error
}
