package usecase

import (
	"context"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/clock"
	"checkin-service/pkg/logger"
	"checkin-service/pkg/metrics"
)

// CheckinScheduler selects the check-in-eligible flights of a reservation
// and hands each one to the check-in worker. A leg is eligible when it is
// the first of its direction and still departs strictly after now. The
// worker owns the exact fire time; this component only decides which
// flights are schedule-worthy.
type CheckinScheduler struct {
	jobClient       repository.CheckinJobClient
	taskRepo        repository.CheckinTaskRepository
	reservationRepo repository.ReservationRepository
	clock           clock.Clock
	logger          logger.Logger
	metrics         *metrics.Metrics
}

// NewCheckinScheduler creates a new check-in scheduler
func NewCheckinScheduler(
	jobClient repository.CheckinJobClient,
	taskRepo repository.CheckinTaskRepository,
	reservationRepo repository.ReservationRepository,
	clk clock.Clock,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *CheckinScheduler {
	return &CheckinScheduler{
		jobClient:       jobClient,
		taskRepo:        taskRepo,
		reservationRepo: reservationRepo,
		clock:           clk,
		logger:          logger,
		metrics:         metrics,
	}
}

// Schedule requests deferred check-in execution for every eligible flight
// of the reservation. Invoked once per successfully ingested reservation;
// flights that already carry a task are skipped. Job failures are logged
// and left for the sweeper, never propagated.
func (s *CheckinScheduler) Schedule(ctx context.Context, reservation *entity.Reservation) {
	now := s.clock.Now()

	for i := range reservation.Flights {
		flight := &reservation.Flights[i]

		if flight.Position != 1 {
			continue
		}
		if !flight.DepartureTime.After(now) {
			s.logger.Info("Skipping departed flight",
				"flightId", flight.ID,
				"departureTime", flight.DepartureTime)
			continue
		}
		if flight.Scheduled() {
			continue
		}

		taskID, err := s.jobClient.ScheduleCheckin(ctx, flight, reservation.ConfirmationNumber, reservation.FirstName, reservation.LastName)
		if err != nil {
			s.logger.Error("Failed to schedule check-in",
				"flightId", flight.ID,
				"confirmationNumber", reservation.ConfirmationNumber,
				"error", err)
			continue
		}

		task := &entity.CheckinTask{
			TaskID:             taskID,
			FlightID:           flight.ID,
			ConfirmationNumber: reservation.ConfirmationNumber,
			DepartureTime:      flight.DepartureTime,
			Status:             entity.TaskStatusScheduled,
		}
		if err := s.taskRepo.Create(ctx, task); err != nil {
			s.logger.Error("Failed to record check-in task", "taskId", taskID, "error", err)
		}

		scheduledAt := now
		if err := s.reservationRepo.UpdateFlightTaskInfo(ctx, flight.ID, taskID, scheduledAt); err != nil {
			s.logger.Error("Failed to record task on flight", "flightId", flight.ID, "error", err)
		}
		flight.LastTaskID = taskID
		flight.LastScheduledAt = &scheduledAt

		if s.metrics != nil {
			s.metrics.CheckinsScheduled.Inc()
		}

		s.logger.Info("Check-in scheduled",
			"flightId", flight.ID,
			"direction", flight.Direction,
			"taskId", taskID)
	}
}

// ScheduleMissing picks up eligible flights that still have no check-in
// task, covering a crash between commit and scheduling.
func (s *CheckinScheduler) ScheduleMissing(ctx context.Context) error {
	reservations, err := s.reservationRepo.FindNeedingCheckinScheduling(ctx, s.clock.Now(), 100)
	if err != nil {
		s.logger.Error("Failed to find flights needing scheduling", "error", err)
		return err
	}

	if len(reservations) > 0 {
		s.logger.Info("Found reservations needing check-in scheduling", "count", len(reservations))
	}

	for _, reservation := range reservations {
		s.Schedule(ctx, reservation)
	}
	return nil
}

// CancelForReservation cancels the pending check-in jobs of every flight
// on the reservation. Used by the deletion path.
func (s *CheckinScheduler) CancelForReservation(ctx context.Context, reservation *entity.Reservation) {
	for i := range reservation.Flights {
		flight := &reservation.Flights[i]
		if !flight.Scheduled() {
			continue
		}

		if err := s.jobClient.CancelByFlight(ctx, flight.ID); err != nil {
			s.logger.Error("Failed to cancel check-in jobs", "flightId", flight.ID, "error", err)
			continue
		}
		if err := s.taskRepo.MarkCancelledByFlight(ctx, flight.ID); err != nil {
			s.logger.Error("Failed to mark tasks cancelled", "flightId", flight.ID, "error", err)
		}
	}
}
