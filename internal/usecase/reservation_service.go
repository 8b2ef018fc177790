package usecase

import (
	"context"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/logger"
)

// ReservationService answers queries about ingested reservations and owns
// the deletion path.
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	checkinRepo     repository.CheckinRepository
	scheduler       *CheckinScheduler
	logger          logger.Logger
}

// NewReservationService creates a new reservation service
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	checkinRepo repository.CheckinRepository,
	scheduler *CheckinScheduler,
	logger logger.Logger,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		checkinRepo:     checkinRepo,
		scheduler:       scheduler,
		logger:          logger,
	}
}

// Get loads the aggregate for a confirmation number.
func (s *ReservationService) Get(ctx context.Context, confirmationNumber string) (*entity.Reservation, error) {
	return s.reservationRepo.FindByConfirmationNumber(ctx, confirmationNumber)
}

// List returns all reservations ordered by their earliest departure.
func (s *ReservationService) List(ctx context.Context) ([]*entity.Reservation, error) {
	return s.reservationRepo.ListOrderedByDepartureTime(ctx)
}

// CheckinsCompleted reports whether every check-in of the reservation has
// completed. A reservation with no check-ins counts as completed.
func (s *ReservationService) CheckinsCompleted(ctx context.Context, reservationID string) (bool, error) {
	total, completed, err := s.checkinRepo.CountsByReservation(ctx, reservationID)
	if err != nil {
		return false, err
	}
	return total == completed, nil
}

// Delete removes the reservation and everything it owns, after asking
// the worker to cancel any pending check-in jobs for its flights.
func (s *ReservationService) Delete(ctx context.Context, confirmationNumber string) error {
	reservation, err := s.reservationRepo.FindByConfirmationNumber(ctx, confirmationNumber)
	if err != nil {
		return err
	}

	s.scheduler.CancelForReservation(ctx, reservation)

	if err := s.reservationRepo.Delete(ctx, reservation.ID); err != nil {
		return err
	}

	s.logger.Info("Reservation deleted",
		"confirmationNumber", reservation.ConfirmationNumber,
		"flights", len(reservation.Flights))
	return nil
}
