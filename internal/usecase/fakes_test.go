package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
)

type fakeRetrievalClient struct {
	response *entity.RetrievedReservation
	err      error
	calls    int
	lastCode string
}

func (f *fakeRetrievalClient) Retrieve(ctx context.Context, lastName, firstName, confirmationNumber string) (*entity.RetrievedReservation, error) {
	f.calls++
	f.lastCode = confirmationNumber
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakeArchive struct {
	records []*entity.RetrievalRecord
	err     error
}

func (f *fakeArchive) Save(ctx context.Context, record *entity.RetrievalRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeArchive) FindByConfirmationNumber(ctx context.Context, confirmationNumber string, limit int) ([]*entity.RetrievalRecord, error) {
	return f.records, nil
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[string]*entity.Reservation
	createErr    error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[string]*entity.Reservation)}
}

func (f *fakeReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.reservations[reservation.ConfirmationNumber]; exists {
		return repository.ErrDuplicateReservation
	}
	if reservation.ID == "" {
		reservation.ID = fmt.Sprintf("res-%d", len(f.reservations)+1)
	}
	for i := range reservation.Flights {
		if reservation.Flights[i].ID == "" {
			reservation.Flights[i].ID = fmt.Sprintf("%s-flight-%d", reservation.ID, i+1)
		}
		reservation.Flights[i].ReservationID = reservation.ID
	}
	for i := range reservation.Passengers {
		reservation.Passengers[i].ReservationID = reservation.ID
	}
	f.reservations[reservation.ConfirmationNumber] = reservation
	return nil
}

func (f *fakeReservationRepo) FindByConfirmationNumber(ctx context.Context, confirmationNumber string) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[confirmationNumber]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return reservation, nil
}

func (f *fakeReservationRepo) ListOrderedByDepartureTime(ctx context.Context) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Reservation
	for _, reservation := range f.reservations {
		out = append(out, reservation)
	}
	return out, nil
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for code, reservation := range f.reservations {
		if reservation.ID == id {
			delete(f.reservations, code)
			return nil
		}
	}
	return repository.ErrReservationNotFound
}

func (f *fakeReservationRepo) UpdateFlightTaskInfo(ctx context.Context, flightID, taskID string, scheduledAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reservation := range f.reservations {
		for i := range reservation.Flights {
			if reservation.Flights[i].ID == flightID {
				reservation.Flights[i].LastTaskID = taskID
				reservation.Flights[i].LastScheduledAt = &scheduledAt
				return nil
			}
		}
	}
	return nil
}

func (f *fakeReservationRepo) FindNeedingCheckinScheduling(ctx context.Context, now time.Time, limit int) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Reservation
	for _, reservation := range f.reservations {
		for i := range reservation.Flights {
			flight := &reservation.Flights[i]
			if flight.Position == 1 && flight.DepartureTime.After(now) && !flight.Scheduled() {
				out = append(out, reservation)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reservations)
}

type scheduledJob struct {
	flightID           string
	direction          entity.FlightDirection
	position           int
	confirmationNumber string
	departureTime      time.Time
}

type fakeJobClient struct {
	jobs       []scheduledJob
	cancelled  []string
	err        error
	onSchedule func()
	nextTaskID int
}

func (f *fakeJobClient) ScheduleCheckin(ctx context.Context, flight *entity.Flight, confirmationNumber, firstName, lastName string) (string, error) {
	if f.onSchedule != nil {
		f.onSchedule()
	}
	if f.err != nil {
		return "", f.err
	}
	f.jobs = append(f.jobs, scheduledJob{
		flightID:           flight.ID,
		direction:          flight.Direction,
		position:           flight.Position,
		confirmationNumber: confirmationNumber,
		departureTime:      flight.DepartureTime,
	})
	f.nextTaskID++
	return fmt.Sprintf("task-%d", f.nextTaskID), nil
}

func (f *fakeJobClient) CancelByFlight(ctx context.Context, flightID string) error {
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, flightID)
	return nil
}

type fakeTaskRepo struct {
	tasks     []*entity.CheckinTask
	cancelled []string
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *entity.CheckinTask) error {
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeTaskRepo) FindByConfirmationNumber(ctx context.Context, confirmationNumber string) ([]*entity.CheckinTask, error) {
	return f.tasks, nil
}

func (f *fakeTaskRepo) MarkCancelledByFlight(ctx context.Context, flightID string) error {
	f.cancelled = append(f.cancelled, flightID)
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) ReservationCreated(ctx context.Context, reservation *entity.Reservation) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, reservation.ConfirmationNumber)
	return nil
}

type fakeCheckinRepo struct {
	checkins []*entity.Checkin
}

func (f *fakeCheckinRepo) Create(ctx context.Context, checkin *entity.Checkin) error {
	f.checkins = append(f.checkins, checkin)
	return nil
}

func (f *fakeCheckinRepo) FindByFlight(ctx context.Context, flightID string) ([]*entity.Checkin, error) {
	var out []*entity.Checkin
	for _, c := range f.checkins {
		if c.FlightID == flightID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCheckinRepo) CountsByReservation(ctx context.Context, reservationID string) (int64, int64, error) {
	var total, completed int64
	for _, c := range f.checkins {
		total++
		if c.Completed() {
			completed++
		}
	}
	return total, completed, nil
}
