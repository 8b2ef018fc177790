package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReservationRepository implements the ReservationRepository interface
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GORM reservation repository
func NewGormReservationRepository(db *gorm.DB) repository.ReservationRepository {
	return &GormReservationRepository{
		db: db,
	}
}

// Reservations GORM model for database mapping
type Reservations struct {
	ID                 string `gorm:"primaryKey"`
	ConfirmationNumber string `gorm:"column:confirmation_number;uniqueIndex"`
	FirstName          string `gorm:"column:first_name"`
	LastName           string `gorm:"column:last_name"`
	Payload            string `gorm:"column:payload"`
	ArrivalCityName    string `gorm:"column:arrival_city_name"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Passengers         []Passengers `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
	Flights            []Flights    `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name
func (Reservations) TableName() string {
	return "reservations"
}

// Passengers GORM model for database mapping
type Passengers struct {
	ID            string `gorm:"primaryKey"`
	ReservationID string `gorm:"column:reservation_id;index"`
	FirstName     string `gorm:"column:first_name"`
	LastName      string `gorm:"column:last_name"`
	AccountNumber string `gorm:"column:account_number"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name
func (Passengers) TableName() string {
	return "passengers"
}

// Flights GORM model for database mapping
type Flights struct {
	ID                 string     `gorm:"primaryKey"`
	ReservationID      string     `gorm:"column:reservation_id;index;uniqueIndex:idx_flights_direction_position"`
	Direction          string     `gorm:"column:direction;uniqueIndex:idx_flights_direction_position"`
	Position           int        `gorm:"column:position;uniqueIndex:idx_flights_direction_position"`
	FlightNumber       string     `gorm:"column:flight_number"`
	OriginAirport      string     `gorm:"column:origin_airport"`
	DestinationAirport string     `gorm:"column:destination_airport"`
	ArrivalCityName    string     `gorm:"column:arrival_city_name"`
	DepartureTime      time.Time  `gorm:"column:departure_time;index"`
	LastTaskID         string     `gorm:"column:last_task_id"`
	LastScheduledAt    *time.Time `gorm:"column:last_scheduled_at"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Checkins           []Checkins `gorm:"foreignKey:FlightID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "flights"
}

// Create persists the reservation aggregate in a single transaction.
// Either the reservation, its passengers and its flights all commit, or
// none of them do.
func (r *GormReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	model, err := reservationToModel(reservation)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateReservation
		}
		return err
	}

	// Reflect generated IDs and timestamps back onto the aggregate.
	applyModel(reservation, model)
	return nil
}

// FindByConfirmationNumber loads the full aggregate for a confirmation
// number.
func (r *GormReservationRepository) FindByConfirmationNumber(ctx context.Context, confirmationNumber string) (*entity.Reservation, error) {
	var model Reservations
	result := r.db.WithContext(ctx).
		Preload("Passengers").
		Preload("Flights").
		Preload("Flights.Checkins").
		Where("confirmation_number = ?", confirmationNumber).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReservationNotFound
		}
		return nil, result.Error
	}

	return modelToReservation(&model)
}

// ListOrderedByDepartureTime returns all reservations ordered by the
// departure time of their earliest flight.
func (r *GormReservationRepository) ListOrderedByDepartureTime(ctx context.Context) ([]*entity.Reservation, error) {
	var models []Reservations
	result := r.db.WithContext(ctx).
		Preload("Passengers").
		Preload("Flights").
		Preload("Flights.Checkins").
		Order("(select min(departure_time) from flights where flights.reservation_id = reservations.id)").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	reservations := make([]*entity.Reservation, 0, len(models))
	for i := range models {
		reservation, err := modelToReservation(&models[i])
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

// Delete removes the reservation and, by cascade, its passengers, flights
// and check-ins.
func (r *GormReservationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Reservations{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrReservationNotFound
	}
	return nil
}

// UpdateFlightTaskInfo records the check-in task handed to the worker for
// a flight.
func (r *GormReservationRepository) UpdateFlightTaskInfo(ctx context.Context, flightID, taskID string, scheduledAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Flights{}).
		Where("id = ?", flightID).
		Updates(map[string]interface{}{
			"last_task_id":      taskID,
			"last_scheduled_at": scheduledAt,
		}).Error
}

// FindNeedingCheckinScheduling returns the reservations that still own a
// position-1 flight departing after now without a check-in task.
func (r *GormReservationRepository) FindNeedingCheckinScheduling(ctx context.Context, now time.Time, limit int) ([]*entity.Reservation, error) {
	var models []Reservations
	result := r.db.WithContext(ctx).
		Preload("Passengers").
		Preload("Flights").
		Preload("Flights.Checkins").
		Where("id in (?)", r.db.Model(&Flights{}).
			Select("reservation_id").
			Where("position = ?", 1).
			Where("departure_time > ?", now).
			Where("last_task_id = ''")).
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	reservations := make([]*entity.Reservation, 0, len(models))
	for i := range models {
		reservation, err := modelToReservation(&models[i])
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

func reservationToModel(reservation *entity.Reservation) (*Reservations, error) {
	payload, err := json.Marshal(reservation.Payload)
	if err != nil {
		return nil, err
	}

	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}

	model := &Reservations{
		ID:                 reservation.ID,
		ConfirmationNumber: reservation.ConfirmationNumber,
		FirstName:          reservation.FirstName,
		LastName:           reservation.LastName,
		Payload:            string(payload),
		ArrivalCityName:    reservation.ArrivalCityName,
	}

	for i := range reservation.Passengers {
		passenger := &reservation.Passengers[i]
		if passenger.ID == "" {
			passenger.ID = uuid.NewString()
		}
		model.Passengers = append(model.Passengers, Passengers{
			ID:            passenger.ID,
			ReservationID: reservation.ID,
			FirstName:     passenger.FirstName,
			LastName:      passenger.LastName,
			AccountNumber: passenger.AccountNumber,
		})
	}

	for i := range reservation.Flights {
		flight := &reservation.Flights[i]
		if flight.ID == "" {
			flight.ID = uuid.NewString()
		}
		model.Flights = append(model.Flights, Flights{
			ID:                 flight.ID,
			ReservationID:      reservation.ID,
			Direction:          string(flight.Direction),
			Position:           flight.Position,
			FlightNumber:       flight.FlightNumber,
			OriginAirport:      flight.OriginAirport,
			DestinationAirport: flight.DestinationAirport,
			ArrivalCityName:    flight.ArrivalCityName,
			DepartureTime:      flight.DepartureTime,
			LastTaskID:         flight.LastTaskID,
			LastScheduledAt:    flight.LastScheduledAt,
		})
	}

	return model, nil
}

func applyModel(reservation *entity.Reservation, model *Reservations) {
	reservation.CreatedAt = model.CreatedAt
	reservation.UpdatedAt = model.UpdatedAt
	for i := range reservation.Passengers {
		reservation.Passengers[i].ReservationID = reservation.ID
	}
	for i := range reservation.Flights {
		reservation.Flights[i].ReservationID = reservation.ID
	}
}

func modelToReservation(model *Reservations) (*entity.Reservation, error) {
	var payload map[string]interface{}
	if model.Payload != "" {
		if err := json.Unmarshal([]byte(model.Payload), &payload); err != nil {
			return nil, err
		}
	}

	reservation := &entity.Reservation{
		ID:                 model.ID,
		ConfirmationNumber: model.ConfirmationNumber,
		FirstName:          model.FirstName,
		LastName:           model.LastName,
		Payload:            payload,
		ArrivalCityName:    model.ArrivalCityName,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}

	for i := range model.Passengers {
		p := &model.Passengers[i]
		reservation.Passengers = append(reservation.Passengers, entity.Passenger{
			ID:            p.ID,
			ReservationID: p.ReservationID,
			FirstName:     p.FirstName,
			LastName:      p.LastName,
			AccountNumber: p.AccountNumber,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		})
	}

	for i := range model.Flights {
		reservation.Flights = append(reservation.Flights, modelToFlight(&model.Flights[i]))
	}

	return reservation, nil
}

func modelToFlight(model *Flights) entity.Flight {
	flight := entity.Flight{
		ID:                 model.ID,
		ReservationID:      model.ReservationID,
		Direction:          entity.FlightDirection(model.Direction),
		Position:           model.Position,
		FlightNumber:       model.FlightNumber,
		OriginAirport:      model.OriginAirport,
		DestinationAirport: model.DestinationAirport,
		ArrivalCityName:    model.ArrivalCityName,
		DepartureTime:      model.DepartureTime,
		LastTaskID:         model.LastTaskID,
		LastScheduledAt:    model.LastScheduledAt,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
	for i := range model.Checkins {
		c := &model.Checkins[i]
		flight.Checkins = append(flight.Checkins, entity.Checkin{
			ID:               c.ID,
			FlightID:         c.FlightID,
			Status:           c.Status,
			BoardingPosition: c.BoardingPosition,
			ScheduledFor:     c.ScheduledFor,
			CompletedAt:      c.CompletedAt,
			CreatedAt:        c.CreatedAt,
			UpdatedAt:        c.UpdatedAt,
		})
	}
	return flight
}
