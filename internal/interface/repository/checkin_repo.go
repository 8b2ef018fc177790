package repository

import (
	"context"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCheckinRepository implements the CheckinRepository interface
type GormCheckinRepository struct {
	db *gorm.DB
}

// NewGormCheckinRepository creates a new GORM check-in repository
func NewGormCheckinRepository(db *gorm.DB) repository.CheckinRepository {
	return &GormCheckinRepository{
		db: db,
	}
}

// Checkins GORM model for database mapping
type Checkins struct {
	ID               string     `gorm:"primaryKey"`
	FlightID         string     `gorm:"column:flight_id;index"`
	Status           string     `gorm:"column:status"`
	BoardingPosition string     `gorm:"column:boarding_position"`
	ScheduledFor     time.Time  `gorm:"column:scheduled_for"`
	CompletedAt      *time.Time `gorm:"column:completed_at"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName overrides the default table name
func (Checkins) TableName() string {
	return "checkins"
}

// Create inserts a new check-in outcome
func (r *GormCheckinRepository) Create(ctx context.Context, checkin *entity.Checkin) error {
	if checkin.ID == "" {
		checkin.ID = uuid.NewString()
	}

	model := Checkins{
		ID:               checkin.ID,
		FlightID:         checkin.FlightID,
		Status:           checkin.Status,
		BoardingPosition: checkin.BoardingPosition,
		ScheduledFor:     checkin.ScheduledFor,
		CompletedAt:      checkin.CompletedAt,
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	checkin.CreatedAt = model.CreatedAt
	checkin.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByFlight returns the check-in outcomes for a flight
func (r *GormCheckinRepository) FindByFlight(ctx context.Context, flightID string) ([]*entity.Checkin, error) {
	var models []Checkins
	result := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Order("created_at").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	checkins := make([]*entity.Checkin, 0, len(models))
	for i := range models {
		m := &models[i]
		checkins = append(checkins, &entity.Checkin{
			ID:               m.ID,
			FlightID:         m.FlightID,
			Status:           m.Status,
			BoardingPosition: m.BoardingPosition,
			ScheduledFor:     m.ScheduledFor,
			CompletedAt:      m.CompletedAt,
			CreatedAt:        m.CreatedAt,
			UpdatedAt:        m.UpdatedAt,
		})
	}
	return checkins, nil
}

// CountsByReservation returns the total and completed check-in counts
// across all flights of a reservation
func (r *GormCheckinRepository) CountsByReservation(ctx context.Context, reservationID string) (int64, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Checkins{}).
		Joins("join flights on flights.id = checkins.flight_id").
		Where("flights.reservation_id = ?", reservationID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var completed int64
	if err := base.Session(&gorm.Session{}).Where("checkins.status = ?", entity.CheckinStatusCompleted).Count(&completed).Error; err != nil {
		return 0, 0, err
	}

	return total, completed, nil
}
