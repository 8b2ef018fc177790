package repository

import (
	"context"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormCheckinTaskRepository implements the CheckinTaskRepository interface
type GormCheckinTaskRepository struct {
	db *gorm.DB
}

// NewGormCheckinTaskRepository creates a new GORM check-in task repository
func NewGormCheckinTaskRepository(db *gorm.DB) repository.CheckinTaskRepository {
	return &GormCheckinTaskRepository{
		db: db,
	}
}

// CheckinTasks GORM model for database mapping
type CheckinTasks struct {
	gorm.Model
	TaskID             string    `gorm:"column:task_id"`
	FlightID           string    `gorm:"column:flight_id;index"`
	ConfirmationNumber string    `gorm:"column:confirmation_number;index"`
	DepartureTime      time.Time `gorm:"column:departure_time"`
	Status             string    `gorm:"column:status"`
}

// TableName overrides the default table name
func (CheckinTasks) TableName() string {
	return "checkin_tasks"
}

// Create inserts a new check-in task record
func (r *GormCheckinTaskRepository) Create(ctx context.Context, task *entity.CheckinTask) error {
	model := CheckinTasks{
		TaskID:             task.TaskID,
		FlightID:           task.FlightID,
		ConfirmationNumber: task.ConfirmationNumber,
		DepartureTime:      task.DepartureTime,
		Status:             task.Status,
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	task.ID = model.ID
	task.CreatedAt = model.CreatedAt
	task.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByConfirmationNumber finds task records by confirmation number
func (r *GormCheckinTaskRepository) FindByConfirmationNumber(ctx context.Context, confirmationNumber string) ([]*entity.CheckinTask, error) {
	var models []CheckinTasks
	result := r.db.WithContext(ctx).Unscoped().
		Where("confirmation_number = ?", confirmationNumber).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	tasks := make([]*entity.CheckinTask, 0, len(models))
	for i := range models {
		m := &models[i]
		task := &entity.CheckinTask{
			ID:                 m.ID,
			TaskID:             m.TaskID,
			FlightID:           m.FlightID,
			ConfirmationNumber: m.ConfirmationNumber,
			DepartureTime:      m.DepartureTime,
			Status:             m.Status,
			CreatedAt:          m.CreatedAt,
			UpdatedAt:          m.UpdatedAt,
		}
		if m.DeletedAt.Valid {
			deletedAt := m.DeletedAt.Time
			task.DeletedAt = &deletedAt
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// MarkCancelledByFlight marks every task tied to a flight as cancelled
func (r *GormCheckinTaskRepository) MarkCancelledByFlight(ctx context.Context, flightID string) error {
	return r.db.WithContext(ctx).
		Model(&CheckinTasks{}).
		Where("flight_id = ?", flightID).
		Update("status", entity.TaskStatusCancelled).Error
}
