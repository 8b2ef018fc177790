package entity

import "time"

// Check-in task statuses
const (
	TaskStatusScheduled = "scheduled"
	TaskStatusCancelled = "cancelled"
)

// CheckinTask records a deferred check-in job handed to the check-in
// worker service, keyed by the worker's task ID.
type CheckinTask struct {
	ID                 uint
	TaskID             string
	FlightID           string
	ConfirmationNumber string
	DepartureTime      time.Time
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}
