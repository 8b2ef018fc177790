package entity

import "time"

// Checkin statuses
const (
	CheckinStatusPending   = "pending"
	CheckinStatusCompleted = "completed"
	CheckinStatusFailed    = "failed"
)

// Checkin represents one attempt of the check-in execution job for a
// flight. The execution job itself runs out of process; this record only
// tracks its outcome.
type Checkin struct {
	ID               string
	FlightID         string
	Status           string
	BoardingPosition string
	ScheduledFor     time.Time
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Completed reports whether the check-in attempt finished successfully.
func (c *Checkin) Completed() bool {
	return c.Status == CheckinStatusCompleted
}
