package domain

import (
	"time"
)

// User represents a telegram user in the system
type User struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
}

// FastingEvent is the record of one fasting attempt. StopTime is nil while
// the fast is ongoing and is set exactly once; at most one event per user
// may have a nil StopTime at any time.
type FastingEvent struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	StartTime time.Time
	StopTime  *time.Time
	GoalID    *uint
	CreatedAt time.Time
}

// FastingGoal is a duration target a user wants a fast to reach. The session
// core only references goals by ID; the fields are carried for display.
type FastingGoal struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index;not null"`
	GoalDuration int  // target duration in hours
	Deadline     time.Time
	CreatedAt    time.Time
}

// Completed reports whether the event has been stopped.
func (e *FastingEvent) Completed() bool {
	return e.StopTime != nil
}

// DurationMinutes returns the whole minutes between start and stop,
// truncated toward zero. Zero-duration fasts are valid.
func (e *FastingEvent) DurationMinutes() int64 {
	if e.StopTime == nil {
		return 0
	}
	return int64(e.StopTime.Sub(e.StartTime) / time.Minute)
}
