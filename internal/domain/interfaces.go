package domain

import (
	"context"
	"time"
)

// EventRepository is the durable store of fasting events. Implementations
// must keep ListByUser ordered by start time, most recent first.
type EventRepository interface {
	// FindActive returns the user's open event, or (nil, nil) when none exists.
	FindActive(ctx context.Context, userID uint) (*FastingEvent, error)
	Insert(ctx context.Context, event *FastingEvent) error
	// StopEvent sets the stop time on the event if it is still open and
	// reports whether a row was actually updated.
	StopEvent(ctx context.Context, eventID uint, stopTime time.Time) (bool, error)
	SetGoal(ctx context.Context, eventID uint, goalID *uint) error
	ListByUser(ctx context.Context, userID uint) ([]FastingEvent, error)
	ListByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]FastingEvent, error)
}

// GoalRepository is the durable store of fasting goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *FastingGoal) error
	FindByID(ctx context.Context, id uint) (*FastingGoal, error)
	ListByUser(ctx context.Context, userID uint) ([]FastingGoal, error)
}

// UserRepository resolves telegram identities to internal users.
type UserRepository interface {
	GetOrCreate(ctx context.Context, telegramID int64, username, firstName, lastName string) (*User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
}

// Clock is an injectable source of "now" so tests can control time.
type Clock interface {
	Now() time.Time
}
