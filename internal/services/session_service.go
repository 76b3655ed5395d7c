package services

import (
	"context"
	"sync"
	"time"

	"github.com/mpolivanov/fasting-tracker-bot/internal/apperrors"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
	"github.com/mpolivanov/fasting-tracker-bot/internal/logger"
)

// SessionService is the fasting session state machine. It owns the
// single-active-session invariant: for any user at most one event with a
// null stop time exists, which every mutating path here checks before
// writing. Check-then-write for one user is serialized through a per-user
// lock; the partial unique index in the database backs the same invariant
// at the storage layer.
type SessionService struct {
	events domain.EventRepository
	clock  domain.Clock

	mu        sync.Mutex
	userLocks map[uint]*sync.Mutex
}

// NewSessionService creates a new session state machine
func NewSessionService(events domain.EventRepository, clock domain.Clock) *SessionService {
	return &SessionService{
		events:    events,
		clock:     clock,
		userLocks: make(map[uint]*sync.Mutex),
	}
}

// userLock returns the mutex serializing state transitions for one user.
// Different users never contend.
func (s *SessionService) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// StartFasting opens a new fasting session. The start time may be backdated
// by the caller. Fails with ErrExistingSession when the user already has an
// open session; no write happens in that case.
func (s *SessionService) StartFasting(ctx context.Context, userID uint, startTime time.Time, goalID *uint) (uint, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	active, err := s.events.FindActive(ctx, userID)
	if err != nil {
		return 0, err
	}
	if active != nil {
		return 0, apperrors.NewExistingSessionError(userID)
	}

	event := &domain.FastingEvent{
		UserID:    userID,
		StartTime: startTime,
		GoalID:    goalID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.events.Insert(ctx, event); err != nil {
		return 0, err
	}

	logger.Info("Fasting session started", "user_id", userID, "event_id", event.ID)
	return event.ID, nil
}

// StopFasting closes the user's open session. Fails with ErrNoActiveSession
// when nothing is open and with ErrInvalidTimestamp when the stop time
// precedes the session's start time; the stop time is never clamped.
func (s *SessionService) StopFasting(ctx context.Context, userID uint, stopTime time.Time) (uint, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	active, err := s.events.FindActive(ctx, userID)
	if err != nil {
		return 0, err
	}
	if active == nil {
		return 0, apperrors.NewNoActiveSessionError(userID)
	}
	if stopTime.Before(active.StartTime) {
		return 0, apperrors.NewInvalidTimestampError(userID, active.StartTime, stopTime)
	}

	// The update is conditional on the event still being open, so a stop
	// that lost a race with a concurrent one fails instead of overwriting.
	updated, err := s.events.StopEvent(ctx, active.ID, stopTime)
	if err != nil {
		return 0, err
	}
	if !updated {
		return 0, apperrors.NewNoActiveSessionError(userID)
	}

	logger.Info("Fasting session stopped", "user_id", userID, "event_id", active.ID)
	return active.ID, nil
}

// UpdateGoal overwrites the goal reference on the user's active session;
// nil clears it. Goal mutation is restricted to the open session.
func (s *SessionService) UpdateGoal(ctx context.Context, userID uint, goalID *uint) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	active, err := s.events.FindActive(ctx, userID)
	if err != nil {
		return err
	}
	if active == nil {
		return apperrors.NewNoActiveSessionError(userID)
	}

	return s.events.SetGoal(ctx, active.ID, goalID)
}

// RemoveGoal clears the goal reference on the user's active session.
func (s *SessionService) RemoveGoal(ctx context.Context, userID uint) error {
	return s.UpdateGoal(ctx, userID, nil)
}
