package services

import (
	"context"
	"time"

	"github.com/mpolivanov/fasting-tracker-bot/internal/analytics"
	"github.com/mpolivanov/fasting-tracker-bot/internal/apperrors"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
)

// FastingService is the typed API over the session state machine and the
// analytics engine. It fetches events, delegates, and persists; it adds no
// session or analytics logic of its own.
type FastingService struct {
	sessions *SessionService
	events   domain.EventRepository
	goals    domain.GoalRepository
	clock    domain.Clock
}

// NewFastingService creates a new fasting service
func NewFastingService(sessions *SessionService, events domain.EventRepository, goals domain.GoalRepository, clock domain.Clock) *FastingService {
	return &FastingService{
		sessions: sessions,
		events:   events,
		goals:    goals,
		clock:    clock,
	}
}

// Start opens a session beginning at startTime, optionally linked to a goal.
func (s *FastingService) Start(ctx context.Context, userID uint, startTime time.Time, goalID *uint) (uint, error) {
	if goalID != nil {
		if err := s.checkGoal(ctx, userID, *goalID); err != nil {
			return 0, err
		}
	}
	return s.sessions.StartFasting(ctx, userID, startTime, goalID)
}

// Stop closes the user's open session at stopTime.
func (s *FastingService) Stop(ctx context.Context, userID uint, stopTime time.Time) (uint, error) {
	return s.sessions.StopFasting(ctx, userID, stopTime)
}

// Status returns the user's open session, or nil when none exists.
func (s *FastingService) Status(ctx context.Context, userID uint) (*analytics.Status, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.CurrentStatus(events, s.clock.Now()), nil
}

// History returns all of the user's events, most recent first.
func (s *FastingService) History(ctx context.Context, userID uint) ([]domain.FastingEvent, error) {
	return s.events.ListByUser(ctx, userID)
}

// AverageDuration returns the user's mean completed-fast duration in
// minutes, or nil when there is no completed fast yet.
func (s *FastingService) AverageDuration(ctx context.Context, userID uint) (*int64, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.AverageDuration(events), nil
}

// TotalDuration returns the user's total completed-fast minutes.
func (s *FastingService) TotalDuration(ctx context.Context, userID uint) (int64, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return analytics.TotalDuration(events), nil
}

// Streak returns the user's current streak in days.
func (s *FastingService) Streak(ctx context.Context, userID uint) (int, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return analytics.CurrentStreak(events, s.clock.Now()), nil
}

// Checkpoints returns the hour thresholds the user's history has reached.
func (s *FastingService) Checkpoints(ctx context.Context, userID uint) ([]int, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.CheckpointsAchieved(events), nil
}

// WeeklySummary returns total completed-fast minutes within [start, end].
func (s *FastingService) WeeklySummary(ctx context.Context, userID uint, start, end time.Time) (int64, error) {
	events, err := s.events.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return 0, err
	}
	return analytics.RangeSummary(events, start, end), nil
}

// LinkGoal attaches an existing goal of the user to the active session.
func (s *FastingService) LinkGoal(ctx context.Context, userID, goalID uint) error {
	if err := s.checkGoal(ctx, userID, goalID); err != nil {
		return err
	}
	return s.sessions.UpdateGoal(ctx, userID, &goalID)
}

// UnlinkGoal clears the goal reference on the active session.
func (s *FastingService) UnlinkGoal(ctx context.Context, userID uint) error {
	return s.sessions.RemoveGoal(ctx, userID)
}

// checkGoal verifies the goal exists and belongs to the user.
func (s *FastingService) checkGoal(ctx context.Context, userID, goalID uint) error {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		return err
	}
	if goal.UserID != userID {
		return apperrors.NewNotFoundError().
			WithContext("goal_id", goalID).
			WithContext("user_id", userID)
	}
	return nil
}
