package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mpolivanov/fasting-tracker-bot/internal/apperrors"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
	"gorm.io/gorm"
)

// EventRepository handles fasting event persistence
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// FindActive returns the user's event with a null stop time, or (nil, nil)
// when the user has no open session.
func (r *EventRepository) FindActive(ctx context.Context, userID uint) (*domain.FastingEvent, error) {
	var event domain.FastingEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND stop_time IS NULL", userID).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewRepositoryError(err)
	}
	return &event, nil
}

// Insert persists a new event and fills in its assigned ID.
func (r *EventRepository) Insert(ctx context.Context, event *domain.FastingEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return apperrors.NewRepositoryError(err)
	}
	return nil
}

// StopEvent sets the stop time on the event only if it is still open. The
// condition re-verifies the active state at the storage layer, so a
// concurrent stop that got there first makes this one report false instead
// of overwriting the recorded stop time.
func (r *EventRepository) StopEvent(ctx context.Context, eventID uint, stopTime time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.FastingEvent{}).
		Where("id = ? AND stop_time IS NULL", eventID).
		Update("stop_time", stopTime)
	if result.Error != nil {
		return false, apperrors.NewRepositoryError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetGoal overwrites the goal reference on an event; nil clears it.
func (r *EventRepository) SetGoal(ctx context.Context, eventID uint, goalID *uint) error {
	result := r.db.WithContext(ctx).
		Model(&domain.FastingEvent{}).
		Where("id = ?", eventID).
		Update("goal_id", goalID)
	if result.Error != nil {
		return apperrors.NewRepositoryError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError().WithContext("event_id", eventID)
	}
	return nil
}

// ListByUser returns all of the user's events, most recent first.
func (r *EventRepository) ListByUser(ctx context.Context, userID uint) ([]domain.FastingEvent, error) {
	var events []domain.FastingEvent
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&events).Error; err != nil {
		return nil, apperrors.NewRepositoryError(err)
	}
	return events, nil
}

// ListByUserAndRange returns the user's events starting within [start, end],
// most recent first.
func (r *EventRepository) ListByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]domain.FastingEvent, error) {
	var events []domain.FastingEvent
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time <= ?", userID, start, end).
		Order("start_time DESC").
		Find(&events).Error; err != nil {
		return nil, apperrors.NewRepositoryError(err)
	}
	return events, nil
}
