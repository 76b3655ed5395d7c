package repository

import (
	"context"
	"errors"

	"github.com/mpolivanov/fasting-tracker-bot/internal/apperrors"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
	"gorm.io/gorm"
)

// GoalRepository handles fasting goal persistence
type GoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *domain.FastingGoal) error {
	if err := r.db.WithContext(ctx).Create(goal).Error; err != nil {
		return apperrors.NewRepositoryError(err)
	}
	return nil
}

func (r *GoalRepository) FindByID(ctx context.Context, id uint) (*domain.FastingGoal, error) {
	var goal domain.FastingGoal
	err := r.db.WithContext(ctx).First(&goal, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError().WithContext("goal_id", id)
	}
	if err != nil {
		return nil, apperrors.NewRepositoryError(err)
	}
	return &goal, nil
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID uint) ([]domain.FastingGoal, error) {
	var goals []domain.FastingGoal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.NewRepositoryError(err)
	}
	return goals, nil
}
