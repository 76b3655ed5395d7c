package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mpolivanov/fasting-tracker-bot/internal/apperrors"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
)

var validate = validator.New()

// GoalRequest is the typed input for goal creation. The conversational
// prompting lives in the bot layer; only validated values reach the service.
type GoalRequest struct {
	DurationHours int       `validate:"required,gte=1,lte=168"`
	Deadline      time.Time `validate:"required"`
}

// GoalService manages fasting goals
type GoalService struct {
	goals domain.GoalRepository
	clock domain.Clock
}

// NewGoalService creates a new goal service
func NewGoalService(goals domain.GoalRepository, clock domain.Clock) *GoalService {
	return &GoalService{goals: goals, clock: clock}
}

// CreateGoal validates and stores a new fasting goal for the user.
func (s *GoalService) CreateGoal(ctx context.Context, userID uint, req GoalRequest) (*domain.FastingGoal, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, apperrors.NewValidationError("goal duration must be between 1 and 168 hours")
	}
	if !req.Deadline.After(s.clock.Now()) {
		return nil, apperrors.NewValidationError("goal deadline must be in the future")
	}

	goal := &domain.FastingGoal{
		UserID:       userID,
		GoalDuration: req.DurationHours,
		Deadline:     req.Deadline,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// ListGoals returns the user's goals, most recent first.
func (s *GoalService) ListGoals(ctx context.Context, userID uint) ([]domain.FastingGoal, error) {
	return s.goals.ListByUser(ctx, userID)
}

// GetGoal returns one of the user's goals by ID.
func (s *GoalService) GetGoal(ctx context.Context, userID, goalID uint) (*domain.FastingGoal, error) {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, apperrors.NewNotFoundError().WithContext("goal_id", goalID)
	}
	return goal, nil
}
