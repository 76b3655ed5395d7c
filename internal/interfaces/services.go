package interfaces

import (
	"context"
	"time"

	"github.com/mpolivanov/fasting-tracker-bot/internal/analytics"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
	"github.com/mpolivanov/fasting-tracker-bot/internal/services"
)

// UserServiceInterface resolves telegram identities to users
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error)
}

// FastingServiceInterface is the session + analytics facade the bot talks to
type FastingServiceInterface interface {
	Start(ctx context.Context, userID uint, startTime time.Time, goalID *uint) (uint, error)
	Stop(ctx context.Context, userID uint, stopTime time.Time) (uint, error)
	Status(ctx context.Context, userID uint) (*analytics.Status, error)
	History(ctx context.Context, userID uint) ([]domain.FastingEvent, error)
	AverageDuration(ctx context.Context, userID uint) (*int64, error)
	TotalDuration(ctx context.Context, userID uint) (int64, error)
	Streak(ctx context.Context, userID uint) (int, error)
	Checkpoints(ctx context.Context, userID uint) ([]int, error)
	WeeklySummary(ctx context.Context, userID uint, start, end time.Time) (int64, error)
	LinkGoal(ctx context.Context, userID, goalID uint) error
	UnlinkGoal(ctx context.Context, userID uint) error
}

// GoalServiceInterface manages fasting goals
type GoalServiceInterface interface {
	CreateGoal(ctx context.Context, userID uint, req services.GoalRequest) (*domain.FastingGoal, error)
	ListGoals(ctx context.Context, userID uint) ([]domain.FastingGoal, error)
}

// ExportServiceInterface renders fasting history for download
type ExportServiceInterface interface {
	ExportCSV(ctx context.Context, userID uint) ([]byte, error)
	ExportJSON(ctx context.Context, userID uint) ([]byte, error)
}
