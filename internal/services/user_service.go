package services

import (
	"context"

	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
)

// UserService resolves telegram identities to internal users. The core
// always works with the internal user ID; telegram is just the
// authentication transport.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new user service
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// RegisterUser returns the user for a telegram account, creating it on
// first contact.
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error) {
	return s.users.GetOrCreate(ctx, telegramID, username, firstName, lastName)
}

// GetUserByTelegramID returns an already-registered user.
func (s *UserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}
