package handlers

import (
	"github.com/mpolivanov/fasting-tracker-bot/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService interfaces.UserServiceInterface
	FastingSvc  interfaces.FastingServiceInterface
	GoalSvc     interfaces.GoalServiceInterface
	ExportSvc   interfaces.ExportServiceInterface
}
