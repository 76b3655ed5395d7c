package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mpolivanov/fasting-tracker-bot/internal/bot"
	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/handlers"
	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/state"
	"github.com/mpolivanov/fasting-tracker-bot/internal/config"
	"github.com/mpolivanov/fasting-tracker-bot/internal/database"
	"github.com/mpolivanov/fasting-tracker-bot/internal/logger"
	"github.com/mpolivanov/fasting-tracker-bot/internal/repository"
	"github.com/mpolivanov/fasting-tracker-bot/internal/services"
	"github.com/mpolivanov/fasting-tracker-bot/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting Fasting Tracker Bot...")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Errorf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	eventRepo := repository.NewEventRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	userRepo := repository.NewUserRepository(db)
	clock := utils.SystemClock{}

	sessionService := services.NewSessionService(eventRepo, clock)
	deps := handlers.Dependencies{
		UserService: services.NewUserService(userRepo),
		FastingSvc:  services.NewFastingService(sessionService, eventRepo, goalRepo, clock),
		GoalSvc:     services.NewGoalService(goalRepo, clock),
		ExportSvc:   services.NewExportService(eventRepo, clock),
	}

	var stateManager state.StateManager
	if cfg.Redis.Host != "" {
		stateManager, err = state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Errorf("Failed to connect to redis: %v", err)
			os.Exit(1)
		}
		logger.Info("Using redis conversational state")
	} else {
		stateManager = state.NewManager()
		logger.Info("Using in-memory conversational state")
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Errorf("Failed to create bot: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && err != context.Canceled {
		logger.Errorf("Bot stopped with error: %v", err)
		os.Exit(1)
	}
}
