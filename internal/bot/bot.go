package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mpolivanov/fasting-tracker-bot/internal/apperrors"
	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/handlers"
	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/state"
	"github.com/mpolivanov/fasting-tracker-bot/internal/logger"
)

// Bot wires the telegram API to the update handler
type Bot struct {
	api           *tgbotapi.BotAPI
	updateHandler *handlers.UpdateHandler
	errorHandler  *apperrors.Handler
}

// NewBot creates a bot authorized with the given token
func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Infof("Bot authorized on account %s", api.Self.UserName)
	return &Bot{
		api:           api,
		updateHandler: handlers.NewUpdateHandler(api, deps, stateManager),
		errorHandler:  apperrors.NewHandler(logger.GetLogger()),
	}, nil
}

// Start runs the update loop until the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates...")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down...")
			return ctx.Err()
		case update := <-updates:
			if err := b.updateHandler.Handle(ctx, update); err != nil {
				b.errorHandler.Handle(ctx, err)
			}
		}
	}
}
