package handlers

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/menus"
	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/state"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
	"github.com/mpolivanov/fasting-tracker-bot/internal/logger"
	"github.com/mpolivanov/fasting-tracker-bot/internal/utils"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	logger.Infof("Handling command %s from user %d", message.Command(), user.ID)

	switch message.Command() {
	case "start":
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return menus.SendMainMenu(h.api, message.Chat.ID)
	case "fast":
		return h.handleFast(ctx, message.Chat.ID, user)
	case "endfast":
		return h.handleEndFast(ctx, message.Chat.ID, user)
	case "endfastat":
		return h.handleEndFastAt(message.Chat.ID, user)
	case "status":
		return h.handleStatus(ctx, message.Chat.ID, user)
	case "help":
		return h.handleHelp(message.Chat.ID)
	default:
		return sendText(h.api, message.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

// handleFast starts a fast at the current moment
func (h *CommandHandler) handleFast(ctx context.Context, chatID int64, user *domain.User) error {
	if _, err := h.deps.FastingSvc.Start(ctx, user.ID, time.Now(), nil); err != nil {
		return replyError(h.api, chatID, err)
	}
	return sendText(h.api, chatID, "✅ Fast started. Hold strong!")
}

// handleEndFast stops the active fast at the current moment
func (h *CommandHandler) handleEndFast(ctx context.Context, chatID int64, user *domain.User) error {
	if _, err := h.deps.FastingSvc.Stop(ctx, user.ID, time.Now()); err != nil {
		return replyError(h.api, chatID, err)
	}

	status := "✅ Fast ended. Well done!"
	if avg, err := h.deps.FastingSvc.AverageDuration(ctx, user.ID); err == nil && avg != nil {
		status += fmt.Sprintf("\nYour average fast is now %s.", utils.FormatMinutes(*avg))
	}
	return sendText(h.api, chatID, status)
}

// handleEndFastAt asks for an explicit end time, for fasts that actually
// ended while the user was away from the phone
func (h *CommandHandler) handleEndFastAt(chatID int64, user *domain.User) error {
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForStopTime)
	return sendText(h.api, chatID, "Enter the end time as YYYY-MM-DD HH:MM, for example 2025-01-15 20:00.")
}

// handleStatus reports the active fast, if any
func (h *CommandHandler) handleStatus(ctx context.Context, chatID int64, user *domain.User) error {
	status, err := h.deps.FastingSvc.Status(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	if status == nil {
		return sendText(h.api, chatID, "You have no active fast. Start one with /fast.")
	}
	text := fmt.Sprintf("⏱ Fasting since %s, %s so far.",
		utils.FormatTimestamp(status.StartTime),
		utils.FormatMinutes(status.ElapsedMinutes))
	return sendText(h.api, chatID, text)
}

// handleHelp handles the /help command
func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Available commands:
/start - Show the main menu
/fast - Start a fast right now
/endfast - End the active fast
/endfastat - End the active fast at a specific time
/status - Show the active fast
/help - Show this message

Everything else (history, analytics, goals, export) lives in the menu under /start.`

	return sendText(h.api, chatID, text)
}
