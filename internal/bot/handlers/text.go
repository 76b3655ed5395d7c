package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/menus"
	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/state"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
	"github.com/mpolivanov/fasting-tracker-bot/internal/services"
)

const deadlineLayout = "2006-01-02 15:04"

// TextHandler handles free-form text messages driven by conversation state
type TextHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message according to the user's conversation state
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingForGoalDuration:
		return h.handleGoalDuration(chatID, user, text)
	case state.WaitingForGoalDeadline:
		return h.handleGoalDeadline(ctx, chatID, user, text)
	case state.WaitingForStopTime:
		return h.handleStopTime(ctx, chatID, user, text)
	default:
		return sendText(h.api, chatID, "Use the menu buttons or /help to see what I can do.")
	}
}

func (h *TextHandler) handleGoalDuration(chatID int64, user *domain.User, text string) error {
	hours, err := strconv.Atoi(text)
	if err != nil || hours < 1 || hours > 168 {
		return sendText(h.api, chatID, "Please enter a whole number of hours between 1 and 168.")
	}

	h.stateManager.SetTempData(user.TelegramID, "goal_duration", strconv.Itoa(hours))
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForGoalDeadline)
	return sendText(h.api, chatID, "Now enter the deadline as YYYY-MM-DD HH:MM, for example 2025-01-15 20:00.")
}

func (h *TextHandler) handleStopTime(ctx context.Context, chatID int64, user *domain.User, text string) error {
	stopTime, err := time.ParseInLocation(deadlineLayout, text, time.Local)
	if err != nil {
		return sendText(h.api, chatID, "I couldn't read that time. Use YYYY-MM-DD HH:MM, for example 2025-01-15 20:00.")
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	if _, err := h.deps.FastingSvc.Stop(ctx, user.ID, stopTime); err != nil {
		return replyError(h.api, chatID, err)
	}
	return sendText(h.api, chatID, "✅ Fast ended at "+stopTime.Format(deadlineLayout)+". Well done!")
}

func (h *TextHandler) handleGoalDeadline(ctx context.Context, chatID int64, user *domain.User, text string) error {
	deadline, err := time.ParseInLocation(deadlineLayout, text, time.Local)
	if err != nil {
		return sendText(h.api, chatID, "I couldn't read that date. Use YYYY-MM-DD HH:MM, for example 2025-01-15 20:00.")
	}

	rawHours, ok := h.stateManager.GetTempData(user.TelegramID, "goal_duration")
	if !ok {
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return sendText(h.api, chatID, "Something went wrong, let's start over. Open the Goals menu and pick Add goal.")
	}
	hours, err := strconv.Atoi(rawHours)
	if err != nil {
		h.stateManager.SetUserState(user.TelegramID, state.None)
		h.stateManager.ClearTempData(user.TelegramID)
		return sendText(h.api, chatID, "Something went wrong, let's start over. Open the Goals menu and pick Add goal.")
	}

	goal, err := h.deps.GoalSvc.CreateGoal(ctx, user.ID, services.GoalRequest{
		DurationHours: hours,
		Deadline:      deadline,
	})

	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)

	if err != nil {
		return replyError(h.api, chatID, err)
	}

	if err := sendText(h.api, chatID, "🎯 Goal saved: "+strconv.Itoa(goal.GoalDuration)+"h until "+deadline.Format(deadlineLayout)); err != nil {
		return err
	}
	return menus.SendMainMenu(h.api, chatID)
}
