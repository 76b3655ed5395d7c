package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/keyboards"
	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/menus"
	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/state"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
	"github.com/mpolivanov/fasting-tracker-bot/internal/logger"
	"github.com/mpolivanov/fasting-tracker-bot/internal/utils"
)

// historyLimit caps how many events the history view renders.
const historyLimit = 10

// CallbackHandler handles inline keyboard button presses
type CallbackHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *domain.User) error {
	chatID := query.Message.Chat.ID
	logger.Infof("Handling callback %s from user %d", query.Data, user.ID)

	if goalID, ok := strings.CutPrefix(query.Data, "link_goal_"); ok {
		return h.handleLinkGoalChoice(ctx, chatID, user, goalID)
	}

	switch query.Data {
	case "start_fast":
		return h.handleStartFast(ctx, chatID, user)
	case "stop_fast":
		return h.handleStopFast(ctx, chatID, user)
	case "status":
		return h.handleStatus(ctx, chatID, user)
	case "history":
		return h.handleHistory(ctx, chatID, user)
	case "analytics":
		return menus.SendAnalyticsMenu(h.api, chatID)
	case "average_duration":
		return h.handleAverageDuration(ctx, chatID, user)
	case "total_duration":
		return h.handleTotalDuration(ctx, chatID, user)
	case "streak":
		return h.handleStreak(ctx, chatID, user)
	case "checkpoints":
		return h.handleCheckpoints(ctx, chatID, user)
	case "weekly_summary":
		return h.handleWeeklySummary(ctx, chatID, user)
	case "export_csv":
		return h.handleExport(ctx, chatID, user)
	case "goals":
		return h.sendGoalsMenu(ctx, chatID, user)
	case "add_goal":
		return h.handleAddGoal(chatID, user)
	case "view_goals":
		return h.handleViewGoals(ctx, chatID, user)
	case "link_goal":
		return h.handleLinkGoalPicker(ctx, chatID, user)
	case "unlink_goal":
		return h.handleUnlinkGoal(ctx, chatID, user)
	case "main_menu":
		h.stateManager.SetUserState(user.TelegramID, state.None)
		h.stateManager.ClearTempData(user.TelegramID)
		return menus.SendMainMenu(h.api, chatID)
	}

	return nil
}

func (h *CallbackHandler) handleStartFast(ctx context.Context, chatID int64, user *domain.User) error {
	if _, err := h.deps.FastingSvc.Start(ctx, user.ID, time.Now(), nil); err != nil {
		return replyError(h.api, chatID, err)
	}
	return sendText(h.api, chatID, "✅ Fast started. Hold strong!")
}

func (h *CallbackHandler) handleStopFast(ctx context.Context, chatID int64, user *domain.User) error {
	if _, err := h.deps.FastingSvc.Stop(ctx, user.ID, time.Now()); err != nil {
		return replyError(h.api, chatID, err)
	}
	return sendText(h.api, chatID, "✅ Fast ended. Well done!")
}

func (h *CallbackHandler) handleStatus(ctx context.Context, chatID int64, user *domain.User) error {
	status, err := h.deps.FastingSvc.Status(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	if status == nil {
		return sendText(h.api, chatID, "You have no active fast.")
	}
	return sendText(h.api, chatID, fmt.Sprintf("⏱ Fasting since %s, %s so far.",
		utils.FormatTimestamp(status.StartTime),
		utils.FormatMinutes(status.ElapsedMinutes)))
}

func (h *CallbackHandler) handleHistory(ctx context.Context, chatID int64, user *domain.User) error {
	events, err := h.deps.FastingSvc.History(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	if len(events) == 0 {
		return sendText(h.api, chatID, "No fasts recorded yet.")
	}

	var b strings.Builder
	b.WriteString("Your most recent fasts:\n\n")
	for i, ev := range events {
		if i == historyLimit {
			b.WriteString(fmt.Sprintf("… and %d more\n", len(events)-historyLimit))
			break
		}
		if ev.StopTime == nil {
			b.WriteString(fmt.Sprintf("▶️ %s (ongoing)\n", utils.FormatTimestamp(ev.StartTime)))
			continue
		}
		b.WriteString(fmt.Sprintf("✔️ %s to %s (%s)\n",
			utils.FormatTimestamp(ev.StartTime),
			utils.FormatTimestamp(*ev.StopTime),
			utils.FormatMinutes(ev.DurationMinutes())))
	}
	return sendText(h.api, chatID, b.String())
}

func (h *CallbackHandler) handleAverageDuration(ctx context.Context, chatID int64, user *domain.User) error {
	avg, err := h.deps.FastingSvc.AverageDuration(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	if avg == nil {
		// no data is not the same as a zero-minute average
		return sendText(h.api, chatID, "No completed fasts yet, so there is no average to show.")
	}
	return sendText(h.api, chatID, fmt.Sprintf("📈 Average fast: %s", utils.FormatMinutes(*avg)))
}

func (h *CallbackHandler) handleTotalDuration(ctx context.Context, chatID int64, user *domain.User) error {
	total, err := h.deps.FastingSvc.TotalDuration(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return sendText(h.api, chatID, fmt.Sprintf("⏳ Total time fasted: %s", utils.FormatMinutes(total)))
}

func (h *CallbackHandler) handleStreak(ctx context.Context, chatID int64, user *domain.User) error {
	streak, err := h.deps.FastingSvc.Streak(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	switch streak {
	case 0:
		return sendText(h.api, chatID, "No streak yet. Start a fast today to begin one!")
	case 1:
		return sendText(h.api, chatID, "🔥 Streak: 1 day. Keep it going tomorrow!")
	default:
		return sendText(h.api, chatID, fmt.Sprintf("🔥 Streak: %d days in a row!", streak))
	}
}

func (h *CallbackHandler) handleCheckpoints(ctx context.Context, chatID int64, user *domain.User) error {
	achieved, err := h.deps.FastingSvc.Checkpoints(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	if len(achieved) == 0 {
		return sendText(h.api, chatID, "No checkpoints reached yet. The first one is a 4h fast.")
	}

	var b strings.Builder
	b.WriteString("🏅 Checkpoints you have reached:\n")
	for _, hours := range achieved {
		b.WriteString(fmt.Sprintf("  • %dh\n", hours))
	}
	return sendText(h.api, chatID, b.String())
}

func (h *CallbackHandler) handleWeeklySummary(ctx context.Context, chatID int64, user *domain.User) error {
	end := time.Now()
	start := end.AddDate(0, 0, -7)
	total, err := h.deps.FastingSvc.WeeklySummary(ctx, user.ID, start, end)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return sendText(h.api, chatID, fmt.Sprintf("🗓 Fasted %s over the last 7 days.", utils.FormatMinutes(total)))
}

func (h *CallbackHandler) handleExport(ctx context.Context, chatID int64, user *domain.User) error {
	data, err := h.deps.ExportSvc.ExportCSV(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}

	file := tgbotapi.FileBytes{Name: "fasting_history.csv", Bytes: data}
	doc := tgbotapi.NewDocument(chatID, file)
	doc.Caption = "Your fasting history"
	_, err = h.api.Send(doc)
	return err
}

func (h *CallbackHandler) sendGoalsMenu(ctx context.Context, chatID int64, user *domain.User) error {
	goals, err := h.deps.GoalSvc.ListGoals(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return menus.SendGoalsMenu(h.api, chatID, len(goals) > 0)
}

func (h *CallbackHandler) handleAddGoal(chatID int64, user *domain.User) error {
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForGoalDuration)
	return sendText(h.api, chatID, "Enter the goal duration in hours (1-168):")
}

func (h *CallbackHandler) handleViewGoals(ctx context.Context, chatID int64, user *domain.User) error {
	goals, err := h.deps.GoalSvc.ListGoals(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	if len(goals) == 0 {
		return sendText(h.api, chatID, "You have no goals yet.")
	}

	var b strings.Builder
	b.WriteString("🎯 Your goals:\n\n")
	for _, goal := range goals {
		b.WriteString(fmt.Sprintf("  • %dh until %s\n", goal.GoalDuration, utils.FormatTimestamp(goal.Deadline)))
	}
	return sendText(h.api, chatID, b.String())
}

func (h *CallbackHandler) handleLinkGoalPicker(ctx context.Context, chatID int64, user *domain.User) error {
	goals, err := h.deps.GoalSvc.ListGoals(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	if len(goals) == 0 {
		return sendText(h.api, chatID, "You have no goals to link. Add one first.")
	}

	msg := tgbotapi.NewMessage(chatID, "Pick a goal for your current fast:")
	msg.ReplyMarkup = keyboards.GoalPicker(goals)
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleLinkGoalChoice(ctx context.Context, chatID int64, user *domain.User, rawGoalID string) error {
	goalID, err := strconv.ParseUint(rawGoalID, 10, 32)
	if err != nil {
		return sendText(h.api, chatID, "I couldn't read that goal. Try again from the Goals menu.")
	}

	if err := h.deps.FastingSvc.LinkGoal(ctx, user.ID, uint(goalID)); err != nil {
		return replyError(h.api, chatID, err)
	}
	return sendText(h.api, chatID, "🔗 Goal linked to your current fast.")
}

func (h *CallbackHandler) handleUnlinkGoal(ctx context.Context, chatID int64, user *domain.User) error {
	if err := h.deps.FastingSvc.UnlinkGoal(ctx, user.ID); err != nil {
		return replyError(h.api, chatID, err)
	}
	return sendText(h.api, chatID, "✂️ Goal unlinked from your current fast.")
}
