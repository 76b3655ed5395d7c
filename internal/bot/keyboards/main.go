package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
	"github.com/mpolivanov/fasting-tracker-bot/internal/utils"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Start fast", "start_fast"),
			tgbotapi.NewInlineKeyboardButtonData("⏹ End fast", "stop_fast"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏱ Status", "status"),
			tgbotapi.NewInlineKeyboardButtonData("📜 History", "history"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Analytics", "analytics"),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Goals", "goals"),
		),
	)
}

// AnalyticsMenu creates the analytics menu keyboard
func AnalyticsMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Average", "average_duration"),
			tgbotapi.NewInlineKeyboardButtonData("⏳ Total", "total_duration"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔥 Streak", "streak"),
			tgbotapi.NewInlineKeyboardButtonData("🏅 Checkpoints", "checkpoints"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗓 Weekly summary", "weekly_summary"),
			tgbotapi.NewInlineKeyboardButtonData("📤 Export CSV", "export_csv"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// GoalsMenu creates the goals menu keyboard
func GoalsMenu(hasGoals bool) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add goal", "add_goal"),
			tgbotapi.NewInlineKeyboardButtonData("📋 View goals", "view_goals"),
		),
	)

	if hasGoals {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔗 Link to current fast", "link_goal"),
				tgbotapi.NewInlineKeyboardButtonData("✂️ Unlink", "unlink_goal"),
			),
		)
	}

	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)

	return keyboard
}

// GoalPicker lists the user's goals as buttons for linking
func GoalPicker(goals []domain.FastingGoal) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, goal := range goals {
		label := fmt.Sprintf("%dh until %s", goal.GoalDuration, utils.FormatTimestamp(goal.Deadline))
		data := fmt.Sprintf("link_goal_%d", goal.ID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Back", "goals"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
