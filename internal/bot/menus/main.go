package menus

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mpolivanov/fasting-tracker-bot/internal/bot/keyboards"
)

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64) error {
	text := `🕰 *Fasting Tracker*, your intermittent fasting companion

▶️ Start and stop fasts with one tap
📊 Track duration, streaks and checkpoints
🎯 Set goals and link them to your fasts

Choose an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendAnalyticsMenu sends the analytics menu to a chat
func SendAnalyticsMenu(api *tgbotapi.BotAPI, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Analytics:")
	msg.ReplyMarkup = keyboards.AnalyticsMenu()
	_, err := api.Send(msg)
	return err
}

// SendGoalsMenu sends the goals menu to a chat
func SendGoalsMenu(api *tgbotapi.BotAPI, chatID int64, hasGoals bool) error {
	text := "Goals:"
	if !hasGoals {
		text = "You have no goals yet. Add one to get started."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.GoalsMenu(hasGoals)
	_, err := api.Send(msg)
	return err
}
