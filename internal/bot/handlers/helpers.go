package handlers

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mpolivanov/fasting-tracker-bot/internal/apperrors"
)

func sendText(api *tgbotapi.BotAPI, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := api.Send(msg)
	return err
}

// replyError translates core errors into user-facing messages. Precondition
// violations get actionable texts; everything else gets a generic apology
// and is left to the update loop to log.
func replyError(api *tgbotapi.BotAPI, chatID int64, err error) error {
	var text string
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrExistingSession):
		text = "You already have an active fast. End it before starting a new one."
	case errors.Is(err, apperrors.ErrNoActiveSession):
		text = "You have no active fast right now."
	case errors.Is(err, apperrors.ErrInvalidTimestamp):
		text = "The end time can't be earlier than the fast's start time."
	case errors.Is(err, apperrors.ErrNotFound):
		text = "I couldn't find that record."
	case errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeValidation:
		text = appErr.Message
	default:
		text = "Something went wrong. Please try again."
	}

	if sendErr := sendText(api, chatID, text); sendErr != nil {
		return sendErr
	}
	return err
}
