package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender delivers messages through the Telegram Bot API using
// HTML parse mode, matching the message formatting in this package.
type TelegramSender struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramSender authenticates the bot token against the Telegram API.
func NewTelegramSender(token string) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramSender{bot: bot}, nil
}

// SendMessage implements Sender. The underlying client has no context
// support; cancellation is handled by the dispatcher's one-attempt policy.
func (s *TelegramSender) SendMessage(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := s.bot.Send(msg)
	return err
}
