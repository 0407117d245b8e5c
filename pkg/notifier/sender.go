package notifier

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/reply-reminder/pkg/logger"
	"github.com/smith3v/reply-reminder/pkg/ui"
)

var ErrNoChat = errors.New("telegram chat id is not configured")

// TelegramSender delivers alerts to a single Telegram chat.
type TelegramSender struct {
	bot    *bot.Bot
	chatID int64
}

func NewTelegramSender(b *bot.Bot, chatID int64) *TelegramSender {
	return &TelegramSender{bot: b, chatID: chatID}
}

func (s *TelegramSender) Send(ctx context.Context, n Notification) error {
	if s.chatID == 0 {
		return ErrNoChat
	}
	params := &bot.SendMessageParams{
		ChatID:              s.chatID,
		Text:                n.Title + "\n\n" + n.Text,
		DisableNotification: n.Silent,
	}
	if n.QuickActions && n.MessageID != 0 {
		row, err := ui.ReminderButtons(n.MessageID, "")
		if err != nil {
			return err
		}
		params.ReplyMarkup = &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{row}}
	}
	_, err := s.bot.SendMessage(ctx, params)
	return err
}

// LogSender writes alerts to the application log. It is used when no
// Telegram bot is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, n Notification) error {
	logger.Info("reminder",
		"message_id", n.MessageID,
		"title", n.Title,
		"text", n.Text,
		"silent", n.Silent)
	return nil
}
