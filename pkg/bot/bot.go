// Package bot wires the Telegram handlers onto a go-telegram bot.
package bot

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/reply-reminder/pkg/bot/handlers"
	"github.com/smith3v/reply-reminder/pkg/ui"
)

var Commands = []models.BotCommand{
	{Command: "pending", Description: "Messages waiting for your reply"},
	{Command: "settings", Description: "Reminder windows and notifications"},
	{Command: "start", Description: "Help and summary"},
}

// New creates a bot that only talks to the chat configured in h and has all
// reminder commands registered.
func New(token string, h *handlers.Handlers, extra ...tgbot.Option) (*tgbot.Bot, error) {
	opts := append([]tgbot.Option{
		tgbot.WithDefaultHandler(h.DefaultHandler),
		tgbot.WithMiddlewares(h.ChatFilter),
	}, extra...)

	b, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, err
	}
	Register(b, h)
	return b, nil
}

func Register(b *tgbot.Bot, h *handlers.Handlers) {
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, h.HandleStart)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/pending", tgbot.MatchTypeExact, h.HandlePending)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/settings", tgbot.MatchTypeExact, h.HandleSettings)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, ui.SettingsPrefix, tgbot.MatchTypePrefix, h.HandleSettingsCallback)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, ui.ReminderPrefix, tgbot.MatchTypePrefix, h.HandleReminderCallback)
}

// SetCommands publishes the command menu shown by Telegram clients.
func SetCommands(ctx context.Context, b *tgbot.Bot) error {
	_, err := b.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{Commands: Commands})
	return err
}
