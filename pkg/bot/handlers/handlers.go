// Package handlers implements the Telegram commands and callbacks.
package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/reply-reminder/pkg/agenda"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/logger"
	"github.com/smith3v/reply-reminder/pkg/reminder"
)

const DefaultSnooze = reminder.DefaultSnooze

type Store interface {
	agenda.Source
	GetMessage(ctx context.Context, id uint) (db.Message, error)
	UpdateMessage(ctx context.Context, id uint, update db.MessageUpdate) (db.Message, error)
	GetSettings(ctx context.Context) (db.Settings, error)
	ReplaceSettings(ctx context.Context, settings db.Settings) (db.Settings, error)
}

type Options struct {
	// ChatID restricts the bot to one chat. Zero accepts every chat.
	ChatID        int64
	DefaultSnooze time.Duration
	Now           func() time.Time
}

type Handlers struct {
	store         Store
	chatID        int64
	defaultSnooze time.Duration
	now           func() time.Time
}

func New(store Store, opts Options) *Handlers {
	if opts.DefaultSnooze <= 0 {
		opts.DefaultSnooze = DefaultSnooze
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handlers{
		store:         store,
		chatID:        opts.ChatID,
		defaultSnooze: opts.DefaultSnooze,
		now:           opts.Now,
	}
}

// ChatFilter drops updates that come from chats other than the configured one.
func (h *Handlers) ChatFilter(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if h.chatID != 0 {
			chatID := updateChatID(update)
			if chatID != h.chatID {
				logger.Warn("ignoring update from unexpected chat", "chat_id", chatID)
				return
			}
		}
		next(ctx, b, update)
	}
}

func updateChatID(update *models.Update) int64 {
	if update == nil {
		return 0
	}
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if cq := update.CallbackQuery; cq != nil {
		if cq.Message.Message != nil {
			return cq.Message.Message.Chat.ID
		}
		return cq.From.ID
	}
	return 0
}

func sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

// callbackAnswerer answers a callback query at most once.
func callbackAnswerer(ctx context.Context, b *bot.Bot, callbackID string) func(text string) {
	answered := false
	return func(text string) {
		if answered || callbackID == "" {
			return
		}
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callbackID,
			Text:            text,
		}); err != nil {
			logger.Error("failed to answer callback query", "error", err)
		}
		answered = true
	}
}
