package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/reply-reminder/pkg/agenda"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/logger"
	"github.com/smith3v/reply-reminder/pkg/reminder"
	"github.com/smith3v/reply-reminder/pkg/ui"
)

func (h *Handlers) renderPending(ctx context.Context) (string, *models.InlineKeyboardMarkup, error) {
	items, err := agenda.Pending(ctx, h.store, h.now())
	if err != nil {
		return "", nil, err
	}
	settings, err := h.store.GetSettings(ctx)
	if err != nil {
		return "", nil, err
	}
	return ui.RenderPending(items, settings.QuickResponses)
}

func (h *Handlers) HandlePending(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandlePending")
		return
	}
	chatID := update.Message.Chat.ID

	text, keyboard, err := h.renderPending(ctx)
	if err != nil {
		logger.Error("failed to render pending reminders", "chat_id", chatID, "error", err)
		sendText(ctx, b, chatID, "Failed to load your reminders. Please try again later.")
		return
	}

	params := &bot.SendMessageParams{ChatID: chatID, Text: text}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		logger.Error("failed to send pending reminders", "chat_id", chatID, "error", err)
	}
}

// HandleReminderCallback applies the Responded and Later buttons. Buttons on
// older alerts stay clickable, so a message that was already responded to, or
// a Later on a message that is still snoozed, is left untouched.
func (h *Handlers) HandleReminderCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleReminderCallback")
		return
	}
	answerCallback := callbackAnswerer(ctx, b, update.CallbackQuery.ID)

	action, err := ui.ParseCallbackData(update.CallbackQuery.Data)
	if err != nil || !action.IsReminder() {
		logger.Error("failed to parse reminder callback", "data", update.CallbackQuery.Data, "error", err)
		answerCallback("Unknown command")
		return
	}

	current, err := h.store.GetMessage(ctx, action.MessageID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			answerCallback("This message no longer exists")
			return
		}
		logger.Error("failed to load message", "message_id", action.MessageID, "error", err)
		answerCallback("Failed to update the message")
		return
	}

	now := h.now()
	if alreadyHandled(current, action.Op, now) {
		answerCallback("Already handled")
		h.refreshReminderMessage(ctx, b, update.CallbackQuery.Message, "")
		return
	}

	change := db.MessageUpdate{Status: reminder.StatusResponded}
	if action.Op == ui.OpLater {
		change.Status = reminder.StatusSnoozed
	}
	change, err = change.Normalize(now, h.defaultSnooze)
	if err != nil {
		logger.Error("failed to build message update", "message_id", action.MessageID, "error", err)
		answerCallback("Unknown command")
		return
	}

	updated, err := h.store.UpdateMessage(ctx, action.MessageID, change)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			answerCallback("This message no longer exists")
			return
		}
		logger.Error("failed to update message", "message_id", action.MessageID, "error", err)
		answerCallback("Failed to update the message")
		return
	}

	status := "Marked as responded"
	if updated.SnoozedUntil != nil {
		status = "Snoozed until " + ui.FormatDeadline(*updated.SnoozedUntil)
	}
	answerCallback(status)
	h.refreshReminderMessage(ctx, b, update.CallbackQuery.Message, status)
}

// alreadyHandled reports whether a reminder button no longer applies.
// Responded is final. Later only applies while the message is pending;
// Responded still applies to a snoozed message.
func alreadyHandled(msg db.Message, op ui.Operation, now time.Time) bool {
	if msg.Status == reminder.StatusResponded {
		return true
	}
	return op == ui.OpLater && !reminder.IsPending(msg.Status, msg.SnoozedUntil, now)
}

// refreshReminderMessage re-renders a pending list in place, or appends status
// to an alert and drops its buttons. An empty status only drops the buttons.
func (h *Handlers) refreshReminderMessage(ctx context.Context, b *bot.Bot, message models.MaybeInaccessibleMessage, status string) {
	if message.Type != models.MaybeInaccessibleMessageTypeMessage || message.Message == nil || message.Message.Chat.ID == 0 {
		return
	}
	msg := message.Message
	empty := &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{}}

	if !strings.HasPrefix(msg.Text, ui.PendingHeader) && status == "" {
		if _, err := b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			ReplyMarkup: empty,
		}); err != nil {
			logger.Error("failed to clear reminder buttons", "chat_id", msg.Chat.ID, "error", err)
		}
		return
	}

	var (
		text     string
		keyboard *models.InlineKeyboardMarkup
		err      error
	)
	if strings.HasPrefix(msg.Text, ui.PendingHeader) {
		text, keyboard, err = h.renderPending(ctx)
		if err != nil {
			logger.Error("failed to render pending reminders", "chat_id", msg.Chat.ID, "error", err)
			return
		}
	} else {
		text = msg.Text + "\n\n" + status
	}
	if keyboard == nil {
		keyboard = empty
	}

	if _, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: keyboard,
	}); err != nil {
		logger.Error("failed to edit reminder message", "chat_id", msg.Chat.ID, "error", err)
	}
}
