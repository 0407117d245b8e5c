package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/reply-reminder/pkg/agenda"
	"github.com/smith3v/reply-reminder/pkg/logger"
)

func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleStart")
		return
	}
	chatID := update.Message.Chat.ID

	items, err := agenda.Pending(ctx, h.store, h.now())
	if err != nil {
		logger.Error("failed to load pending reminders", "chat_id", chatID, "error", err)
		sendText(ctx, b, chatID, "Failed to load your reminders. Please try again later.")
		return
	}
	summary := agenda.Summarize(items)

	text := fmt.Sprintf("Reply reminder keeps track of messages you still owe an answer.\n\n"+
		"Pending: %d (overdue: %d)\nPriority 1: %d · Priority 2: %d · Priority 3: %d\n\n%s",
		summary.Total, summary.Overdue,
		summary.ByPriority["1"], summary.ByPriority["2"], summary.ByPriority["3"],
		helpText,
	)
	sendText(ctx, b, chatID, text)
}
