package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/reply-reminder/pkg/logger"
)

const helpText = "Commands:\n" +
	"/pending: list messages waiting for your reply\n" +
	"/settings: reminder windows and notification switches\n" +
	"/start: show this help and a summary"

func (h *Handlers) DefaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		logger.Debug("ignoring non-message update in DefaultHandler")
		return
	}
	if update.Message.Chat.ID == 0 {
		logger.Error("chat ID is zero in DefaultHandler")
		return
	}
	sendText(ctx, b, update.Message.Chat.ID, helpText)
}
