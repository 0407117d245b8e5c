package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/logger"
	"github.com/smith3v/reply-reminder/pkg/ui"
)

var ErrInvalidAction = errors.New("invalid settings action")

func (h *Handlers) HandleSettings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleSettings")
		return
	}
	chatID := update.Message.Chat.ID

	settings, err := h.store.GetSettings(ctx)
	if err != nil {
		logger.Error("failed to load settings", "chat_id", chatID, "error", err)
		sendText(ctx, b, chatID, "Failed to load your settings. Please try again later.")
		return
	}

	text, keyboard, err := ui.RenderHome(settings)
	if err != nil {
		logger.Error("failed to render settings home", "chat_id", chatID, "error", err)
		sendText(ctx, b, chatID, "Failed to render settings. Please try again later.")
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	}); err != nil {
		logger.Error("failed to send settings message", "chat_id", chatID, "error", err)
	}
}

func (h *Handlers) HandleSettingsCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleSettingsCallback")
		return
	}
	answerCallback := callbackAnswerer(ctx, b, update.CallbackQuery.ID)

	action, err := ui.ParseCallbackData(update.CallbackQuery.Data)
	if err != nil {
		logger.Error("failed to parse settings callback", "data", update.CallbackQuery.Data, "error", err)
		answerCallback("Unknown command")
		return
	}

	message := update.CallbackQuery.Message
	if message.Type != models.MaybeInaccessibleMessageTypeMessage || message.Message == nil {
		logger.Error("callback query message is inaccessible", "user_id", update.CallbackQuery.From.ID)
		answerCallback("Message is not available")
		return
	}
	msg := message.Message
	if msg.Chat.ID == 0 {
		logger.Error("callback query message chat ID is missing", "user_id", update.CallbackQuery.From.ID)
		answerCallback("Message is not available")
		return
	}

	settings, err := h.store.GetSettings(ctx)
	if err != nil {
		logger.Error("failed to load settings", "chat_id", msg.Chat.ID, "error", err)
		answerCallback("Failed to load settings")
		return
	}

	newSettings, nextScreen, changed, err := ApplyAction(settings, action)
	if err != nil {
		logger.Error("failed to apply settings action", "chat_id", msg.Chat.ID, "error", err)
		answerCallback("Unknown command")
		return
	}

	if changed {
		if newSettings, err = h.store.ReplaceSettings(ctx, newSettings); err != nil {
			logger.Error("failed to save settings", "chat_id", msg.Chat.ID, "error", err)
			answerCallback("Failed to save settings")
			return
		}
	}
	answerCallback("")

	if !changed && action.Op == ui.OpSetWindow {
		return
	}

	var text string
	var keyboard *models.InlineKeyboardMarkup
	switch nextScreen {
	case ui.ScreenHome:
		text, keyboard, err = ui.RenderHome(newSettings)
	case ui.ScreenTier:
		text, keyboard, err = ui.RenderTier(newSettings, action.Priority)
	case ui.ScreenClose:
		text = "Settings saved ✅"
		keyboard = &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{},
		}
	default:
		logger.Error("unknown settings screen", "screen", nextScreen)
		return
	}
	if err != nil {
		logger.Error("failed to render settings screen", "chat_id", msg.Chat.ID, "error", err)
		return
	}

	if _, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: keyboard,
	}); err != nil {
		logger.Error("failed to edit settings message", "chat_id", msg.Chat.ID, "error", err)
	}
}

// ApplyAction returns the settings after a settings callback, the screen to
// show next and whether anything changed.
func ApplyAction(settings db.Settings, action ui.Action) (db.Settings, ui.Screen, bool, error) {
	switch action.Screen {
	case ui.ScreenHome:
		switch action.Op {
		case ui.OpNone:
			return settings, ui.ScreenHome, false, nil
		case ui.OpToggle:
			return ui.ApplyToggle(settings, action.Toggle), ui.ScreenHome, true, nil
		default:
			return settings, ui.ScreenHome, false, ErrInvalidAction
		}
	case ui.ScreenClose:
		if action.Op != ui.OpNone {
			return settings, ui.ScreenClose, false, ErrInvalidAction
		}
		return settings, ui.ScreenClose, false, nil
	case ui.ScreenTier:
		switch action.Op {
		case ui.OpNone:
			return settings, ui.ScreenTier, false, nil
		case ui.OpSetWindow:
			current, ok := settings.WindowFor(action.Priority)
			if !ok {
				return settings, ui.ScreenHome, false, ErrInvalidAction
			}
			if current == action.Window {
				return settings, ui.ScreenTier, false, nil
			}
			return ui.ApplyWindow(settings, action.Priority, action.Window), ui.ScreenTier, true, nil
		default:
			return settings, ui.ScreenTier, false, ErrInvalidAction
		}
	default:
		return settings, ui.ScreenHome, false, ErrInvalidAction
	}
}
