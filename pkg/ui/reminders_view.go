package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/go-telegram/bot/models"
	"github.com/smith3v/reply-reminder/pkg/agenda"
)

// MaxListedReminders caps how many reminders one /pending reply shows.
const MaxListedReminders = 20

// MaxMessageLength is Telegram's limit for a message text, in UTF-16 units.
const MaxMessageLength = 4096

// PendingHeader starts every rendered pending list.
const PendingHeader = "Pending replies"

const (
	deadlineLayout  = "Jan 2 15:04 MST"
	maxLabelLength  = 64
	maxPlatformName = 32
	// room kept for the "…and N more" note
	overflowReserve = 32
)

func contactLabel(item agenda.Item) string {
	if item.Contact.Nickname != nil && *item.Contact.Nickname != "" {
		return truncate(fmt.Sprintf("%s (%s)", item.Contact.Name, *item.Contact.Nickname), maxLabelLength)
	}
	return truncate(item.Contact.Name, maxLabelLength)
}

func textLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// RenderPending lists pending reminders. With quickActions set every
// reminder gets a row of Responded / Later buttons. Entries that would push
// the text past MaxMessageLength are left to the overflow note.
func RenderPending(items []agenda.Item, quickActions bool) (string, *models.InlineKeyboardMarkup, error) {
	if len(items) == 0 {
		return "Nothing pending. You're all caught up.", nil, nil
	}

	var text strings.Builder
	fmt.Fprintf(&text, "%s: %d\n", PendingHeader, len(items))
	length := textLength(text.String())

	var rows [][]models.InlineKeyboardButton
	shown := 0
	for i, item := range items {
		if i == MaxListedReminders {
			break
		}
		entry := fmt.Sprintf("\n%d. %s via %s\n   %d%% of %s, %s",
			i+1,
			contactLabel(item),
			truncate(item.Message.Platform, maxPlatformName),
			item.Progress,
			item.WindowLabel,
			strings.ToLower(item.Urgency),
		)
		if item.Overdue {
			entry += " (overdue)"
		}
		entryLength := textLength(entry)
		if length+entryLength+overflowReserve > MaxMessageLength {
			break
		}
		text.WriteString(entry)
		length += entryLength
		shown++

		if !quickActions {
			continue
		}
		row, err := ReminderButtons(item.Message.ID, fmt.Sprintf("%d. ", i+1))
		if err != nil {
			return "", nil, err
		}
		rows = append(rows, row)
	}
	if rest := len(items) - shown; rest > 0 {
		fmt.Fprintf(&text, "\n\n…and %d more", rest)
	}

	if len(rows) == 0 {
		return text.String(), nil, nil
	}
	return text.String(), &models.InlineKeyboardMarkup{InlineKeyboard: rows}, nil
}

// ReminderButtons builds the Responded / Later row for one message.
func ReminderButtons(messageID uint, labelPrefix string) ([]models.InlineKeyboardButton, error) {
	doneData, err := BuildRespondedCallback(messageID)
	if err != nil {
		return nil, err
	}
	laterData, err := BuildLaterCallback(messageID)
	if err != nil {
		return nil, err
	}
	return []models.InlineKeyboardButton{
		{Text: labelPrefix + "Responded", CallbackData: doneData},
		{Text: labelPrefix + "Later", CallbackData: laterData},
	}, nil
}

// RenderAlert formats an urgent-message notification.
func RenderAlert(item agenda.Item) (title, body string) {
	title = "Reply reminder"
	body = fmt.Sprintf("Message from %s is urgent and needs a response.\n%s · %s · due %s",
		contactLabel(item),
		item.Urgency,
		item.Message.Platform,
		FormatDeadline(item.Deadline),
	)
	if item.Message.Content != "" {
		body += "\n\n" + truncate(item.Message.Content, 200)
	}
	return title, body
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

// FormatDeadline renders a deadline for chat replies.
func FormatDeadline(t time.Time) string {
	return t.UTC().Format(deadlineLayout)
}
