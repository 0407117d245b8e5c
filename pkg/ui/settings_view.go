package ui

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/reminder"
)

var toggleLabels = map[Toggle]string{
	TogglePush:  "Push notifications",
	ToggleSound: "Sound alerts",
	ToggleQuick: "Quick responses",
	ToggleDND:   "Do not disturb",
}

// ToggleValue reads the flag a toggle refers to.
func ToggleValue(settings db.Settings, toggle Toggle) bool {
	switch toggle {
	case TogglePush:
		return settings.PushNotifications
	case ToggleSound:
		return settings.SoundAlerts
	case ToggleQuick:
		return settings.QuickResponses
	case ToggleDND:
		return settings.DoNotDisturb
	default:
		return false
	}
}

// ApplyToggle flips the flag a toggle refers to.
func ApplyToggle(settings db.Settings, toggle Toggle) db.Settings {
	switch toggle {
	case TogglePush:
		settings.PushNotifications = !settings.PushNotifications
	case ToggleSound:
		settings.SoundAlerts = !settings.SoundAlerts
	case ToggleQuick:
		settings.QuickResponses = !settings.QuickResponses
	case ToggleDND:
		settings.DoNotDisturb = !settings.DoNotDisturb
	}
	return settings
}

// ApplyWindow sets the reminder window of one priority tier.
func ApplyWindow(settings db.Settings, priority reminder.Priority, window reminder.Window) db.Settings {
	switch priority {
	case reminder.PriorityHigh:
		settings.Priority1Time = window
	case reminder.PriorityMedium:
		settings.Priority2Time = window
	case reminder.PriorityLow:
		settings.Priority3Time = window
	}
	return settings
}

func tierDescription(settings db.Settings, priority reminder.Priority) string {
	switch priority {
	case reminder.PriorityHigh:
		return settings.Priority1Description
	case reminder.PriorityMedium:
		return settings.Priority2Description
	case reminder.PriorityLow:
		return settings.Priority3Description
	default:
		return ""
	}
}

func RenderHome(settings db.Settings) (string, *models.InlineKeyboardMarkup, error) {
	var text strings.Builder
	text.WriteString("Settings\n")
	for _, p := range reminder.Priorities {
		window, _ := settings.WindowFor(p)
		fmt.Fprintf(&text, "- Priority %s (%s): %s\n", p, tierDescription(settings, p), reminder.FormatWindow(window))
	}
	for _, toggle := range Toggles {
		fmt.Fprintf(&text, "- %s: %s\n", toggleLabels[toggle], formatToggle(ToggleValue(settings, toggle)))
	}
	fmt.Fprintf(&text, "- Platforms: %s", formatApps(settings))

	var tierRow []models.InlineKeyboardButton
	for _, p := range reminder.Priorities {
		data, err := BuildTierCallback(p)
		if err != nil {
			return "", nil, err
		}
		tierRow = append(tierRow, models.InlineKeyboardButton{Text: "Priority " + string(p), CallbackData: data})
	}

	rows := [][]models.InlineKeyboardButton{tierRow}
	var toggleRow []models.InlineKeyboardButton
	for _, toggle := range Toggles {
		data, err := BuildToggleCallback(toggle)
		if err != nil {
			return "", nil, err
		}
		toggleRow = append(toggleRow, models.InlineKeyboardButton{
			Text:         toggleLabel(toggleLabels[toggle], ToggleValue(settings, toggle)),
			CallbackData: data,
		})
		if len(toggleRow) == 2 {
			rows = append(rows, toggleRow)
			toggleRow = nil
		}
	}

	closeData, err := BuildCloseCallback()
	if err != nil {
		return "", nil, err
	}
	rows = append(rows, []models.InlineKeyboardButton{{Text: "Close", CallbackData: closeData}})

	return strings.TrimRight(text.String(), "\n"), &models.InlineKeyboardMarkup{InlineKeyboard: rows}, nil
}

func RenderTier(settings db.Settings, priority reminder.Priority) (string, *models.InlineKeyboardMarkup, error) {
	current, ok := settings.WindowFor(priority)
	if !ok {
		return "", nil, errInvalidValue
	}

	text := fmt.Sprintf("Priority %s: %s\nReminder window: %s",
		priority, tierDescription(settings, priority), reminder.FormatWindow(current))

	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for _, window := range reminder.Windows {
		data, err := BuildWindowCallback(priority, window)
		if err != nil {
			return "", nil, err
		}
		label := string(window)
		if window == current {
			label = "• " + label
		}
		row = append(row, models.InlineKeyboardButton{Text: label, CallbackData: data})
		if len(row) == 5 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	backData, err := BuildHomeCallback()
	if err != nil {
		return "", nil, err
	}
	rows = append(rows, []models.InlineKeyboardButton{{Text: "Back", CallbackData: backData}})

	return text, &models.InlineKeyboardMarkup{InlineKeyboard: rows}, nil
}

func formatApps(settings db.Settings) string {
	if len(settings.EnabledApps) == 0 {
		return "all"
	}
	return strings.Join(settings.EnabledApps, ", ")
}

func formatToggle(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func toggleLabel(label string, enabled bool) string {
	if enabled {
		return "✅ " + label
	}
	return "⬜ " + label
}
