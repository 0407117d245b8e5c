package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/smith3v/reply-reminder/pkg/reminder"
)

const (
	SettingsPrefix     = "s:"
	ReminderPrefix     = "r:"
	MaxCallbackDataLen = 64
)

type Screen string

const (
	ScreenNone  Screen = ""
	ScreenHome  Screen = "home"
	ScreenTier  Screen = "tier"
	ScreenClose Screen = "close"
)

type Operation string

const (
	OpNone      Operation = ""
	OpToggle    Operation = "toggle"
	OpSetWindow Operation = "win"
	OpResponded Operation = "done"
	OpLater     Operation = "later"
)

// Toggle names a boolean settings flag.
type Toggle string

const (
	TogglePush  Toggle = "push"
	ToggleSound Toggle = "sound"
	ToggleQuick Toggle = "quick"
	ToggleDND   Toggle = "dnd"
)

var Toggles = []Toggle{TogglePush, ToggleSound, ToggleQuick, ToggleDND}

type Action struct {
	Screen    Screen
	Op        Operation
	Toggle    Toggle
	Priority  reminder.Priority
	Window    reminder.Window
	MessageID uint
}

// IsReminder reports whether the action acts on a pending message.
func (a Action) IsReminder() bool {
	return a.Op == OpResponded || a.Op == OpLater
}

var (
	errInvalidPrefix       = errors.New("invalid callback prefix")
	errInvalidAction       = errors.New("invalid callback action")
	errInvalidOperation    = errors.New("invalid callback operation")
	errInvalidValue        = errors.New("invalid callback value")
	errCallbackDataTooLong = errors.New("callback data too long")
)

func BuildHomeCallback() (string, error) {
	return validateCallbackData(SettingsPrefix + string(ScreenHome))
}

func BuildCloseCallback() (string, error) {
	return validateCallbackData(SettingsPrefix + string(ScreenClose))
}

func BuildTierCallback(priority reminder.Priority) (string, error) {
	if _, err := reminder.ParsePriority(string(priority)); err != nil {
		return "", errInvalidValue
	}
	return validateCallbackData(SettingsPrefix + string(ScreenTier) + ":" + string(priority))
}

func BuildToggleCallback(toggle Toggle) (string, error) {
	if !validToggle(toggle) {
		return "", errInvalidValue
	}
	return validateCallbackData(SettingsPrefix + string(OpToggle) + ":" + string(toggle))
}

func BuildWindowCallback(priority reminder.Priority, window reminder.Window) (string, error) {
	if _, err := reminder.ParsePriority(string(priority)); err != nil {
		return "", errInvalidValue
	}
	if _, err := reminder.ParseWindow(string(window)); err != nil {
		return "", errInvalidValue
	}
	return validateCallbackData(SettingsPrefix + string(OpSetWindow) + ":" + string(priority) + ":" + string(window))
}

func BuildRespondedCallback(messageID uint) (string, error) {
	return buildReminderCallback(OpResponded, messageID)
}

func BuildLaterCallback(messageID uint) (string, error) {
	return buildReminderCallback(OpLater, messageID)
}

func ParseCallbackData(data string) (Action, error) {
	if data == "" {
		return Action{}, errInvalidAction
	}
	if len(data) > MaxCallbackDataLen {
		return Action{}, errCallbackDataTooLong
	}

	switch {
	case strings.HasPrefix(data, ReminderPrefix):
		return parseReminderAction(strings.Split(strings.TrimPrefix(data, ReminderPrefix), ":"))
	case strings.HasPrefix(data, SettingsPrefix):
		return parseSettingsAction(strings.Split(strings.TrimPrefix(data, SettingsPrefix), ":"))
	default:
		return Action{}, errInvalidPrefix
	}
}

func buildReminderCallback(op Operation, messageID uint) (string, error) {
	if messageID == 0 {
		return "", errInvalidValue
	}
	data := ReminderPrefix + string(op) + ":" + strconv.FormatUint(uint64(messageID), 10)
	return validateCallbackData(data)
}

func validateCallbackData(data string) (string, error) {
	if data == "" {
		return "", errInvalidAction
	}
	if len(data) > MaxCallbackDataLen {
		return "", errCallbackDataTooLong
	}
	return data, nil
}

func parseReminderAction(parts []string) (Action, error) {
	if len(parts) != 2 {
		return Action{}, errInvalidAction
	}
	op := Operation(parts[0])
	if op != OpResponded && op != OpLater {
		return Action{}, errInvalidOperation
	}
	if !isASCIIUnsignedInt(parts[1]) {
		return Action{}, errInvalidValue
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || id == 0 {
		return Action{}, errInvalidValue
	}
	return Action{Op: op, MessageID: uint(id)}, nil
}

func parseSettingsAction(parts []string) (Action, error) {
	switch len(parts) {
	case 1:
		switch Screen(parts[0]) {
		case ScreenHome, ScreenClose:
			return Action{Screen: Screen(parts[0])}, nil
		default:
			return Action{}, errInvalidAction
		}
	case 2:
		switch parts[0] {
		case string(ScreenTier):
			priority, err := reminder.ParsePriority(parts[1])
			if err != nil {
				return Action{}, errInvalidValue
			}
			return Action{Screen: ScreenTier, Priority: priority}, nil
		case string(OpToggle):
			toggle := Toggle(parts[1])
			if !validToggle(toggle) {
				return Action{}, errInvalidValue
			}
			return Action{Screen: ScreenHome, Op: OpToggle, Toggle: toggle}, nil
		default:
			return Action{}, errInvalidOperation
		}
	case 3:
		if parts[0] != string(OpSetWindow) {
			return Action{}, errInvalidOperation
		}
		priority, err := reminder.ParsePriority(parts[1])
		if err != nil {
			return Action{}, errInvalidValue
		}
		window, err := reminder.ParseWindow(parts[2])
		if err != nil {
			return Action{}, errInvalidValue
		}
		return Action{Screen: ScreenTier, Op: OpSetWindow, Priority: priority, Window: window}, nil
	default:
		return Action{}, errInvalidAction
	}
}

func validToggle(toggle Toggle) bool {
	for _, t := range Toggles {
		if t == toggle {
			return true
		}
	}
	return false
}

func isASCIIUnsignedInt(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
