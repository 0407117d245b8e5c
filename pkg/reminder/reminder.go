package reminder

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "1"
	PriorityMedium Priority = "2"
	PriorityLow    Priority = "3"
)

// Priorities lists the tiers in escalation order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

type Status string

// DefaultSnooze is how long the Later action hides a message.
const DefaultSnooze = 3 * time.Hour

const (
	StatusPending   Status = "pending"
	StatusResponded Status = "responded"
	StatusSnoozed   Status = "snoozed"
)

// Window is a reminder window token such as "2h" or "3d".
type Window string

var Windows = []Window{"1h", "2h", "4h", "6h", "12h", "1d", "2d", "3d", "5d", "7d"}

const (
	hourMs = int64(time.Hour / time.Millisecond)
	dayMs  = 24 * hourMs
)

var (
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidWindow   = errors.New("invalid reminder window")
	ErrInvalidStatus   = errors.New("invalid message status")
)

func ParsePriority(value string) (Priority, error) {
	for _, p := range Priorities {
		if string(p) == value {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrInvalidPriority, value)
}

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPending, StatusResponded, StatusSnoozed:
		return Status(value), nil
	default:
		return "", fmt.Errorf("%w %q", ErrInvalidStatus, value)
	}
}

// ParseWindow accepts only the enumerated tokens.
func ParseWindow(value string) (Window, error) {
	for _, w := range Windows {
		if string(w) == value {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrInvalidWindow, value)
}

// DurationToMs converts a window token to milliseconds. Unknown units or
// malformed magnitudes yield 0.
func DurationToMs(window Window) int64 {
	magnitude, unit, ok := splitWindow(window)
	if !ok {
		return 0
	}
	switch unit {
	case 'h':
		return magnitude * hourMs
	case 'd':
		return magnitude * dayMs
	default:
		return 0
	}
}

// Duration is DurationToMs as a time.Duration.
func (w Window) Duration() time.Duration {
	return time.Duration(DurationToMs(w)) * time.Millisecond
}

func splitWindow(window Window) (int64, byte, bool) {
	s := string(window)
	if len(s) < 2 {
		return 0, 0, false
	}
	magnitude, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil || magnitude < 0 {
		return 0, 0, false
	}
	return magnitude, s[len(s)-1], true
}

// FormatWindow renders a token for display, e.g. "1 hour" or "3 days".
func FormatWindow(window Window) string {
	magnitude, unit, ok := splitWindow(window)
	if !ok {
		return string(window)
	}
	var singular string
	switch unit {
	case 'h':
		singular = "hour"
	case 'd':
		singular = "day"
	default:
		return string(window)
	}
	if magnitude == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %ss", magnitude, singular)
}
