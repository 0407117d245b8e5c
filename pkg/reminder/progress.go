package reminder

import "time"

const (
	UrgencyAlmostDue    = "Almost due"
	UrgencyRespondSoon  = "Respond soon"
	UrgencyRespondToday = "Respond today"
	UrgencyLowPriority  = "Low priority"
)

// Progress returns how far a message received at receivedAt is through its
// reminder window, as an integer percentage in [0, 100]. A window that does
// not parse counts as already elapsed.
func Progress(receivedAt time.Time, window Window, now time.Time) int {
	windowMs := DurationToMs(window)
	if windowMs <= 0 {
		return 100
	}
	elapsedMs := now.Sub(receivedAt).Milliseconds()
	if elapsedMs <= 0 {
		return 0
	}
	if elapsedMs >= windowMs {
		return 100
	}
	return int(elapsedMs * 100 / windowMs)
}

// IsOverdue reports whether the full window has elapsed since receipt.
// It agrees with Progress: a message is overdue exactly when progress is 100.
func IsOverdue(receivedAt time.Time, window Window, now time.Time) bool {
	windowMs := DurationToMs(window)
	if windowMs <= 0 {
		return true
	}
	return now.Sub(receivedAt).Milliseconds() >= windowMs
}

// Deadline is the moment the window runs out.
func Deadline(receivedAt time.Time, window Window) time.Time {
	return receivedAt.Add(window.Duration())
}

// UrgencyFor labels a progress percentage: (80,100] almost due, [50,80]
// respond soon, (30,50) respond today, [0,30] low priority. Only the 50
// boundary is inclusive, so a message half way through its window already
// reads as respond soon.
func UrgencyFor(progress int) string {
	switch {
	case progress > 80:
		return UrgencyAlmostDue
	case progress >= 50:
		return UrgencyRespondSoon
	case progress > 30:
		return UrgencyRespondToday
	default:
		return UrgencyLowPriority
	}
}
