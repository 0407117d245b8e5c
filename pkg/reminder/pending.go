package reminder

import "time"

// IsPending reports whether a message still needs attention: it has not been
// responded to and is not inside an active snooze. A snoozed message without
// a snooze deadline counts as pending.
func IsPending(status Status, snoozedUntil *time.Time, now time.Time) bool {
	if status == StatusResponded {
		return false
	}
	if status == StatusSnoozed && snoozedUntil != nil && snoozedUntil.After(now) {
		return false
	}
	return true
}

// FilterPending keeps the items for which IsPending holds. The input order is preserved.
func FilterPending[T any](items []T, now time.Time, state func(T) (Status, *time.Time)) []T {
	pending := make([]T, 0, len(items))
	for _, item := range items {
		status, snoozedUntil := state(item)
		if IsPending(status, snoozedUntil, now) {
			pending = append(pending, item)
		}
	}
	return pending
}
