// Package agenda joins pending messages with their contacts and annotates
// them with reminder progress. The HTTP API, the Telegram bot and the
// notifier all read pending reminders through it.
package agenda

import (
	"context"
	"sort"
	"time"

	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/reminder"
)

type Source interface {
	ListContacts(ctx context.Context) ([]db.Contact, error)
	ListPendingMessages(ctx context.Context, now time.Time) ([]db.Message, error)
}

type Item struct {
	Message     db.Message `json:"message"`
	Contact     db.Contact `json:"contact"`
	Progress    int        `json:"progress"`
	Urgency     string     `json:"urgency"`
	Overdue     bool       `json:"overdue"`
	Deadline    time.Time  `json:"deadline"`
	WindowLabel string     `json:"windowLabel"`
}

func NewItem(message db.Message, contact db.Contact, now time.Time) Item {
	progress := reminder.Progress(message.ReceivedAt, contact.ReminderTime, now)
	return Item{
		Message:     message,
		Contact:     contact,
		Progress:    progress,
		Urgency:     reminder.UrgencyFor(progress),
		Overdue:     reminder.IsOverdue(message.ReceivedAt, contact.ReminderTime, now),
		Deadline:    reminder.Deadline(message.ReceivedAt, contact.ReminderTime),
		WindowLabel: reminder.FormatWindow(contact.ReminderTime),
	}
}

// Pending returns the pending reminders ordered by priority tier, then by
// progress (most urgent first). Messages whose contact no longer exists are
// left out.
func Pending(ctx context.Context, src Source, now time.Time) ([]Item, error) {
	messages, err := src.ListPendingMessages(ctx, now)
	if err != nil {
		return nil, err
	}
	contacts, err := src.ListContacts(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]db.Contact, len(contacts))
	for _, contact := range contacts {
		byID[contact.ID] = contact
	}

	items := make([]Item, 0, len(messages))
	for _, message := range messages {
		contact, ok := byID[message.ContactID]
		if !ok {
			continue
		}
		items = append(items, NewItem(message, contact, now))
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Contact.Priority != b.Contact.Priority {
			return a.Contact.Priority < b.Contact.Priority
		}
		if a.Progress != b.Progress {
			return a.Progress > b.Progress
		}
		if !a.Message.ReceivedAt.Equal(b.Message.ReceivedAt) {
			return a.Message.ReceivedAt.Before(b.Message.ReceivedAt)
		}
		return a.Message.ID < b.Message.ID
	})
	return items, nil
}

func FilterPriority(items []Item, priority reminder.Priority) []Item {
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Contact.Priority == priority {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

type Summary struct {
	Total      int                       `json:"total"`
	Overdue    int                       `json:"overdue"`
	ByPriority map[reminder.Priority]int `json:"byPriority"`
}

func Summarize(items []Item) Summary {
	summary := Summary{ByPriority: make(map[reminder.Priority]int, len(reminder.Priorities))}
	for _, p := range reminder.Priorities {
		summary.ByPriority[p] = 0
	}
	for _, item := range items {
		summary.Total++
		summary.ByPriority[item.Contact.Priority]++
		if item.Overdue {
			summary.Overdue++
		}
	}
	return summary
}
