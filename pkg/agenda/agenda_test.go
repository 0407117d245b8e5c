package agenda

import (
	"context"
	"testing"
	"time"

	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/internal/testutil"
	"github.com/smith3v/reply-reminder/pkg/reminder"
)

func seed(t *testing.T, store *db.Store, now time.Time) map[string]db.Contact {
	t.Helper()
	ctx := context.Background()
	contacts := map[string]db.Contact{}
	for _, c := range []db.Contact{
		{Name: "Mum", Priority: reminder.PriorityHigh, ReminderTime: "2h"},
		{Name: "Sam", Priority: reminder.PriorityMedium, ReminderTime: "1d"},
		{Name: "Lee", Priority: reminder.PriorityLow, ReminderTime: "3d"},
	} {
		created, err := store.CreateContact(ctx, c)
		if err != nil {
			t.Fatalf("CreateContact returned error: %v", err)
		}
		contacts[c.Name] = created
	}

	messages := []db.Message{
		{ContactID: contacts["Lee"].ID, ReceivedAt: now.Add(-36 * time.Hour)},
		{ContactID: contacts["Mum"].ID, ReceivedAt: now.Add(-30 * time.Minute)},
		{ContactID: contacts["Mum"].ID, ReceivedAt: now.Add(-3 * time.Hour)},
		{ContactID: contacts["Sam"].ID, ReceivedAt: now.Add(-6 * time.Hour)},
		{ContactID: 999, ReceivedAt: now.Add(-time.Hour)},
	}
	for _, m := range messages {
		m.Content = "hello"
		m.Platform = "Messages"
		m.Status = reminder.StatusPending
		if _, err := store.CreateMessage(ctx, m); err != nil {
			t.Fatalf("CreateMessage returned error: %v", err)
		}
	}
	return contacts
}

func TestPendingOrdersByPriorityThenProgress(t *testing.T) {
	store := testutil.SetupTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	contacts := seed(t, store, now)

	items, err := Pending(context.Background(), store, now)
	if err != nil {
		t.Fatalf("Pending returned error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items (orphan skipped), got %d", len(items))
	}

	wantContacts := []uint{contacts["Mum"].ID, contacts["Mum"].ID, contacts["Sam"].ID, contacts["Lee"].ID}
	wantProgress := []int{100, 25, 25, 50}
	for i, item := range items {
		if item.Contact.ID != wantContacts[i] {
			t.Errorf("item %d: expected contact %d, got %d", i, wantContacts[i], item.Contact.ID)
		}
		if item.Progress != wantProgress[i] {
			t.Errorf("item %d: expected progress %d, got %d", i, wantProgress[i], item.Progress)
		}
	}

	first := items[0]
	if !first.Overdue || first.Urgency != reminder.UrgencyAlmostDue {
		t.Fatalf("expected first item to be overdue and almost due, got %+v", first)
	}
	if first.WindowLabel != "2 hours" {
		t.Fatalf("expected window label 2 hours, got %q", first.WindowLabel)
	}
	if !first.Deadline.Equal(now.Add(-time.Hour)) {
		t.Fatalf("expected deadline %v, got %v", now.Add(-time.Hour), first.Deadline)
	}
}

func TestSummarize(t *testing.T) {
	store := testutil.SetupTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seed(t, store, now)

	items, err := Pending(context.Background(), store, now)
	if err != nil {
		t.Fatalf("Pending returned error: %v", err)
	}
	summary := Summarize(items)
	if summary.Total != 4 || summary.Overdue != 1 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if summary.ByPriority["1"] != 2 || summary.ByPriority["2"] != 1 || summary.ByPriority["3"] != 1 {
		t.Fatalf("unexpected per-priority counts: %+v", summary.ByPriority)
	}

	if got := FilterPriority(items, reminder.PriorityHigh); len(got) != 2 {
		t.Fatalf("expected 2 priority 1 items, got %d", len(got))
	}

	empty := Summarize(nil)
	if empty.ByPriority["3"] != 0 || len(empty.ByPriority) != 3 {
		t.Fatalf("expected zeroed tiers, got %+v", empty.ByPriority)
	}
}
