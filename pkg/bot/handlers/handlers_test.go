package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/internal/testutil"
	"github.com/smith3v/reply-reminder/pkg/logger"
	"github.com/smith3v/reply-reminder/pkg/reminder"
	"github.com/smith3v/reply-reminder/pkg/ui"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store   *db.Store
	h       *Handlers
	message db.Message
}

func setup(t *testing.T) fixture {
	t.Helper()
	logger.SetLogLevel(logger.ERROR)
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	if _, err := store.EnsureSettings(ctx); err != nil {
		t.Fatalf("EnsureSettings returned error: %v", err)
	}
	contact, err := store.CreateContact(ctx, db.Contact{Name: "Mum", Priority: reminder.PriorityHigh, ReminderTime: "2h"})
	if err != nil {
		t.Fatalf("CreateContact returned error: %v", err)
	}
	message, err := store.CreateMessage(ctx, db.Message{
		ContactID:  contact.ID,
		Content:    "dinner?",
		Platform:   "Messages",
		Status:     reminder.StatusPending,
		ReceivedAt: testNow.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}
	h := New(store, Options{Now: func() time.Time { return testNow }})
	return fixture{store: store, h: h, message: message}
}

func hasField(req recordedRequest, field string) bool {
	return strings.Contains(string(req.body), `name="`+field+`"`)
}

func TestDefaultHandlerSendsHelp(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	f.h.DefaultHandler(context.Background(), b, newTestUpdate("hello", 100))

	if got := client.lastMessageText(t); !strings.Contains(got, "Commands:") {
		t.Fatalf("expected commands message, got %q", got)
	}
}

func TestHandleStartShowsSummary(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	f.h.HandleStart(context.Background(), b, newTestUpdate("/start", 100))

	got := client.lastMessageText(t)
	if !strings.Contains(got, "Pending: 1 (overdue: 0)") {
		t.Fatalf("expected pending summary, got %q", got)
	}
	if !strings.Contains(got, "Priority 1: 1 · Priority 2: 0 · Priority 3: 0") {
		t.Fatalf("expected per-priority counts, got %q", got)
	}
}

func TestHandlePendingListsRemindersWithButtons(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	f.h.HandlePending(context.Background(), b, newTestUpdate("/pending", 100))

	got := client.lastMessageText(t)
	if !strings.HasPrefix(got, ui.PendingHeader+": 1") {
		t.Fatalf("unexpected pending text %q", got)
	}
	if !strings.Contains(got, "Mum via Messages") || !strings.Contains(got, "50% of 2 hours") {
		t.Fatalf("expected reminder details, got %q", got)
	}
	markup, _ := client.lastMultipartField(t, "reply_markup")
	done, _ := ui.BuildRespondedCallback(f.message.ID)
	if !strings.Contains(markup, done) {
		t.Fatalf("expected responded button %q in %q", done, markup)
	}
}

func TestHandlePendingWithoutQuickResponses(t *testing.T) {
	f := setup(t)
	settings, _ := f.store.GetSettings(context.Background())
	settings.QuickResponses = false
	if _, err := f.store.ReplaceSettings(context.Background(), settings); err != nil {
		t.Fatalf("ReplaceSettings returned error: %v", err)
	}
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	f.h.HandlePending(context.Background(), b, newTestUpdate("/pending", 100))

	if hasField(client.requests[len(client.requests)-1], "reply_markup") {
		t.Fatalf("did not expect buttons when quick responses are off")
	}
}

func TestReminderCallbackMarksRespondedAndRefreshesList(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	data, _ := ui.BuildRespondedCallback(f.message.ID)
	f.h.HandleReminderCallback(context.Background(), b, newTestCallbackUpdate(data, 100, 100, 55, ui.PendingHeader+": 1\n..."))

	stored, err := f.store.GetMessage(context.Background(), f.message.ID)
	if err != nil {
		t.Fatalf("GetMessage returned error: %v", err)
	}
	if stored.Status != reminder.StatusResponded || stored.RespondedAt == nil || !stored.RespondedAt.Equal(testNow) {
		t.Fatalf("expected responded message at %v, got %+v", testNow, stored)
	}

	paths := client.requestPaths()
	if len(paths) != 2 || paths[0] != "answerCallbackQuery" || paths[1] != "editMessageText" {
		t.Fatalf("unexpected requests %v", paths)
	}
	if got := client.lastMessageText(t); !strings.Contains(got, "all caught up") {
		t.Fatalf("expected refreshed empty list, got %q", got)
	}
	if got := client.methodField(t, "answerCallbackQuery", "text"); got != "Marked as responded" {
		t.Fatalf("unexpected callback answer %q", got)
	}
}

func TestReminderCallbackLaterOnAlertAppendsStatus(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	data, _ := ui.BuildLaterCallback(f.message.ID)
	f.h.HandleReminderCallback(context.Background(), b, newTestCallbackUpdate(data, 100, 100, 56, "Reply reminder\n\nMessage from Mum"))

	stored, _ := f.store.GetMessage(context.Background(), f.message.ID)
	want := testNow.Add(DefaultSnooze)
	if stored.Status != reminder.StatusSnoozed || stored.SnoozedUntil == nil || !stored.SnoozedUntil.Equal(want) {
		t.Fatalf("expected snooze until %v, got %+v", want, stored)
	}

	got := client.lastMessageText(t)
	if got != "Reply reminder\n\nMessage from Mum\n\nSnoozed until "+ui.FormatDeadline(want) {
		t.Fatalf("unexpected edited text %q", got)
	}
	if got := client.methodField(t, "answerCallbackQuery", "text"); got != "Snoozed until "+ui.FormatDeadline(want) {
		t.Fatalf("unexpected callback answer %q", got)
	}
}

func TestReminderCallbackLaterAfterRespondedKeepsResponse(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)
	alert := "Reply reminder\n\nMessage from Mum"

	done, _ := ui.BuildRespondedCallback(f.message.ID)
	f.h.HandleReminderCallback(context.Background(), b, newTestCallbackUpdate(done, 100, 100, 60, alert))

	// a Later button on an earlier alert for the same message
	client.requests = nil
	later, _ := ui.BuildLaterCallback(f.message.ID)
	f.h.HandleReminderCallback(context.Background(), b, newTestCallbackUpdate(later, 100, 100, 59, alert))

	stored, err := f.store.GetMessage(context.Background(), f.message.ID)
	if err != nil {
		t.Fatalf("GetMessage returned error: %v", err)
	}
	if stored.Status != reminder.StatusResponded || stored.RespondedAt == nil || !stored.RespondedAt.Equal(testNow) {
		t.Fatalf("expected message to stay responded, got %+v", stored)
	}
	if stored.SnoozedUntil != nil {
		t.Fatalf("expected no snooze, got %v", stored.SnoozedUntil)
	}

	paths := client.requestPaths()
	if len(paths) != 2 || paths[0] != "answerCallbackQuery" || paths[1] != "editMessageReplyMarkup" {
		t.Fatalf("unexpected requests %v", paths)
	}
	if got := client.methodField(t, "answerCallbackQuery", "text"); got != "Already handled" {
		t.Fatalf("unexpected callback answer %q", got)
	}
	if markup, _ := client.lastMultipartField(t, "reply_markup"); strings.Contains(markup, "callback_data") {
		t.Fatalf("expected buttons to be removed, got %q", markup)
	}
}

func TestReminderCallbackOnSnoozedMessage(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)
	alert := "Reply reminder\n\nMessage from Mum"

	later, _ := ui.BuildLaterCallback(f.message.ID)
	f.h.HandleReminderCallback(context.Background(), b, newTestCallbackUpdate(later, 100, 100, 61, alert))
	f.h.HandleReminderCallback(context.Background(), b, newTestCallbackUpdate(later, 100, 100, 62, alert))

	stored, _ := f.store.GetMessage(context.Background(), f.message.ID)
	want := testNow.Add(DefaultSnooze)
	if stored.SnoozedUntil == nil || !stored.SnoozedUntil.Equal(want) {
		t.Fatalf("expected snooze to stay at %v, got %+v", want, stored)
	}
	if got := client.methodField(t, "answerCallbackQuery", "text"); got != "Already handled" {
		t.Fatalf("unexpected callback answer %q", got)
	}

	done, _ := ui.BuildRespondedCallback(f.message.ID)
	f.h.HandleReminderCallback(context.Background(), b, newTestCallbackUpdate(done, 100, 100, 61, alert))

	stored, _ = f.store.GetMessage(context.Background(), f.message.ID)
	if stored.Status != reminder.StatusResponded || stored.SnoozedUntil != nil {
		t.Fatalf("expected snoozed message to be marked responded, got %+v", stored)
	}
	if got := client.methodField(t, "answerCallbackQuery", "text"); got != "Marked as responded" {
		t.Fatalf("unexpected callback answer %q", got)
	}
}

func TestReminderCallbackUnknownMessage(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	data, _ := ui.BuildRespondedCallback(f.message.ID + 100)
	f.h.HandleReminderCallback(context.Background(), b, newTestCallbackUpdate(data, 100, 100, 57, ui.PendingHeader))

	paths := client.requestPaths()
	if len(paths) != 1 || paths[0] != "answerCallbackQuery" {
		t.Fatalf("expected only a callback answer, got %v", paths)
	}
	text, _ := client.lastMultipartField(t, "text")
	if text != "This message no longer exists" {
		t.Fatalf("unexpected answer %q", text)
	}
}

func TestSettingsCallbackTogglesDoNotDisturb(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	data, _ := ui.BuildToggleCallback(ui.ToggleDND)
	f.h.HandleSettingsCallback(context.Background(), b, newTestCallbackUpdate(data, 100, 100, 60, "Settings"))

	settings, _ := f.store.GetSettings(context.Background())
	if !settings.DoNotDisturb {
		t.Fatalf("expected do not disturb to be enabled")
	}
	if got := client.lastMessageText(t); !strings.Contains(got, "Do not disturb: on") {
		t.Fatalf("expected refreshed settings, got %q", got)
	}
}

func TestSettingsCallbackSetsTierWindow(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	data, _ := ui.BuildWindowCallback(reminder.PriorityHigh, "12h")
	f.h.HandleSettingsCallback(context.Background(), b, newTestCallbackUpdate(data, 100, 100, 61, "Priority 1"))

	settings, _ := f.store.GetSettings(context.Background())
	if settings.Priority1Time != "12h" {
		t.Fatalf("expected priority 1 window 12h, got %s", settings.Priority1Time)
	}
	if got := client.lastMessageText(t); !strings.Contains(got, "Reminder window: 12 hours") {
		t.Fatalf("expected tier screen, got %q", got)
	}
}

func TestHandleSettingsSendsHome(t *testing.T) {
	f := setup(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	f.h.HandleSettings(context.Background(), b, newTestUpdate("/settings", 100))

	if got := client.lastMessageText(t); !strings.HasPrefix(got, "Settings\n") {
		t.Fatalf("expected settings home, got %q", got)
	}
}

func TestApplyAction(t *testing.T) {
	base := db.DefaultSettings()

	tests := []struct {
		name        string
		action      ui.Action
		wantScreen  ui.Screen
		wantChanged bool
		wantErr     bool
		check       func(db.Settings) bool
	}{
		{name: "home", action: ui.Action{Screen: ui.ScreenHome}, wantScreen: ui.ScreenHome},
		{name: "close", action: ui.Action{Screen: ui.ScreenClose}, wantScreen: ui.ScreenClose},
		{name: "tier", action: ui.Action{Screen: ui.ScreenTier, Priority: "2"}, wantScreen: ui.ScreenTier},
		{
			name:        "toggle sound",
			action:      ui.Action{Screen: ui.ScreenHome, Op: ui.OpToggle, Toggle: ui.ToggleSound},
			wantScreen:  ui.ScreenHome,
			wantChanged: true,
			check:       func(s db.Settings) bool { return !s.SoundAlerts },
		},
		{
			name:        "set window",
			action:      ui.Action{Screen: ui.ScreenTier, Op: ui.OpSetWindow, Priority: "3", Window: "7d"},
			wantScreen:  ui.ScreenTier,
			wantChanged: true,
			check:       func(s db.Settings) bool { return s.Priority3Time == "7d" },
		},
		{
			name:       "same window",
			action:     ui.Action{Screen: ui.ScreenTier, Op: ui.OpSetWindow, Priority: "1", Window: "2h"},
			wantScreen: ui.ScreenTier,
		},
		{name: "reminder action", action: ui.Action{Op: ui.OpLater, MessageID: 1}, wantErr: true},
		{name: "close with op", action: ui.Action{Screen: ui.ScreenClose, Op: ui.OpToggle}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, screen, changed, err := ApplyAction(base, tt.action)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if screen != tt.wantScreen || changed != tt.wantChanged {
				t.Fatalf("got screen %q changed %v, want %q %v", screen, changed, tt.wantScreen, tt.wantChanged)
			}
			if tt.check != nil && !tt.check(got) {
				t.Fatalf("unexpected settings %+v", got)
			}
		})
	}
}

func TestChatFilter(t *testing.T) {
	f := setup(t)
	h := New(f.store, Options{ChatID: 42})

	called := 0
	next := func(context.Context, *bot.Bot, *models.Update) { called++ }
	filtered := h.ChatFilter(next)

	filtered(context.Background(), nil, newTestUpdate("/pending", 7))
	if called != 0 {
		t.Fatalf("expected update from another chat to be dropped")
	}
	filtered(context.Background(), nil, newTestUpdate("/pending", 42))
	filtered(context.Background(), nil, newTestCallbackUpdate("r:done:1", 42, 42, 1, ""))
	if called != 2 {
		t.Fatalf("expected updates from the configured chat to pass, got %d", called)
	}

	open := New(f.store, Options{}).ChatFilter(next)
	open(context.Background(), nil, newTestUpdate("/pending", 7))
	if called != 3 {
		t.Fatalf("expected all chats to pass without a chat id")
	}
}
