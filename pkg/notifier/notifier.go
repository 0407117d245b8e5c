// Package notifier polls the store for pending messages that are close to
// their deadline and alerts the user about them.
package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/smith3v/reply-reminder/pkg/agenda"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/logger"
	"github.com/smith3v/reply-reminder/pkg/metrics"
	"github.com/smith3v/reply-reminder/pkg/ui"
)

const (
	DefaultInterval      = time.Minute
	DefaultThreshold     = 90
	DefaultRenotifyAfter = time.Hour
)

type Store interface {
	agenda.Source
	GetSettings(ctx context.Context) (db.Settings, error)
}

type Notification struct {
	MessageID    uint
	Title        string
	Text         string
	Silent       bool
	QuickActions bool
}

type Sender interface {
	Send(ctx context.Context, n Notification) error
}

type Options struct {
	Threshold     int
	RenotifyAfter time.Duration
	Metrics       *metrics.Metrics
}

type Notifier struct {
	store         Store
	sender        Sender
	threshold     int
	renotifyAfter time.Duration
	metrics       *metrics.Metrics

	mu       sync.Mutex
	notified map[uint]time.Time
}

func New(store Store, sender Sender, opts Options) *Notifier {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.RenotifyAfter <= 0 {
		opts.RenotifyAfter = DefaultRenotifyAfter
	}
	return &Notifier{
		store:         store,
		sender:        sender,
		threshold:     opts.Threshold,
		renotifyAfter: opts.RenotifyAfter,
		metrics:       opts.Metrics,
		notified:      make(map[uint]time.Time),
	}
}

// Start runs a check every interval until ctx is cancelled.
func (n *Notifier) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := n.Check(ctx, now.UTC()); err != nil {
				logger.Error("reminder check failed", "error", err)
			}
		}
	}
}

// Check runs one pass and returns how many alerts were sent.
func (n *Notifier) Check(ctx context.Context, now time.Time) (int, error) {
	settings, err := n.store.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	items, err := agenda.Pending(ctx, n.store, now)
	if err != nil {
		return 0, err
	}

	overdue := 0
	for _, item := range items {
		if item.Overdue {
			overdue++
		}
	}
	n.metrics.SetPending(len(items), overdue)
	n.forgetResolved(items)

	if !settings.PushNotifications || settings.DoNotDisturb {
		logger.Debug("notifications suppressed",
			"push", settings.PushNotifications,
			"do_not_disturb", settings.DoNotDisturb)
		return 0, nil
	}

	sent := 0
	for _, item := range items {
		if !settings.AppEnabled(item.Message.Platform) {
			continue
		}
		if item.Progress <= n.threshold {
			continue
		}
		if !n.due(item.Message.ID, now) {
			n.metrics.RecordNotification(metrics.NotificationSkipped)
			continue
		}

		title, text := ui.RenderAlert(item)
		err := n.sender.Send(ctx, Notification{
			MessageID:    item.Message.ID,
			Title:        title,
			Text:         text,
			Silent:       !settings.SoundAlerts,
			QuickActions: settings.QuickResponses,
		})
		if err != nil {
			n.metrics.RecordNotification(metrics.NotificationFailed)
			logger.Error("failed to send reminder", "message_id", item.Message.ID, "error", err)
			continue
		}
		n.markNotified(item.Message.ID, now)
		n.metrics.RecordNotification(metrics.NotificationSent)
		sent++
	}
	return sent, nil
}

func (n *Notifier) due(messageID uint, now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	last, ok := n.notified[messageID]
	return !ok || now.Sub(last) >= n.renotifyAfter
}

func (n *Notifier) markNotified(messageID uint, now time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified[messageID] = now
}

// forgetResolved drops alert history for messages that are no longer pending.
func (n *Notifier) forgetResolved(items []agenda.Item) {
	pending := make(map[uint]struct{}, len(items))
	for _, item := range items {
		pending[item.Message.ID] = struct{}{}
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for id := range n.notified {
		if _, ok := pending[id]; !ok {
			delete(n.notified, id)
		}
	}
}
