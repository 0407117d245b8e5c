package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smith3v/reply-reminder/pkg/reminder"
)

var ErrInvalidTransition = errors.New("invalid message status transition")

// MessageUpdate is a status transition with optional timestamps.
type MessageUpdate struct {
	Status       reminder.Status
	RespondedAt  *time.Time
	SnoozedUntil *time.Time
}

// Normalize fills in and clears timestamps so that respondedAt exists only
// for responded messages and snoozedUntil only for snoozed ones. A timestamp
// supplied for the wrong status is rejected.
func (u MessageUpdate) Normalize(now time.Time, defaultSnooze time.Duration) (MessageUpdate, error) {
	if _, err := reminder.ParseStatus(string(u.Status)); err != nil {
		return u, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	if u.RespondedAt != nil && u.Status != reminder.StatusResponded {
		return u, fmt.Errorf("%w: respondedAt requires status %q", ErrInvalidTransition, reminder.StatusResponded)
	}
	if u.SnoozedUntil != nil && u.Status != reminder.StatusSnoozed {
		return u, fmt.Errorf("%w: snoozedUntil requires status %q", ErrInvalidTransition, reminder.StatusSnoozed)
	}

	switch u.Status {
	case reminder.StatusResponded:
		if u.RespondedAt == nil {
			at := now
			u.RespondedAt = &at
		}
	case reminder.StatusSnoozed:
		if u.SnoozedUntil == nil {
			until := now.Add(defaultSnooze)
			u.SnoozedUntil = &until
		}
	}
	return u, nil
}

func (s *Store) ListMessages(ctx context.Context) ([]Message, error) {
	var messages []Message
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Store) ListMessagesByContact(ctx context.Context, contactID uint) ([]Message, error) {
	var messages []Message
	if err := s.db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListPendingMessages evaluates the pending filter against every stored
// message at the given instant.
func (s *Store) ListPendingMessages(ctx context.Context, now time.Time) ([]Message, error) {
	messages, err := s.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	return reminder.FilterPending(messages, now, messageState), nil
}

func (s *Store) GetMessage(ctx context.Context, id uint) (Message, error) {
	var message Message
	if err := s.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return Message{}, notFound(err)
	}
	return message, nil
}

// CreateMessage stores a newly received message. Response and snooze
// timestamps always start empty.
func (s *Store) CreateMessage(ctx context.Context, message Message) (Message, error) {
	message.ID = 0
	message.RespondedAt = nil
	message.SnoozedUntil = nil
	message.ReceivedAt = message.ReceivedAt.UTC()
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return Message{}, err
	}
	return message, nil
}

// UpdateMessage applies an already normalized transition.
func (s *Store) UpdateMessage(ctx context.Context, id uint, update MessageUpdate) (Message, error) {
	message, err := s.GetMessage(ctx, id)
	if err != nil {
		return Message{}, err
	}

	message.Status = update.Status
	message.RespondedAt = utcPtr(update.RespondedAt)
	message.SnoozedUntil = utcPtr(update.SnoozedUntil)

	if err := s.db.WithContext(ctx).Save(&message).Error; err != nil {
		return Message{}, err
	}
	return message, nil
}

func (s *Store) DeleteMessage(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC()
	return &value
}
