package db

import (
	"context"
	"time"

	"github.com/smith3v/reply-reminder/pkg/reminder"
	"gorm.io/datatypes"
)

// ContactPatch carries a partial contact update. Nil fields are left alone;
// empty name, priority or window strings also keep the stored value, and a
// non-nil empty nickname clears it.
type ContactPatch struct {
	Name         *string
	Nickname     *string
	Priority     *reminder.Priority
	ReminderTime *reminder.Window
	Apps         *[]string
}

func (s *Store) ListContacts(ctx context.Context) ([]Contact, error) {
	var contacts []Contact
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *Store) GetContact(ctx context.Context, id uint) (Contact, error) {
	var contact Contact
	if err := s.db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return Contact{}, notFound(err)
	}
	return contact, nil
}

func (s *Store) CreateContact(ctx context.Context, contact Contact) (Contact, error) {
	contact.ID = 0
	contact.Nickname = normalizeNickname(contact.Nickname)
	if contact.Apps == nil {
		contact.Apps = datatypes.JSONSlice[string]{}
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return Contact{}, err
	}
	return contact, nil
}

func (s *Store) UpdateContact(ctx context.Context, id uint, patch ContactPatch) (Contact, error) {
	contact, err := s.GetContact(ctx, id)
	if err != nil {
		return Contact{}, err
	}

	if patch.Name != nil && *patch.Name != "" {
		contact.Name = *patch.Name
	}
	if patch.Nickname != nil {
		contact.Nickname = normalizeNickname(patch.Nickname)
	}
	if patch.Priority != nil && *patch.Priority != "" {
		contact.Priority = *patch.Priority
	}
	if patch.ReminderTime != nil && *patch.ReminderTime != "" {
		contact.ReminderTime = *patch.ReminderTime
	}
	if patch.Apps != nil {
		contact.Apps = append(datatypes.JSONSlice[string]{}, (*patch.Apps)...)
	}

	if err := s.db.WithContext(ctx).Save(&contact).Error; err != nil {
		return Contact{}, err
	}
	return contact, nil
}

// DeleteContact removes the contact only; its messages stay behind.
func (s *Store) DeleteContact(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Contact{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeNickname(nickname *string) *string {
	if nickname == nil || *nickname == "" {
		return nil
	}
	value := *nickname
	return &value
}
