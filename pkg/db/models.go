package db

import (
	"time"

	"github.com/smith3v/reply-reminder/pkg/reminder"
	"gorm.io/datatypes"
)

type Contact struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	Name         string                      `gorm:"not null" json:"name"`
	Nickname     *string                     `json:"nickname"`
	Priority     reminder.Priority           `gorm:"not null;index" json:"priority"`
	ReminderTime reminder.Window             `gorm:"not null" json:"reminderTime"`
	Apps         datatypes.JSONSlice[string] `gorm:"not null" json:"apps"`
	CreatedAt    time.Time                   `gorm:"not null" json:"createdAt"`
}

type Message struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ContactID    uint            `gorm:"not null;index" json:"contactId"` // not a foreign key; contacts may be deleted under it
	Content      string          `gorm:"not null" json:"content"`
	Platform     string          `gorm:"not null" json:"platform"`
	Status       reminder.Status `gorm:"not null;index" json:"status"`
	ReceivedAt   time.Time       `gorm:"not null" json:"receivedAt"`
	RespondedAt  *time.Time      `json:"respondedAt"`
	SnoozedUntil *time.Time      `json:"snoozedUntil"`
}

func (m Message) IsPending(now time.Time) bool {
	return reminder.IsPending(m.Status, m.SnoozedUntil, now)
}

// Progress is the reminder progress of the message against the contact's window.
func (m Message) Progress(contact Contact, now time.Time) int {
	return reminder.Progress(m.ReceivedAt, contact.ReminderTime, now)
}

func messageState(m Message) (reminder.Status, *time.Time) {
	return m.Status, m.SnoozedUntil
}

// Settings is the single global settings record.
type Settings struct {
	ID                   uint                        `gorm:"primaryKey" json:"id"`
	Priority1Time        reminder.Window             `gorm:"not null" json:"priority1Time"`
	Priority1Description string                      `gorm:"not null" json:"priority1Description"`
	Priority2Time        reminder.Window             `gorm:"not null" json:"priority2Time"`
	Priority2Description string                      `gorm:"not null" json:"priority2Description"`
	Priority3Time        reminder.Window             `gorm:"not null" json:"priority3Time"`
	Priority3Description string                      `gorm:"not null" json:"priority3Description"`
	EnabledApps          datatypes.JSONSlice[string] `gorm:"not null" json:"enabledApps"`
	PushNotifications    bool                        `gorm:"not null" json:"pushNotifications"`
	SoundAlerts          bool                        `gorm:"not null" json:"soundAlerts"`
	QuickResponses       bool                        `gorm:"not null" json:"quickResponses"`
	DoNotDisturb         bool                        `gorm:"not null" json:"doNotDisturb"`
}

func (Settings) TableName() string {
	return "settings"
}

const SettingsID = 1

// DefaultPlatforms are the messaging platforms known to the app.
var DefaultPlatforms = []string{"Messages", "WhatsApp", "Messenger", "Instagram", "Snapchat"}

func DefaultSettings() Settings {
	return Settings{
		ID:                   SettingsID,
		Priority1Time:        "2h",
		Priority1Description: "Family & Best Friends",
		Priority2Time:        "1d",
		Priority2Description: "Friends & Relatives",
		Priority3Time:        "3d",
		Priority3Description: "Acquaintances",
		EnabledApps:          append(datatypes.JSONSlice[string]{}, DefaultPlatforms...),
		PushNotifications:    true,
		SoundAlerts:          true,
		QuickResponses:       true,
		DoNotDisturb:         false,
	}
}

// WindowFor returns the default reminder window configured for a tier.
func (s Settings) WindowFor(priority reminder.Priority) (reminder.Window, bool) {
	switch priority {
	case reminder.PriorityHigh:
		return s.Priority1Time, true
	case reminder.PriorityMedium:
		return s.Priority2Time, true
	case reminder.PriorityLow:
		return s.Priority3Time, true
	default:
		return "", false
	}
}

func (s Settings) AppEnabled(platform string) bool {
	if len(s.EnabledApps) == 0 {
		return true
	}
	for _, app := range s.EnabledApps {
		if app == platform {
			return true
		}
	}
	return false
}
