package db

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

func (s *Store) GetSettings(ctx context.Context) (Settings, error) {
	var settings Settings
	if err := s.db.WithContext(ctx).First(&settings, SettingsID).Error; err != nil {
		return Settings{}, notFound(err)
	}
	return settings, nil
}

// ReplaceSettings overwrites the settings record as a whole.
func (s *Store) ReplaceSettings(ctx context.Context, settings Settings) (Settings, error) {
	settings.ID = SettingsID
	if settings.EnabledApps == nil {
		settings.EnabledApps = datatypes.JSONSlice[string]{}
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&settings).Error; err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// EnsureSettings seeds the default settings when none are stored yet.
func (s *Store) EnsureSettings(ctx context.Context) (Settings, error) {
	settings, err := s.GetSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Settings{}, err
	}
	return s.ReplaceSettings(ctx, DefaultSettings())
}
