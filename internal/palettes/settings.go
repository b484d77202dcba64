package palettes

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/thatcatcamp/tint/internal/models"
)

// ErrSettingNotFound is returned by Settings.Get for an unknown key.
var ErrSettingNotFound = errors.New("setting not found")

// Settings is a key/value repository over the settings table.
type Settings struct {
	db *gorm.DB
}

// NewSettings returns a settings repository.
func NewSettings(db *gorm.DB) *Settings {
	return &Settings{db: db}
}

// Get returns the value stored under key.
func (s *Settings) Get(ctx context.Context, key string) (string, error) {
	var row models.Setting
	if err := s.db.WithContext(ctx).Where(&models.Setting{Key: key}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return row.Value, nil
}

// Put stores value under key, replacing any previous value.
func (s *Settings) Put(ctx context.Context, key, value string) error {
	if err := s.db.WithContext(ctx).Save(&models.Setting{Key: key, Value: value}).Error; err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *Settings) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where(&models.Setting{Key: key}).Delete(&models.Setting{}).Error; err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}
