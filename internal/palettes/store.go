// SPDX-License-Identifier: MIT

// Package palettes persists named palettes and handles their import and
// export formats.
package palettes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/thatcatcamp/tint/internal/models"
	"github.com/thatcatcamp/tint/internal/themes"
)

// DefaultName is the name of the seeded palette that cannot be deleted or
// saved over by name.
const DefaultName = "Default Palette"

// InitializedKey is the settings key recording that seeding has run.
const InitializedKey = "palettes.initialized"

const (
	MinRadius = 0.0
	MaxRadius = 2.0
)

var (
	ErrNotFound        = errors.New("palette not found")
	ErrProtectedName   = errors.New("the name \"Default Palette\" is reserved")
	ErrProtectedDelete = errors.New("the default palette cannot be deleted")
	ErrLastPalette     = errors.New("the last remaining palette cannot be deleted")
	ErrInvalidRadius   = errors.New("border radius must be between 0 and 2")
	ErrEmptyName       = errors.New("palette name is required")
)

// Palette is a saved palette with its color maps decoded.
type Palette struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	CreatedAt    time.Time       `json:"createdAt"`
	LightColors  themes.TokenMap `json:"lightColors"`
	DarkColors   themes.TokenMap `json:"darkColors"`
	BorderRadius float64         `json:"borderRadius"`
	IsDuoTone    bool            `json:"isDuoTone"`
}

// IsDefault reports whether p is the protected default palette.
func (p *Palette) IsDefault() bool {
	return p.Name == DefaultName
}

// SaveInput is the full content of a palette being written.
type SaveInput struct {
	Name         string
	LightColors  themes.TokenMap
	DarkColors   themes.TokenMap
	BorderRadius float64
	IsDuoTone    bool
}

// Store is the palette repository.
type Store struct {
	db       *gorm.DB
	log      zerolog.Logger
	settings *Settings

	mu          sync.Mutex
	initialized bool
}

// NewStore returns a store over a migrated database.
func NewStore(db *gorm.DB, log zerolog.Logger) *Store {
	return &Store{
		db:       db,
		log:      log.With().Str("component", "palettes").Logger(),
		settings: NewSettings(db),
	}
}

// Settings returns the key/value repository sharing the store's database.
func (s *Store) Settings() *Settings {
	return s.settings
}

// Save writes a palette. With existingID it replaces every field of that
// record and resets its creation time; otherwise it inserts a new one.
// Overwriting the default palette keeps its name.
func (s *Store) Save(ctx context.Context, in SaveInput, existingID *uint) (uint, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, ErrEmptyName
	}
	if in.Name == DefaultName {
		return 0, ErrProtectedName
	}
	return s.write(ctx, in, existingID)
}

func (s *Store) write(ctx context.Context, in SaveInput, existingID *uint) (uint, error) {
	if math.IsNaN(in.BorderRadius) || in.BorderRadius < MinRadius || in.BorderRadius > MaxRadius {
		return 0, ErrInvalidRadius
	}

	light, err := json.Marshal(in.LightColors.Clone())
	if err != nil {
		return 0, fmt.Errorf("failed to encode light colors: %w", err)
	}
	dark, err := json.Marshal(in.DarkColors.Clone())
	if err != nil {
		return 0, fmt.Errorf("failed to encode dark colors: %w", err)
	}

	row := models.Palette{
		Name:         in.Name,
		LightColors:  string(light),
		DarkColors:   string(dark),
		BorderRadius: in.BorderRadius,
		IsDuoTone:    in.IsDuoTone,
		CreatedAt:    time.Now(),
	}

	if existingID == nil {
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return 0, fmt.Errorf("failed to create palette: %w", err)
		}
		s.log.Info().Uint("id", row.ID).Str("name", row.Name).Msg("palette created")
		return row.ID, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Palette
		if err := tx.First(&existing, *existingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		row.ID = existing.ID
		if existing.Name == DefaultName {
			row.Name = DefaultName
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to update palette: %w", err)
	}
	s.log.Info().Uint("id", row.ID).Str("name", row.Name).Msg("palette overwritten")
	return row.ID, nil
}

// List returns every palette, newest first.
func (s *Store) List(ctx context.Context) ([]Palette, error) {
	var rows []models.Palette
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list palettes: %w", err)
	}

	out := make([]Palette, 0, len(rows))
	for i := range rows {
		p, err := s.decode(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// Get returns one palette, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id uint) (*Palette, error) {
	var row models.Palette
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get palette: %w", err)
	}
	return s.decode(&row)
}

// Count returns the number of saved palettes.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Palette{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count palettes: %w", err)
	}
	return n, nil
}

// CheckDelete reports why id may not be deleted, without deleting it.
func (s *Store) CheckDelete(ctx context.Context, id uint) (*Palette, error) {
	return s.checkDelete(s.db.WithContext(ctx), id)
}

func (s *Store) checkDelete(tx *gorm.DB, id uint) (*Palette, error) {
	var row models.Palette
	if err := tx.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get palette: %w", err)
	}
	if row.Name == DefaultName {
		return nil, ErrProtectedDelete
	}
	var n int64
	if err := tx.Model(&models.Palette{}).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to count palettes: %w", err)
	}
	if n <= 1 {
		return nil, ErrLastPalette
	}
	return s.decode(&row)
}

// Delete removes a palette. The default palette and the last remaining
// palette are never removed.
func (s *Store) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.checkDelete(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.Palette{}, id).Error
	})
	if err != nil {
		if isPolicy(err) || errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete palette: %w", err)
	}
	s.log.Info().Uint("id", id).Msg("palette deleted")
	return nil
}

// EnsureDefault seeds the default palette when the store is empty. It runs
// at most once per store and once per database.
func (s *Store) EnsureDefault(ctx context.Context, light, dark themes.TokenMap, radius float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return false, nil
	}

	done, err := s.settings.Get(ctx, InitializedKey)
	if err != nil && !errors.Is(err, ErrSettingNotFound) {
		return false, err
	}
	if done == "true" {
		s.initialized = true
		return false, nil
	}

	n, err := s.Count(ctx)
	if err != nil {
		return false, err
	}

	seeded := false
	if n == 0 {
		id, err := s.write(ctx, SaveInput{
			Name:         DefaultName,
			LightColors:  light,
			DarkColors:   dark,
			BorderRadius: radius,
		}, nil)
		if err != nil {
			return false, err
		}
		s.log.Info().Uint("id", id).Msg("seeded default palette")
		seeded = true
	}

	if err := s.settings.Put(ctx, InitializedKey, "true"); err != nil {
		return seeded, err
	}
	s.initialized = true
	return seeded, nil
}

func (s *Store) decode(row *models.Palette) (*Palette, error) {
	light, lightShape, err := Normalize([]byte(row.LightColors))
	if err != nil {
		return nil, fmt.Errorf("palette %d light colors: %w", row.ID, err)
	}
	dark, darkShape, err := Normalize([]byte(row.DarkColors))
	if err != nil {
		return nil, fmt.Errorf("palette %d dark colors: %w", row.ID, err)
	}
	if lightShape != ShapeCurrent || darkShape != ShapeCurrent {
		s.log.Debug().
			Uint("id", row.ID).
			Str("light", lightShape.String()).
			Str("dark", darkShape.String()).
			Msg("normalized legacy palette colors")
	}
	return &Palette{
		ID:           row.ID,
		Name:         row.Name,
		CreatedAt:    row.CreatedAt,
		LightColors:  light,
		DarkColors:   dark,
		BorderRadius: row.BorderRadius,
		IsDuoTone:    row.IsDuoTone,
	}, nil
}

// IsPolicyError reports whether err is a rule violation rather than a
// storage failure.
func IsPolicyError(err error) bool {
	return isPolicy(err)
}

func isPolicy(err error) bool {
	return errors.Is(err, ErrProtectedName) ||
		errors.Is(err, ErrProtectedDelete) ||
		errors.Is(err, ErrLastPalette)
}
