package models

import (
	"time"
)

// Palette is a saved, named theme. The color maps are stored as JSON text
// so rows written by older versions keep their shape until they are read.
type Palette struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"not null;index"`
	LightColors  string    `gorm:"type:text;not null"` // JSON object of token values
	DarkColors   string    `gorm:"type:text;not null"` // JSON object of token values
	BorderRadius float64   `gorm:"not null;default:0.5"` // rem
	IsDuoTone    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// Setting is a key/value row for small persisted blobs
type Setting struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName overrides for consistent naming
func (Palette) TableName() string {
	return "palettes"
}

func (Setting) TableName() string {
	return "settings"
}
