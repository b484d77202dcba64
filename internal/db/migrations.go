package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/thatcatcamp/tint/internal/models"
)

// AllMigrations returns all registered migrations in order.
// - 001: Create palettes and settings tables
// - 002: Add is_duo_tone column to palettes
func AllMigrations() []Migration {
	return []Migration{
		migration001Schema(),
		migration002PaletteDuoTone(),
	}
}

// paletteV1 is the palettes table as first released, before duotone
// palettes existed.
type paletteV1 struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"not null;index"`
	LightColors  string    `gorm:"type:text;not null"`
	DarkColors   string    `gorm:"type:text;not null"`
	BorderRadius float64   `gorm:"not null;default:0.5"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (paletteV1) TableName() string {
	return "palettes"
}

func migration001Schema() Migration {
	return Migration{
		Version:     "001",
		Description: "Create palettes and settings tables",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&paletteV1{}, &models.Setting{})
		},
		Down: func(tx *gorm.DB) error {
			for _, table := range []string{"settings", "palettes"} {
				if tx.Migrator().HasTable(table) {
					if err := tx.Migrator().DropTable(table); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

// migration002PaletteDuoTone adds the duotone flag. Rows saved before it
// existed were single-seed palettes.
func migration002PaletteDuoTone() Migration {
	return Migration{
		Version:     "002",
		Description: "Add is_duo_tone column to palettes",
		Up: func(tx *gorm.DB) error {
			if !tx.Migrator().HasColumn(&models.Palette{}, "is_duo_tone") {
				if err := tx.Migrator().AddColumn(&models.Palette{}, "IsDuoTone"); err != nil {
					return err
				}
			}
			return tx.Exec("UPDATE palettes SET is_duo_tone = ? WHERE is_duo_tone IS NULL", false).Error
		},
		Down: func(tx *gorm.DB) error {
			if tx.Migrator().HasColumn(&models.Palette{}, "is_duo_tone") {
				return tx.Migrator().DropColumn(&models.Palette{}, "IsDuoTone")
			}
			return nil
		},
	}
}
