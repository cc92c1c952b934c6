package models

import "gorm.io/gorm"

// Settings is a single-row table; GetSettings creates the row on first
// access so callers never see a missing record.
type Settings struct {
	gorm.Model

	HideMaterialFields bool `gorm:"not null;default:false"`
}

func GetSettings(db *gorm.DB) (Settings, error) {
	var settings Settings

	err := db.FirstOrCreate(&settings, Settings{}).Error

	return settings, err
}
