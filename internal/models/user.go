package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Permission   string `gorm:"not null;default:readonly"` // "readonly", "editor", "admin"
	Enabled      bool   `gorm:"not null;default:false"`
}
