package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Name             string `gorm:"not null"`
	PartNumberPrefix string `gorm:"not null"` // Uppercased on write, e.g. "CHZ"
	Hidden           bool   `gorm:"not null;default:false"`

	// Relationships
	Parts      []Part      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Orders     []Order     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	OrderItems []OrderItem `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
