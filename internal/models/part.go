package models

import (
	"fmt"

	"gorm.io/gorm"
)

type Part struct {
	gorm.Model

	ProjectID    uint   `gorm:"not null;index"`
	PartNumber   uint   `gorm:"not null;index:idx_parts_project_type_number"`
	Type         string `gorm:"not null;index:idx_parts_project_type_number"` // "part" or "assembly"
	Name         string `gorm:"not null"`
	ParentPartID *uint  `gorm:"index"`
	Status       string `gorm:"not null;default:designing"`
	Notes        string

	// Material tracking fields are advisory and never validated.
	SourceMaterial string
	HaveMaterial   bool
	Quantity       string
	CutLength      string

	Priority       int  `gorm:"not null;default:1"` // 0 = high, 1 = normal, 2 = low
	DrawingCreated bool `gorm:"not null;default:false"`

	// Relationships
	Project    Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ParentPart *Part   `gorm:"foreignKey:ParentPartID"`
}

// FullPartNumber renders the display identifier, e.g. "CHZ-A-0100" for
// assembly 100 in a project with prefix CHZ. Not guaranteed globally
// unique; children of different parents can share a number.
func (p *Part) FullPartNumber(project Project) string {
	typeLetter := "P"
	if p.Type == "assembly" {
		typeLetter = "A"
	}
	return fmt.Sprintf("%s-%s-%04d", project.PartNumberPrefix, typeLetter, p.PartNumber)
}
