package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model

	ProjectID uint  `gorm:"not null;index"`
	OrderID   *uint `gorm:"index"` // nil = unclassified (no vendor assigned yet)
	Quantity  int   `gorm:"not null"`

	// PartNumber is the vendor's SKU, unrelated to Part.PartNumber.
	PartNumber  string
	Description string          `gorm:"not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notes       string

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Order   *Order  `gorm:"foreignKey:OrderID"`
}
