package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model

	ProjectID    uint   `gorm:"not null;index"`
	VendorName   string `gorm:"not null;index"`
	Status       string `gorm:"not null;default:open"` // "open", "ordered", "received"
	OrderedAt    *datatypes.Date
	PaidForBy    string
	TaxCost      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notes        string
	Reimbursed   bool `gorm:"not null;default:false"`

	// Relationships
	Project    Project     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID"`
}

// Total is the order's item subtotal plus tax and shipping. Items must
// be preloaded or passed from a separate query.
func (o *Order) Total(items []OrderItem) decimal.Decimal {
	total := o.TaxCost.Add(o.ShippingCost)
	for _, item := range items {
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
