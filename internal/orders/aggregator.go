package orders

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/types"
)

// UnknownPurchaser buckets committed orders with no recorded purchaser.
const UnknownPurchaser = "Unknown"

type OrderSummary struct {
	ID         uint            `json:"id"`
	VendorName string          `json:"vendor_name"`
	Status     string          `json:"status"`
	OrderedAt  *string         `json:"ordered_at"`
	PaidForBy  string          `json:"paid_for_by"`
	Reimbursed bool            `json:"reimbursed"`
	Total      decimal.Decimal `json:"total"`
}

type VendorStats struct {
	Orders    []OrderSummary  `json:"orders"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

type PurchaserStats struct {
	Reimbursed  decimal.Decimal `json:"reimbursed"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type ProjectStats struct {
	ByVendor    map[string]*VendorStats    `json:"byVendor"`
	ByPurchaser map[string]*PurchaserStats `json:"byPurchaser"`
}

// Stats computes the project's cost rollups over committed orders
// (status "ordered" or "received"; open orders are still accumulating
// items and are excluded). Each order's total is its item quantities
// times unit costs, plus tax and shipping. Recomputed from scratch on
// every call.
func Stats(db *gorm.DB, projectID uint) (ProjectStats, error) {
	stats := ProjectStats{
		ByVendor:    make(map[string]*VendorStats),
		ByPurchaser: make(map[string]*PurchaserStats),
	}

	var committed []models.Order

	err := db.Preload("OrderItems").
		Where("project_id = ? AND status <> ?", projectID, types.OrderStatusOpen).
		Order("vendor_name, id").
		Find(&committed).Error

	if err != nil {
		return stats, err
	}

	for _, order := range committed {
		total := order.Total(order.OrderItems)

		vendor := stats.ByVendor[order.VendorName]
		if vendor == nil {
			vendor = &VendorStats{}
			stats.ByVendor[order.VendorName] = vendor
		}
		vendor.Orders = append(vendor.Orders, OrderSummary{
			ID:         order.ID,
			VendorName: order.VendorName,
			Status:     order.Status,
			OrderedAt:  FormatOrderDate(order.OrderedAt),
			PaidForBy:  order.PaidForBy,
			Reimbursed: order.Reimbursed,
			Total:      total,
		})
		vendor.TotalCost = vendor.TotalCost.Add(total)

		purchaserName := order.PaidForBy
		if purchaserName == "" {
			purchaserName = UnknownPurchaser
		}

		purchaser := stats.ByPurchaser[purchaserName]
		if purchaser == nil {
			purchaser = &PurchaserStats{}
			stats.ByPurchaser[purchaserName] = purchaser
		}
		if order.Reimbursed {
			purchaser.Reimbursed = purchaser.Reimbursed.Add(total)
		} else {
			purchaser.Outstanding = purchaser.Outstanding.Add(total)
		}
	}

	return stats, nil
}

// FormatOrderDate renders a stored order date as YYYY-MM-DD for
// responses, or nil when the order has no date yet.
func FormatOrderDate(date *datatypes.Date) *string {
	if date == nil {
		return nil
	}

	formatted := time.Time(*date).Format("2006-01-02")

	return &formatted
}
