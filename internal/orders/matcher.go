package orders

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/types"
)

// MaxItemQuantity is the upper bound on a line item's quantity.
const MaxItemQuantity = 1000

var (
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and 1000")
	ErrDescriptionEmpty   = errors.New("description is required")
	ErrNegativeUnitCost   = errors.New("unit cost cannot be negative")
	ErrOrderHasItems      = errors.New("order has line items and cannot be deleted")
	ErrInvalidOrderStatus = errors.New("status must be \"open\", \"ordered\" or \"received\"")
)

// NewItem carries the user-supplied fields for line item creation. An
// empty VendorName leaves the item unclassified.
type NewItem struct {
	ProjectID   uint
	VendorName  string
	Quantity    int
	PartNumber  string
	Description string
	UnitCost    decimal.Decimal
	Notes       string
}

// CreateItem inserts a line item, routing it to the open order for its
// vendor. The order lookup (or creation) and the item insert run in one
// transaction so a failed insert never leaves behind a stray order.
func CreateItem(db *gorm.DB, req NewItem) (models.OrderItem, error) {
	if req.Quantity < 1 || req.Quantity > MaxItemQuantity {
		return models.OrderItem{}, ErrInvalidQuantity
	}

	if strings.TrimSpace(req.Description) == "" {
		return models.OrderItem{}, ErrDescriptionEmpty
	}

	if req.UnitCost.IsNegative() {
		return models.OrderItem{}, ErrNegativeUnitCost
	}

	var item models.OrderItem

	err := db.Transaction(func(tx *gorm.DB) error {
		orderID, err := resolveOrder(tx, req.ProjectID, req.VendorName)

		if err != nil {
			return err
		}

		item = models.OrderItem{
			ProjectID:   req.ProjectID,
			OrderID:     orderID,
			Quantity:    req.Quantity,
			PartNumber:  req.PartNumber,
			Description: strings.TrimSpace(req.Description),
			UnitCost:    req.UnitCost,
			Notes:       req.Notes,
		}

		return tx.Create(&item).Error
	})

	return item, err
}

// ReassignItemVendor reroutes an existing item after its vendor field
// changes. The item simply detaches from its previous order; an order
// left empty stays behind untouched.
func ReassignItemVendor(db *gorm.DB, item *models.OrderItem, vendorName string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		orderID, err := resolveOrder(tx, item.ProjectID, vendorName)

		if err != nil {
			return err
		}

		item.OrderID = orderID

		return tx.Save(item).Error
	})
}

// resolveOrder returns the order a vendor's items should attach to: the
// project's open order for that vendor, or a freshly created one. An
// empty vendor name resolves to nil (the unclassified bucket). Orders
// in "ordered" or "received" status never receive new items, so a
// vendor accumulates historical orders but has at most one live open
// bucket.
func resolveOrder(tx *gorm.DB, projectID uint, vendorName string) (*uint, error) {
	vendorName = strings.TrimSpace(vendorName)

	if vendorName == "" {
		return nil, nil
	}

	var order models.Order

	err := tx.Where("project_id = ? AND vendor_name = ? AND status = ?",
		projectID, vendorName, types.OrderStatusOpen).First(&order).Error

	if err == nil {
		return &order.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order = models.Order{
		ProjectID:  projectID,
		VendorName: vendorName,
		Status:     types.OrderStatusOpen,
	}

	if err := tx.Create(&order).Error; err != nil {
		return nil, err
	}

	return &order.ID, nil
}

// ValidOrderStatus reports whether s is one of the fixed order
// statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case types.OrderStatusOpen, types.OrderStatusOrdered, types.OrderStatusReceived:
		return true
	}
	return false
}

// DeleteOrder removes an order with no remaining line items.
func DeleteOrder(db *gorm.DB, order *models.Order) error {
	var count int64

	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return ErrOrderHasItems
	}

	return db.Delete(order).Error
}
