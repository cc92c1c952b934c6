package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cheesy-parts/cheesyparts/db"
	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/orders"
	"github.com/cheesy-parts/cheesyparts/internal/utils"
)

// Quantity has no binding tag so an explicit zero reaches the range
// check and gets the same error message as any other bad quantity.
type CreateOrderItemRequest struct {
	VendorName  string          `json:"vendor_name"`
	Quantity    int             `json:"quantity"`
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description" binding:"required"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Notes       string          `json:"notes"`
}

type UpdateOrderItemRequest struct {
	VendorName  string          `json:"vendor_name"`
	Quantity    int             `json:"quantity"`
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description" binding:"required"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Notes       string          `json:"notes"`
}

type OrderItemResponse struct {
	ID          uint            `json:"id"`
	ProjectID   uint            `json:"project_id"`
	OrderID     *uint           `json:"order_id"`
	VendorName  string          `json:"vendor_name"`
	Quantity    int             `json:"quantity"`
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Notes       string          `json:"notes"`
}

func orderItemResponse(item models.OrderItem, order *models.Order) OrderItemResponse {
	vendorName := ""
	if order != nil {
		vendorName = order.VendorName
	}

	return OrderItemResponse{
		ID:          item.ID,
		ProjectID:   item.ProjectID,
		OrderID:     item.OrderID,
		VendorName:  vendorName,
		Quantity:    item.Quantity,
		PartNumber:  item.PartNumber,
		Description: item.Description,
		UnitCost:    item.UnitCost,
		TotalCost:   item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))),
		Notes:       item.Notes,
	}
}

// CreateOrderItem records a line item and routes it to the vendor's
// open order, provisioning one when none exists. Items without a
// vendor land in the unclassified bucket.
func CreateOrderItem(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreateOrderItemRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	item, err := orders.CreateItem(db.DB, orders.NewItem{
		ProjectID:   project.ID,
		VendorName:  req.VendorName,
		Quantity:    req.Quantity,
		PartNumber:  req.PartNumber,
		Description: req.Description,
		UnitCost:    req.UnitCost,
		Notes:       req.Notes,
	})

	if err != nil {
		if errors.Is(err, orders.ErrInvalidQuantity) ||
			errors.Is(err, orders.ErrDescriptionEmpty) ||
			errors.Is(err, orders.ErrNegativeUnitCost) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order item"})
		}
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(project.ID), 10), "order_item_created")

	ctx.JSON(http.StatusCreated, orderItemResponse(item, loadItemOrder(item)))
}

// ListOrderItems returns a project's line items. Pass unclassified=1
// to see only items not yet assigned to a vendor.
func ListOrderItems(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := db.DB.Preload("Order").Where("project_id = ?", projectID)

	if ctx.Query("unclassified") != "" {
		query = query.Where("order_id IS NULL")
	}

	var items []models.OrderItem

	if err := query.Order("id").Find(&items).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order items"})
		return
	}

	response := make([]OrderItemResponse, 0, len(items))

	for _, item := range items {
		response = append(response, orderItemResponse(item, item.Order))
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateOrderItem edits a line item. Only a changed vendor reroutes
// the item through the matcher; an edit that keeps the vendor leaves
// the item on its current order, even one already committed. On a
// vendor change the previous order keeps existing even if the item
// was its last one.
func UpdateOrderItem(ctx *gin.Context) {
	itemID, err := utils.GetOrderItemID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateOrderItemRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Quantity < 1 || req.Quantity > orders.MaxItemQuantity {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": orders.ErrInvalidQuantity.Error()})
		return
	}

	if req.UnitCost.IsNegative() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": orders.ErrNegativeUnitCost.Error()})
		return
	}

	var item models.OrderItem

	if err := db.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order item"})
		}
		return
	}

	currentVendor := ""

	if currentOrder := loadItemOrder(item); currentOrder != nil {
		currentVendor = currentOrder.VendorName
	}

	item.Quantity = req.Quantity
	item.PartNumber = req.PartNumber
	item.Description = req.Description
	item.UnitCost = req.UnitCost
	item.Notes = req.Notes

	if strings.TrimSpace(req.VendorName) == currentVendor {
		if err := db.DB.Save(&item).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order item"})
			return
		}
	} else if err := orders.ReassignItemVendor(db.DB, &item, req.VendorName); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order item"})
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(item.ProjectID), 10), "order_item_updated")

	ctx.JSON(http.StatusOK, orderItemResponse(item, loadItemOrder(item)))
}

func DeleteOrderItem(ctx *gin.Context) {
	itemID, err := utils.GetOrderItemID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.OrderItem

	if err := db.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order item"})
		}
		return
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order item"})
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(item.ProjectID), 10), "order_item_deleted")

	ctx.Status(http.StatusNoContent)
}

func loadItemOrder(item models.OrderItem) *models.Order {
	if item.OrderID == nil {
		return nil
	}

	var order models.Order

	if err := db.DB.First(&order, *item.OrderID).Error; err != nil {
		return nil
	}

	return &order
}
