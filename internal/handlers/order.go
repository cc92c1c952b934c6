package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cheesy-parts/cheesyparts/db"
	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/orders"
	"github.com/cheesy-parts/cheesyparts/internal/services"
	"github.com/cheesy-parts/cheesyparts/internal/types"
	"github.com/cheesy-parts/cheesyparts/internal/utils"
)

type UpdateOrderRequest struct {
	VendorName   string          `json:"vendor_name" binding:"required"`
	Status       string          `json:"status" binding:"required"`
	OrderedAt    *string         `json:"ordered_at"` // YYYY-MM-DD
	PaidForBy    string          `json:"paid_for_by"`
	TaxCost      decimal.Decimal `json:"tax_cost"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Notes        string          `json:"notes"`
	Reimbursed   bool            `json:"reimbursed"`
}

type OrderResponse struct {
	ID           uint                `json:"id"`
	ProjectID    uint                `json:"project_id"`
	VendorName   string              `json:"vendor_name"`
	Status       string              `json:"status"`
	OrderedAt    *string             `json:"ordered_at"`
	PaidForBy    string              `json:"paid_for_by"`
	TaxCost      decimal.Decimal     `json:"tax_cost"`
	ShippingCost decimal.Decimal     `json:"shipping_cost"`
	Notes        string              `json:"notes"`
	Reimbursed   bool                `json:"reimbursed"`
	Total        decimal.Decimal     `json:"total"`
	Items        []OrderItemResponse `json:"items"`
}

func orderResponse(order models.Order, items []models.OrderItem) OrderResponse {
	itemResponses := make([]OrderItemResponse, 0, len(items))

	for _, item := range items {
		itemResponses = append(itemResponses, orderItemResponse(item, &order))
	}

	return OrderResponse{
		ID:           order.ID,
		ProjectID:    order.ProjectID,
		VendorName:   order.VendorName,
		Status:       order.Status,
		OrderedAt:    orders.FormatOrderDate(order.OrderedAt),
		PaidForBy:    order.PaidForBy,
		TaxCost:      order.TaxCost,
		ShippingCost: order.ShippingCost,
		Notes:        order.Notes,
		Reimbursed:   order.Reimbursed,
		Total:        order.Total(items),
		Items:        itemResponses,
	}
}

// ListOrders returns a project's orders with their items and computed
// totals, open orders first so the live buckets are easy to find.
func ListOrders(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
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

	var projectOrders []models.Order

	if err := db.DB.Preload("OrderItems").
		Where("project_id = ?", project.ID).
		Order("status, vendor_name, id").
		Find(&projectOrders).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	response := make([]OrderResponse, 0, len(projectOrders))

	for _, order := range projectOrders {
		response = append(response, orderResponse(order, order.OrderItems))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetOrder(ctx *gin.Context) {
	order, ok := findOrder(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, orderResponse(order, order.OrderItems))
}

// UpdateOrder edits an order's vendor, status and bookkeeping fields.
// Moving an order out of "open" makes it a committed order: it starts
// counting toward statistics and stops receiving auto-routed items, so
// the team channel is notified.
func UpdateOrder(ctx *gin.Context) {
	order, ok := findOrder(ctx)

	if !ok {
		return
	}

	var req UpdateOrderRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !orders.ValidOrderStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": orders.ErrInvalidOrderStatus.Error()})
		return
	}

	if req.TaxCost.IsNegative() || req.ShippingCost.IsNegative() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Costs cannot be negative"})
		return
	}

	var orderedAt *datatypes.Date

	if req.OrderedAt != nil && *req.OrderedAt != "" {
		parsed, err := time.Parse("2006-01-02", *req.OrderedAt)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "ordered_at must be formatted YYYY-MM-DD"})
			return
		}
		date := datatypes.Date(parsed)
		orderedAt = &date
	}

	wasOpen := order.Status == types.OrderStatusOpen

	order.VendorName = req.VendorName
	order.Status = req.Status
	order.OrderedAt = orderedAt
	order.PaidForBy = req.PaidForBy
	order.TaxCost = req.TaxCost
	order.ShippingCost = req.ShippingCost
	order.Notes = req.Notes
	order.Reimbursed = req.Reimbursed

	if err := db.DB.Save(&order).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	if wasOpen && order.Status != types.OrderStatusOpen {
		var project models.Project
		if err := db.DB.First(&project, order.ProjectID).Error; err == nil {
			if err := services.NotifyOrderCommitted(project, order); err != nil {
				log.Printf("Failed to send order notification: %v", err)
			}
		}
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(order.ProjectID), 10), "order_updated")

	ctx.JSON(http.StatusOK, orderResponse(order, order.OrderItems))
}

func DeleteOrder(ctx *gin.Context) {
	order, ok := findOrder(ctx)

	if !ok {
		return
	}

	if err := orders.DeleteOrder(db.DB, &order); err != nil {
		if errors.Is(err, orders.ErrOrderHasItems) {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		}
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(order.ProjectID), 10), "order_deleted")

	ctx.Status(http.StatusNoContent)
}

// GetOrderStats returns the per-vendor and per-purchaser cost rollups
// over the project's committed orders.
func GetOrderStats(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
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

	stats, err := orders.Stats(db.DB, project.ID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute order statistics"})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

func findOrder(ctx *gin.Context) (models.Order, bool) {
	orderID, err := utils.GetOrderID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Order{}, false
	}

	var order models.Order

	if err := db.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return models.Order{}, false
	}

	return order, true
}
