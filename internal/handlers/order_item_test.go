package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheesy-parts/cheesyparts/db"
	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/types"
)

func TestCreateOrderItemHandlerRoutesToVendor(t *testing.T) {
	project := setupHandlerTest(t)

	params := gin.Params{{Key: "project_id", Value: strconv.FormatUint(uint64(project.ID), 10)}}

	ctx, w := newEditorContext(t, http.MethodPost,
		`{"vendor_name": "Acme", "quantity": 4, "description": "1/2 in bolts", "unit_cost": "25.00"}`, params)
	CreateOrderItem(ctx)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response OrderItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.NotNil(t, response.OrderID)
	assert.Equal(t, "Acme", response.VendorName)
	assert.True(t, response.TotalCost.Equal(decimal.NewFromInt(100)),
		"expected 100, got %s", response.TotalCost)

	var order models.Order
	require.NoError(t, db.DB.First(&order, *response.OrderID).Error)
	assert.Equal(t, types.OrderStatusOpen, order.Status)
}

func TestCreateOrderItemHandlerWithoutVendor(t *testing.T) {
	project := setupHandlerTest(t)

	params := gin.Params{{Key: "project_id", Value: strconv.FormatUint(uint64(project.ID), 10)}}

	ctx, w := newEditorContext(t, http.MethodPost,
		`{"quantity": 1, "description": "Mystery gear"}`, params)
	CreateOrderItem(ctx)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response OrderItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Nil(t, response.OrderID)
	assert.Empty(t, response.VendorName)
}

func TestUpdateOrderItemKeepsOrderWhenVendorUnchanged(t *testing.T) {
	project := setupHandlerTest(t)

	projectParams := gin.Params{{Key: "project_id", Value: strconv.FormatUint(uint64(project.ID), 10)}}

	ctx, w := newEditorContext(t, http.MethodPost,
		`{"vendor_name": "Acme", "quantity": 2, "description": "Gears", "unit_cost": "10.00"}`, projectParams)
	CreateOrderItem(ctx)
	require.Equal(t, http.StatusCreated, w.Code)

	var item OrderItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	require.NotNil(t, item.OrderID)

	// Commit the order; later edits that keep the vendor must not pull
	// the item out of it.
	var order models.Order
	require.NoError(t, db.DB.First(&order, *item.OrderID).Error)
	order.Status = types.OrderStatusOrdered
	require.NoError(t, db.DB.Save(&order).Error)

	itemParams := gin.Params{{Key: "item_id", Value: strconv.FormatUint(uint64(item.ID), 10)}}

	ctx, w = newEditorContext(t, http.MethodPut,
		`{"vendor_name": "Acme", "quantity": 5, "description": "Gears", "unit_cost": "10.00", "notes": "rush"}`, itemParams)
	UpdateOrderItem(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated OrderItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))

	require.NotNil(t, updated.OrderID)
	assert.Equal(t, *item.OrderID, *updated.OrderID)
	assert.Equal(t, 5, updated.Quantity)

	var orderCount int64
	require.NoError(t, db.DB.Model(&models.Order{}).Where("project_id = ?", project.ID).Count(&orderCount).Error)
	assert.EqualValues(t, 1, orderCount)
}

func TestUpdateOrderItemReroutesOnVendorChange(t *testing.T) {
	project := setupHandlerTest(t)

	projectParams := gin.Params{{Key: "project_id", Value: strconv.FormatUint(uint64(project.ID), 10)}}

	ctx, w := newEditorContext(t, http.MethodPost,
		`{"vendor_name": "Acme", "quantity": 2, "description": "Gears", "unit_cost": "10.00"}`, projectParams)
	CreateOrderItem(ctx)
	require.Equal(t, http.StatusCreated, w.Code)

	var item OrderItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	require.NotNil(t, item.OrderID)

	itemParams := gin.Params{{Key: "item_id", Value: strconv.FormatUint(uint64(item.ID), 10)}}

	ctx, w = newEditorContext(t, http.MethodPut,
		`{"vendor_name": "McMaster-Carr", "quantity": 2, "description": "Gears", "unit_cost": "10.00"}`, itemParams)
	UpdateOrderItem(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated OrderItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))

	require.NotNil(t, updated.OrderID)
	assert.NotEqual(t, *item.OrderID, *updated.OrderID)
	assert.Equal(t, "McMaster-Carr", updated.VendorName)
}

func TestOrderItemQuantityValidationMessage(t *testing.T) {
	project := setupHandlerTest(t)

	projectParams := gin.Params{{Key: "project_id", Value: strconv.FormatUint(uint64(project.ID), 10)}}

	// An explicit zero must get the range-check message, not a generic
	// binding error.
	ctx, w := newEditorContext(t, http.MethodPost,
		`{"vendor_name": "Acme", "quantity": 0, "description": "Gears"}`, projectParams)
	CreateOrderItem(ctx)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity must be between")

	ctx, w = newEditorContext(t, http.MethodPost,
		`{"vendor_name": "Acme", "quantity": 1, "description": "Gears"}`, projectParams)
	CreateOrderItem(ctx)
	require.Equal(t, http.StatusCreated, w.Code)

	var item OrderItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	itemParams := gin.Params{{Key: "item_id", Value: strconv.FormatUint(uint64(item.ID), 10)}}

	ctx, w = newEditorContext(t, http.MethodPut,
		`{"vendor_name": "Acme", "quantity": 0, "description": "Gears"}`, itemParams)
	UpdateOrderItem(ctx)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity must be between")
}

func TestGetOrderStatsHandler(t *testing.T) {
	project := setupHandlerTest(t)

	params := gin.Params{{Key: "project_id", Value: strconv.FormatUint(uint64(project.ID), 10)}}

	ctx, w := newEditorContext(t, http.MethodPost,
		`{"vendor_name": "Acme", "quantity": 2, "description": "Gears", "unit_cost": "10.00"}`, params)
	CreateOrderItem(ctx)
	require.Equal(t, http.StatusCreated, w.Code)

	var item OrderItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	var order models.Order
	require.NoError(t, db.DB.First(&order, *item.OrderID).Error)
	order.Status = types.OrderStatusReceived
	order.PaidForBy = "Alice"
	require.NoError(t, db.DB.Save(&order).Error)

	ctx, w = newEditorContext(t, http.MethodGet, "", params)
	GetOrderStats(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats struct {
		ByVendor map[string]struct {
			TotalCost decimal.Decimal `json:"totalCost"`
		} `json:"byVendor"`
		ByPurchaser map[string]struct {
			Outstanding decimal.Decimal `json:"outstanding"`
		} `json:"byPurchaser"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))

	require.Contains(t, stats.ByVendor, "Acme")
	assert.True(t, stats.ByVendor["Acme"].TotalCost.Equal(decimal.NewFromInt(20)))
	require.Contains(t, stats.ByPurchaser, "Alice")
	assert.True(t, stats.ByPurchaser["Alice"].Outstanding.Equal(decimal.NewFromInt(20)))
}
