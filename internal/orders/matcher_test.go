package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/types"
)

func TestFirstItemProvisionsOpenOrder(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	item := createItem(t, db, project.ID, "Acme", 2, "10.00")

	require.NotNil(t, item.OrderID)
	assert.EqualValues(t, 1, countOrders(t, db, project.ID))

	var order models.Order
	require.NoError(t, db.First(&order, *item.OrderID).Error)
	assert.Equal(t, "Acme", order.VendorName)
	assert.Equal(t, types.OrderStatusOpen, order.Status)
}

func TestSecondItemReusesOpenOrder(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	first := createItem(t, db, project.ID, "Acme", 2, "10.00")
	second := createItem(t, db, project.ID, "Acme", 1, "5.00")

	require.NotNil(t, first.OrderID)
	require.NotNil(t, second.OrderID)
	assert.Equal(t, *first.OrderID, *second.OrderID)
	assert.EqualValues(t, 1, countOrders(t, db, project.ID))
}

func TestCommittedOrderDoesNotReceiveItems(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	first := createItem(t, db, project.ID, "Acme", 2, "10.00")

	var order models.Order
	require.NoError(t, db.First(&order, *first.OrderID).Error)
	order.Status = types.OrderStatusOrdered
	require.NoError(t, db.Save(&order).Error)

	// The vendor's open bucket is gone, so a fresh open order appears
	// even though an Acme order already exists in a later status.
	second := createItem(t, db, project.ID, "Acme", 1, "5.00")

	require.NotNil(t, second.OrderID)
	assert.NotEqual(t, order.ID, *second.OrderID)
	assert.EqualValues(t, 2, countOrders(t, db, project.ID))

	var newOrder models.Order
	require.NoError(t, db.First(&newOrder, *second.OrderID).Error)
	assert.Equal(t, types.OrderStatusOpen, newOrder.Status)
}

func TestItemWithoutVendorIsUnclassified(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	item := createItem(t, db, project.ID, "", 1, "3.50")

	assert.Nil(t, item.OrderID)
	assert.EqualValues(t, 0, countOrders(t, db, project.ID))
}

func TestVendorsGetSeparateOrders(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	acme := createItem(t, db, project.ID, "Acme", 1, "10.00")
	mcmaster := createItem(t, db, project.ID, "McMaster-Carr", 1, "4.00")

	require.NotNil(t, acme.OrderID)
	require.NotNil(t, mcmaster.OrderID)
	assert.NotEqual(t, *acme.OrderID, *mcmaster.OrderID)
}

func TestReassignmentLeavesOldOrderBehind(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	item := createItem(t, db, project.ID, "Acme", 1, "10.00")
	oldOrderID := *item.OrderID

	require.NoError(t, ReassignItemVendor(db, &item, "McMaster-Carr"))

	require.NotNil(t, item.OrderID)
	assert.NotEqual(t, oldOrderID, *item.OrderID)

	// The Acme order is now empty but is neither deleted nor touched.
	var oldOrder models.Order
	require.NoError(t, db.First(&oldOrder, oldOrderID).Error)
	assert.Equal(t, types.OrderStatusOpen, oldOrder.Status)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", oldOrderID).Count(&itemCount).Error)
	assert.EqualValues(t, 0, itemCount)
}

func TestReassignmentToEmptyVendorUnclassifies(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	item := createItem(t, db, project.ID, "Acme", 1, "10.00")

	require.NoError(t, ReassignItemVendor(db, &item, ""))

	assert.Nil(t, item.OrderID)
}

func TestCreateItemValidation(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	_, err := CreateItem(db, NewItem{ProjectID: project.ID, Quantity: 0, Description: "Bolts"})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = CreateItem(db, NewItem{ProjectID: project.ID, Quantity: MaxItemQuantity + 1, Description: "Bolts"})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = CreateItem(db, NewItem{ProjectID: project.ID, Quantity: 1, Description: "  "})
	assert.ErrorIs(t, err, ErrDescriptionEmpty)

	_, err = CreateItem(db, NewItem{
		ProjectID:   project.ID,
		Quantity:    1,
		Description: "Bolts",
		UnitCost:    decimal.RequireFromString("-1.00"),
	})
	assert.ErrorIs(t, err, ErrNegativeUnitCost)

	// A failed validation must not leave a stray auto-created order.
	assert.EqualValues(t, 0, countOrders(t, db, project.ID))
}

func TestDeleteOrderRejectsOrderWithItems(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	item := createItem(t, db, project.ID, "Acme", 1, "10.00")

	var order models.Order
	require.NoError(t, db.First(&order, *item.OrderID).Error)

	err := DeleteOrder(db, &order)
	assert.ErrorIs(t, err, ErrOrderHasItems)

	require.NoError(t, db.Delete(&models.OrderItem{}, item.ID).Error)
	require.NoError(t, DeleteOrder(db, &order))

	assert.EqualValues(t, 0, countOrders(t, db, project.ID))
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus("open"))
	assert.True(t, ValidOrderStatus("ordered"))
	assert.True(t, ValidOrderStatus("received"))
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}
