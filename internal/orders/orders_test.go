package orders

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cheesy-parts/cheesyparts/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Project{},
		&models.Part{},
		&models.Order{},
		&models.OrderItem{},
	))

	return db
}

func newTestProject(t *testing.T, db *gorm.DB) models.Project {
	t.Helper()

	project := models.Project{Name: "Test Robot", PartNumberPrefix: "CHZ"}
	require.NoError(t, db.Create(&project).Error)

	return project
}

func createItem(t *testing.T, db *gorm.DB, projectID uint, vendor string, quantity int, unitCost string) models.OrderItem {
	t.Helper()

	item, err := CreateItem(db, NewItem{
		ProjectID:   projectID,
		VendorName:  vendor,
		Quantity:    quantity,
		Description: "Test item",
		UnitCost:    decimal.RequireFromString(unitCost),
	})
	require.NoError(t, err)

	return item
}

func countOrders(t *testing.T, db *gorm.DB, projectID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("project_id = ?", projectID).Count(&count).Error)

	return count
}
