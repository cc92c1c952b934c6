package parts

import (
	"testing"

	"github.com/glebarez/sqlite"
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

func createPart(t *testing.T, db *gorm.DB, projectID uint, partType string, name string, parentID *uint) models.Part {
	t.Helper()

	part, err := Create(db, NewPart{
		ProjectID:    projectID,
		Type:         partType,
		Name:         name,
		ParentPartID: parentID,
		Priority:     1,
	})
	require.NoError(t, err)

	return part
}
