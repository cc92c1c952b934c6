package parts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/types"
)

func TestCreateRejectsInvalidType(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	_, err := Create(db, NewPart{ProjectID: project.ID, Type: "widget", Name: "Thing"})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	_, err := Create(db, NewPart{ProjectID: project.ID, Type: types.PartTypePart, Name: "   "})
	assert.ErrorIs(t, err, ErrNameEmpty)
}

func TestDeleteRejectsPartWithChildren(t *testing.T) {
	db := newTestDB(t)
	project := newTestProject(t, db)

	parent := createPart(t, db, project.ID, types.PartTypeAssembly, "Drivetrain", nil)
	child := createPart(t, db, project.ID, types.PartTypePart, "Gearbox plate", &parent.ID)

	err := Delete(db, &parent)
	assert.ErrorIs(t, err, ErrHasChildren)

	// The parent must survive a rejected delete.
	var count int64
	require.NoError(t, db.Model(&models.Part{}).Where("id = ?", parent.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Bottom-up deletion succeeds.
	require.NoError(t, Delete(db, &child))
	require.NoError(t, Delete(db, &parent))

	require.NoError(t, db.Model(&models.Part{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
