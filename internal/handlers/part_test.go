package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cheesy-parts/cheesyparts/db"
	"github.com/cheesy-parts/cheesyparts/internal/middleware"
	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/types"
)

func setupHandlerTest(t *testing.T) models.Project {
	t.Helper()

	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Part{},
		&models.Order{},
		&models.OrderItem{},
		&models.Settings{},
	))

	db.DB = testDB

	project := models.Project{Name: "Test Robot", PartNumberPrefix: "CHZ"}
	require.NoError(t, testDB.Create(&project).Error)

	return project
}

func newEditorContext(t *testing.T, method string, body string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	ctx.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	ctx.Params = params
	ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{
		ID:         1,
		Email:      "editor@example.com",
		Permission: types.PermissionEditor,
	})

	return ctx, w
}

func TestCreatePartHandler(t *testing.T) {
	project := setupHandlerTest(t)

	params := gin.Params{{Key: "project_id", Value: strconv.FormatUint(uint64(project.ID), 10)}}

	ctx, w := newEditorContext(t, http.MethodPost,
		`{"type": "assembly", "name": "Drivetrain"}`, params)
	CreatePart(ctx)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response PartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.EqualValues(t, 100, response.PartNumber)
	assert.Equal(t, "CHZ-A-0100", response.FullPartNumber)
	assert.Equal(t, "designing", response.Status)

	ctx, w = newEditorContext(t, http.MethodPost,
		fmt.Sprintf(`{"type": "part", "name": "Gearbox plate", "parent_part_id": %d}`, response.ID), params)
	CreatePart(ctx)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var child PartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &child))

	assert.EqualValues(t, 101, child.PartNumber)
	assert.Equal(t, "CHZ-P-0101", child.FullPartNumber)
}

func TestCreatePartHandlerRejectsBadType(t *testing.T) {
	project := setupHandlerTest(t)

	params := gin.Params{{Key: "project_id", Value: strconv.FormatUint(uint64(project.ID), 10)}}

	ctx, w := newEditorContext(t, http.MethodPost,
		`{"type": "widget", "name": "Thing"}`, params)
	CreatePart(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePartHandlerGuardsChildren(t *testing.T) {
	project := setupHandlerTest(t)

	parent := models.Part{ProjectID: project.ID, PartNumber: 100, Type: "assembly", Name: "Drivetrain", Status: "designing"}
	require.NoError(t, db.DB.Create(&parent).Error)

	child := models.Part{ProjectID: project.ID, PartNumber: 101, Type: "part", Name: "Plate", Status: "designing", ParentPartID: &parent.ID}
	require.NoError(t, db.DB.Create(&child).Error)

	parentParams := gin.Params{{Key: "part_id", Value: strconv.FormatUint(uint64(parent.ID), 10)}}

	ctx, w := newEditorContext(t, http.MethodDelete, "", parentParams)
	DeletePart(ctx)
	assert.Equal(t, http.StatusConflict, w.Code)

	childParams := gin.Params{{Key: "part_id", Value: strconv.FormatUint(uint64(child.ID), 10)}}

	ctx, w = newEditorContext(t, http.MethodDelete, "", childParams)
	DeletePart(ctx)
	// The handler runs outside a gin engine, so a body-less status is
	// only buffered in the test writer until explicitly flushed.
	ctx.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)

	ctx, w = newEditorContext(t, http.MethodDelete, "", parentParams)
	DeletePart(ctx)
	ctx.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdatePartStatusHandler(t *testing.T) {
	project := setupHandlerTest(t)

	part := models.Part{ProjectID: project.ID, PartNumber: 1, Type: "part", Name: "Plate", Status: "designing"}
	require.NoError(t, db.DB.Create(&part).Error)

	params := gin.Params{{Key: "part_id", Value: strconv.FormatUint(uint64(part.ID), 10)}}

	ctx, w := newEditorContext(t, http.MethodPatch, `{"status": "anodize"}`, params)
	UpdatePartStatus(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	ctx, w = newEditorContext(t, http.MethodPatch, `{"status": "galvanize"}`, params)
	UpdatePartStatus(ctx)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardExcludesDone(t *testing.T) {
	project := setupHandlerTest(t)

	designing := models.Part{ProjectID: project.ID, PartNumber: 1, Type: "part", Name: "Plate", Status: "designing"}
	done := models.Part{ProjectID: project.ID, PartNumber: 2, Type: "part", Name: "Old plate", Status: "done"}
	require.NoError(t, db.DB.Create(&designing).Error)
	require.NoError(t, db.DB.Create(&done).Error)

	params := gin.Params{{Key: "project_id", Value: strconv.FormatUint(uint64(project.ID), 10)}}

	ctx, w := newEditorContext(t, http.MethodGet, "", params)
	GetDashboard(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.Len(t, response.Statuses, 1)
	assert.Equal(t, "designing", response.Statuses[0].Status)
	require.Len(t, response.Statuses[0].Parts, 1)
	assert.Equal(t, "Plate", response.Statuses[0].Parts[0].Name)
}
