package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cheesy-parts/cheesyparts/db"
	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/parts"
	"github.com/cheesy-parts/cheesyparts/internal/types"
	"github.com/cheesy-parts/cheesyparts/internal/utils"
)

type DashboardStatusGroup struct {
	Status string         `json:"status"`
	Label  string         `json:"label"`
	Parts  []PartResponse `json:"parts"`
}

type DashboardResponse struct {
	Project  GetProjectResponse     `json:"project"`
	Statuses []DashboardStatusGroup `json:"statuses"`
	Settings SettingsResponse       `json:"settings"`
}

// GetDashboard returns the project's parts grouped by status in
// workflow order. Finished parts ("done") are excluded; the optional
// status query parameter narrows the view to a single group.
func GetDashboard(ctx *gin.Context) {
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

	statusFilter := ctx.Query("status")

	if statusFilter != "" && !parts.ValidStatus(statusFilter) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part status"})
		return
	}

	query := db.DB.Where("project_id = ? AND status <> ?", project.ID, "done")

	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var projectParts []models.Part

	if err := query.Order("priority, type, part_number").Find(&projectParts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve parts"})
		return
	}

	byStatus := make(map[string][]PartResponse)

	for _, part := range projectParts {
		byStatus[part.Status] = append(byStatus[part.Status], partResponse(part, project))
	}

	groups := make([]DashboardStatusGroup, 0, len(byStatus))

	for _, status := range types.PartStatusList {
		if status == "done" {
			continue
		}
		if group, ok := byStatus[status]; ok {
			groups = append(groups, DashboardStatusGroup{
				Status: status,
				Label:  types.PartStatuses[status],
				Parts:  group,
			})
		}
	}

	settings, err := models.GetSettings(db.DB)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	}

	ctx.JSON(http.StatusOK, DashboardResponse{
		Project:  projectResponse(project),
		Statuses: groups,
		Settings: settingsResponse(settings),
	})
}
