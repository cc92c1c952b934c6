package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cheesy-parts/cheesyparts/db"
	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/parts"
	"github.com/cheesy-parts/cheesyparts/internal/types"
	"github.com/cheesy-parts/cheesyparts/internal/utils"
)

type CreatePartRequest struct {
	Type         string `json:"type" binding:"required"`
	Name         string `json:"name" binding:"required"`
	ParentPartID *uint  `json:"parent_part_id"`
	Notes        string `json:"notes"`
	Priority     *int   `json:"priority"`
}

type UpdatePartRequest struct {
	Name           string `json:"name" binding:"required"`
	Status         string `json:"status" binding:"required"`
	Notes          string `json:"notes"`
	SourceMaterial string `json:"source_material"`
	HaveMaterial   bool   `json:"have_material"`
	Quantity       string `json:"quantity"`
	CutLength      string `json:"cut_length"`
	Priority       int    `json:"priority"`
	DrawingCreated bool   `json:"drawing_created"`
}

type UpdatePartStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PartResponse struct {
	ID             uint   `json:"id"`
	ProjectID      uint   `json:"project_id"`
	PartNumber     uint   `json:"part_number"`
	FullPartNumber string `json:"full_part_number"`
	Type           string `json:"type"`
	Name           string `json:"name"`
	ParentPartID   *uint  `json:"parent_part_id"`
	Status         string `json:"status"`
	StatusLabel    string `json:"status_label"`
	Notes          string `json:"notes"`
	SourceMaterial string `json:"source_material"`
	HaveMaterial   bool   `json:"have_material"`
	Quantity       string `json:"quantity"`
	CutLength      string `json:"cut_length"`
	Priority       int    `json:"priority"`
	DrawingCreated bool   `json:"drawing_created"`
}

func partResponse(part models.Part, project models.Project) PartResponse {
	return PartResponse{
		ID:             part.ID,
		ProjectID:      part.ProjectID,
		PartNumber:     part.PartNumber,
		FullPartNumber: part.FullPartNumber(project),
		Type:           part.Type,
		Name:           part.Name,
		ParentPartID:   part.ParentPartID,
		Status:         part.Status,
		StatusLabel:    types.PartStatuses[part.Status],
		Notes:          part.Notes,
		SourceMaterial: part.SourceMaterial,
		HaveMaterial:   part.HaveMaterial,
		Quantity:       part.Quantity,
		CutLength:      part.CutLength,
		Priority:       part.Priority,
		DrawingCreated: part.DrawingCreated,
	}
}

func CreatePart(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreatePartRequest

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

	priority := 1
	if req.Priority != nil {
		priority = *req.Priority
	}

	if !parts.ValidPriority(priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	part, err := parts.Create(db.DB, parts.NewPart{
		ProjectID:    project.ID,
		Type:         req.Type,
		Name:         req.Name,
		ParentPartID: req.ParentPartID,
		Notes:        req.Notes,
		Priority:     priority,
	})

	if err != nil {
		if errors.Is(err, parts.ErrInvalidType) || errors.Is(err, parts.ErrNameEmpty) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create part"})
		}
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(project.ID), 10), "part_created")

	ctx.JSON(http.StatusCreated, partResponse(part, project))
}

func ListParts(ctx *gin.Context) {
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

	var projectParts []models.Part

	if err := db.DB.Where("project_id = ?", project.ID).
		Order("type, part_number").
		Find(&projectParts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve parts"})
		return
	}

	response := make([]PartResponse, 0, len(projectParts))

	for _, part := range projectParts {
		response = append(response, partResponse(part, project))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetPart(ctx *gin.Context) {
	part, project, ok := findPart(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, partResponse(part, project))
}

func UpdatePart(ctx *gin.Context) {
	part, project, ok := findPart(ctx)

	if !ok {
		return
	}

	var req UpdatePartRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !parts.ValidStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part status"})
		return
	}

	if !parts.ValidPriority(req.Priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	part.Name = req.Name
	part.Status = req.Status
	part.Notes = req.Notes
	part.SourceMaterial = req.SourceMaterial
	part.HaveMaterial = req.HaveMaterial
	part.Quantity = req.Quantity
	part.CutLength = req.CutLength
	part.Priority = req.Priority
	part.DrawingCreated = req.DrawingCreated

	if err := db.DB.Save(&part).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update part"})
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(part.ProjectID), 10), "part_updated")

	ctx.JSON(http.StatusOK, partResponse(part, project))
}

func UpdatePartStatus(ctx *gin.Context) {
	part, project, ok := findPart(ctx)

	if !ok {
		return
	}

	var req UpdatePartStatusRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !parts.ValidStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part status"})
		return
	}

	part.Status = req.Status

	if err := db.DB.Save(&part).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update part"})
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(part.ProjectID), 10), "part_updated")

	ctx.JSON(http.StatusOK, partResponse(part, project))
}

func DeletePart(ctx *gin.Context) {
	part, _, ok := findPart(ctx)

	if !ok {
		return
	}

	if err := parts.Delete(db.DB, &part); err != nil {
		if errors.Is(err, parts.ErrHasChildren) {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete part"})
		}
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(part.ProjectID), 10), "part_deleted")

	ctx.Status(http.StatusNoContent)
}

// findPart loads the part named in the route along with its project;
// on failure it writes the error response and returns ok=false.
func findPart(ctx *gin.Context) (models.Part, models.Project, bool) {
	partID, err := utils.GetPartID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Part{}, models.Project{}, false
	}

	var part models.Part

	if err := db.DB.First(&part, partID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve part"})
		}
		return models.Part{}, models.Project{}, false
	}

	var project models.Project

	if err := db.DB.First(&project, part.ProjectID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return models.Part{}, models.Project{}, false
	}

	return part, project, true
}
