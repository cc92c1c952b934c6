package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cheesy-parts/cheesyparts/db"
	"github.com/cheesy-parts/cheesyparts/internal/models"
)

type UpdateSettingsRequest struct {
	HideMaterialFields bool `json:"hide_material_fields"`
}

type SettingsResponse struct {
	HideMaterialFields bool `json:"hide_material_fields"`
}

func settingsResponse(settings models.Settings) SettingsResponse {
	return SettingsResponse{
		HideMaterialFields: settings.HideMaterialFields,
	}
}

func GetSettings(ctx *gin.Context) {
	settings, err := models.GetSettings(db.DB)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	}

	ctx.JSON(http.StatusOK, settingsResponse(settings))
}

func UpdateSettings(ctx *gin.Context) {
	var req UpdateSettingsRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	settings, err := models.GetSettings(db.DB)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	}

	settings.HideMaterialFields = req.HideMaterialFields

	if err := db.DB.Save(&settings).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	ctx.JSON(http.StatusOK, settingsResponse(settings))
}
