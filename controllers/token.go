package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"bridal-studio-backend/config"
	"bridal-studio-backend/models"
	"bridal-studio-backend/utils"
)

type SaveTokenInput struct {
	Token string `json:"token" binding:"required"`
}

// SaveFCMToken upserts the single manager device-token slot. Last writer
// wins; no history is kept.
func SaveFCMToken(c *gin.Context) {
	var input SaveTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Token is required")
		return
	}

	token := models.DeviceToken{
		Name:      models.ManagerTokenName,
		Token:     input.Token,
		Active:    true,
		UpdatedAt: time.Now(),
	}
	if err := config.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&token).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
