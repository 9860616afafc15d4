// controllers/meter.go
package controllers

import (
	"errors"
	"net/http"

	"aparta-backend/config"
	"aparta-backend/models"
	"aparta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateMeterInput defines the expected JSON structure for creating a meter
type CreateMeterInput struct {
	Code    string `json:"code" binding:"required"`
	FeeType string `json:"feeType" binding:"required,oneof=ELECTRIC WATER GAS"`
	Unit    string `json:"unit"`
}

// UpdateMeterInput defines the expected JSON structure for updating a meter
type UpdateMeterInput struct {
	Unit     *string `json:"unit"`
	IsActive *bool   `json:"isActive"`
}

// CreateMeter registers a new meter
func CreateMeter(c *gin.Context) {
	var input CreateMeterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.Meter
	if err := config.DB.Where("code = ?", input.Code).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Meter code already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	meter := models.Meter{
		Code:     input.Code,
		FeeType:  input.FeeType,
		Unit:     input.Unit,
		IsActive: true,
	}

	if err := config.DB.Create(&meter).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create meter")
		return
	}

	c.JSON(http.StatusCreated, meter)
}

// GetMeters retrieves meters; pass ?active=true for active meters only
func GetMeters(c *gin.Context) {
	query := config.DB.Model(&models.Meter{})
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var meters []models.Meter
	if err := query.Find(&meters).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve meters")
		return
	}

	c.JSON(http.StatusOK, meters)
}

// UpdateMeter updates an existing meter
func UpdateMeter(c *gin.Context) {
	meterUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid meter ID format")
		return
	}

	var input UpdateMeterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var meter models.Meter
	if err := config.DB.Where("id = ?", meterUUID).First(&meter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Meter not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Unit != nil {
		meter.Unit = *input.Unit
	}
	if input.IsActive != nil {
		meter.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&meter).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update meter")
		return
	}

	c.JSON(http.StatusOK, meter)
}
