// controllers/apartment.go
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

// CreateApartmentInput defines the expected JSON structure for creating an apartment
type CreateApartmentInput struct {
	BuildingID      uuid.UUID `json:"buildingId" binding:"required"`
	Code            string    `json:"code" binding:"required"`
	Floor           int       `json:"floor"`
	Area            float64   `json:"area" binding:"min=0"`
	OccupancyStatus string    `json:"occupancyStatus" binding:"omitempty,oneof=occupied vacant unsold"`
}

// UpdateApartmentInput defines the expected JSON structure for updating an apartment
type UpdateApartmentInput struct {
	Code            *string  `json:"code"`
	Floor           *int     `json:"floor"`
	Area            *float64 `json:"area"`
	OccupancyStatus *string  `json:"occupancyStatus" binding:"omitempty,oneof=occupied vacant unsold"`
}

// CreateApartment creates a new apartment under a building
func CreateApartment(c *gin.Context) {
	var input CreateApartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate building exists
	var building models.Building
	if err := config.DB.Where("id = ?", input.BuildingID).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Building not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	status := input.OccupancyStatus
	if status == "" {
		status = models.OccupancyVacant
	}

	apartment := models.Apartment{
		BuildingID:      input.BuildingID,
		Code:            input.Code,
		Floor:           input.Floor,
		Area:            input.Area,
		OccupancyStatus: status,
	}

	if err := config.DB.Create(&apartment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create apartment")
		return
	}

	c.JSON(http.StatusCreated, apartment)
}

// GetApartments retrieves apartments, optionally filtered by building
func GetApartments(c *gin.Context) {
	query := config.DB.Model(&models.Apartment{})

	if buildingID := c.Query("buildingId"); buildingID != "" {
		buildingUUID, err := uuid.Parse(buildingID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid building ID format")
			return
		}
		query = query.Where("building_id = ?", buildingUUID)
	}

	var apartments []models.Apartment
	if err := query.Find(&apartments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve apartments")
		return
	}

	c.JSON(http.StatusOK, apartments)
}

// GetApartment retrieves a specific apartment by ID
func GetApartment(c *gin.Context) {
	apartmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid apartment ID format")
		return
	}

	var apartment models.Apartment
	if err := config.DB.Preload("Invoices").
		Where("id = ?", apartmentUUID).
		First(&apartment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Apartment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, apartment)
}

// UpdateApartment updates an existing apartment
func UpdateApartment(c *gin.Context) {
	apartmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid apartment ID format")
		return
	}

	var input UpdateApartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var apartment models.Apartment
	if err := config.DB.Where("id = ?", apartmentUUID).First(&apartment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Apartment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Code != nil {
		apartment.Code = *input.Code
	}
	if input.Floor != nil {
		apartment.Floor = *input.Floor
	}
	if input.Area != nil {
		apartment.Area = *input.Area
	}
	if input.OccupancyStatus != nil {
		apartment.OccupancyStatus = *input.OccupancyStatus
	}

	if err := config.DB.Save(&apartment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update apartment")
		return
	}

	c.JSON(http.StatusOK, apartment)
}

// DeleteApartment soft deletes an apartment
func DeleteApartment(c *gin.Context) {
	apartmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid apartment ID format")
		return
	}

	var apartment models.Apartment
	if err := config.DB.Where("id = ?", apartmentUUID).First(&apartment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Apartment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&apartment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete apartment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Apartment deleted successfully"})
}
