// controllers/building.go
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

// CreateBuildingInput defines the expected JSON structure for creating a building
type CreateBuildingInput struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// UpdateBuildingInput defines the expected JSON structure for updating a building
type UpdateBuildingInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Status  *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CreateBuilding creates a new building
func CreateBuilding(c *gin.Context) {
	var input CreateBuildingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if code already exists
	var existing models.Building
	if err := config.DB.Where("code = ?", input.Code).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Building code already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	building := models.Building{
		Code:    input.Code,
		Name:    input.Name,
		Address: input.Address,
		Status:  "active",
	}

	if err := config.DB.Create(&building).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create building")
		return
	}

	c.JSON(http.StatusCreated, building)
}

// GetBuildings retrieves all buildings
func GetBuildings(c *gin.Context) {
	var buildings []models.Building
	if err := config.DB.Find(&buildings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve buildings")
		return
	}

	c.JSON(http.StatusOK, buildings)
}

// GetBuilding retrieves a specific building by ID
func GetBuilding(c *gin.Context) {
	buildingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid building ID format")
		return
	}

	var building models.Building
	if err := config.DB.Preload("Apartments").Preload("PriceQuotations").
		Where("id = ?", buildingUUID).
		First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Building not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, building)
}

// UpdateBuilding updates an existing building
func UpdateBuilding(c *gin.Context) {
	buildingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid building ID format")
		return
	}

	var input UpdateBuildingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var building models.Building
	if err := config.DB.Where("id = ?", buildingUUID).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Building not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		building.Name = *input.Name
	}
	if input.Address != nil {
		building.Address = *input.Address
	}
	if input.Status != nil {
		building.Status = *input.Status
	}

	if err := config.DB.Save(&building).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update building")
		return
	}

	c.JSON(http.StatusOK, building)
}

// DeleteBuilding soft deletes a building
func DeleteBuilding(c *gin.Context) {
	buildingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid building ID format")
		return
	}

	var building models.Building
	if err := config.DB.Where("id = ?", buildingUUID).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Building not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&building).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete building")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Building deleted successfully"})
}
