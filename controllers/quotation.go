// controllers/quotation.go
package controllers

import (
	"errors"
	"net/http"

	"aparta-backend/config"
	"aparta-backend/models"
	"aparta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateQuotationInput defines the expected JSON structure for creating a price quotation
type CreateQuotationInput struct {
	BuildingID  uuid.UUID       `json:"buildingId" binding:"required"`
	FeeType     string          `json:"feeType" binding:"required,oneof=ELECTRIC WATER GAS"`
	Method      string          `json:"method" binding:"required,oneof=flat tiered"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Unit        string          `json:"unit"`
	TierPayload string          `json:"tierPayload"`
}

// UpdateQuotationInput defines the expected JSON structure for updating a price quotation
type UpdateQuotationInput struct {
	Method      *string          `json:"method" binding:"omitempty,oneof=flat tiered"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	Unit        *string          `json:"unit"`
	TierPayload *string          `json:"tierPayload"`
}

// CreateQuotation creates a tariff for a (building, fee type) pair
func CreateQuotation(c *gin.Context) {
	var input CreateQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.UnitPrice.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Unit price must not be negative")
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

	// Fee type is unique per building
	var existing models.PriceQuotation
	if err := config.DB.Where("building_id = ? AND fee_type = ?", input.BuildingID, input.FeeType).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "A quotation for this fee type already exists for the building")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	quotation := models.PriceQuotation{
		BuildingID:  input.BuildingID,
		FeeType:     input.FeeType,
		Method:      input.Method,
		UnitPrice:   input.UnitPrice,
		Unit:        input.Unit,
		TierPayload: input.TierPayload,
	}

	// A tiered quotation with a broken payload still prices (flat
	// fallback), but reject it up front when the caller supplies one.
	if quotation.Method == models.MethodTiered && quotation.TierPayload != "" {
		if _, err := quotation.Tiers(); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid tier payload: "+err.Error())
			return
		}
	}

	if err := config.DB.Create(&quotation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create quotation")
		return
	}

	c.JSON(http.StatusCreated, quotation)
}

// GetQuotations retrieves quotations, optionally filtered by building
func GetQuotations(c *gin.Context) {
	query := config.DB.Model(&models.PriceQuotation{})

	if buildingID := c.Query("buildingId"); buildingID != "" {
		buildingUUID, err := uuid.Parse(buildingID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid building ID format")
			return
		}
		query = query.Where("building_id = ?", buildingUUID)
	}

	var quotations []models.PriceQuotation
	if err := query.Find(&quotations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quotations")
		return
	}

	c.JSON(http.StatusOK, quotations)
}

// UpdateQuotation updates an existing quotation
func UpdateQuotation(c *gin.Context) {
	quotationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quotation ID format")
		return
	}

	var input UpdateQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var quotation models.PriceQuotation
	if err := config.DB.Where("id = ?", quotationUUID).First(&quotation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quotation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Method != nil {
		quotation.Method = *input.Method
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Unit price must not be negative")
			return
		}
		quotation.UnitPrice = *input.UnitPrice
	}
	if input.Unit != nil {
		quotation.Unit = *input.Unit
	}
	if input.TierPayload != nil {
		quotation.TierPayload = *input.TierPayload
	}

	if quotation.Method == models.MethodTiered && quotation.TierPayload != "" {
		if _, err := quotation.Tiers(); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid tier payload: "+err.Error())
			return
		}
	}

	if err := config.DB.Save(&quotation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quotation")
		return
	}

	c.JSON(http.StatusOK, quotation)
}

// DeleteQuotation soft deletes a quotation
func DeleteQuotation(c *gin.Context) {
	quotationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quotation ID format")
		return
	}

	var quotation models.PriceQuotation
	if err := config.DB.Where("id = ?", quotationUUID).First(&quotation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quotation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&quotation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quotation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quotation deleted successfully"})
}
