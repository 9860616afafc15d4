// controllers/contract.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"aparta-backend/config"
	"aparta-backend/models"
	"aparta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateContractInput defines the expected JSON structure for creating a contract
type CreateContractInput struct {
	ApartmentID uuid.UUID       `json:"apartmentId" binding:"required"`
	TenantName  string          `json:"tenantName" binding:"required"`
	TenantPhone string          `json:"tenantPhone"`
	StartDate   time.Time       `json:"startDate" binding:"required"`
	EndDate     *time.Time      `json:"endDate"`
	MonthlyRent decimal.Decimal `json:"monthlyRent"`
}

// CreateContract creates a tenancy contract and marks the apartment occupied
func CreateContract(c *gin.Context) {
	var input CreateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.TenantPhone != "" && !utils.ValidatePhone(input.TenantPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if input.MonthlyRent.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Monthly rent must not be negative")
		return
	}

	// Validate apartment exists
	var apartment models.Apartment
	if err := config.DB.Where("id = ?", input.ApartmentID).First(&apartment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Apartment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Only one active contract per apartment
	var existing models.Contract
	if err := config.DB.Where("apartment_id = ? AND status = ?", input.ApartmentID, models.ContractStatusActive).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Apartment already has an active contract")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	contract := models.Contract{
		ApartmentID: input.ApartmentID,
		TenantName:  input.TenantName,
		TenantPhone: input.TenantPhone,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		MonthlyRent: input.MonthlyRent,
		Status:      models.ContractStatusActive,
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&contract).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create contract")
		return
	}

	// The active contract is what makes the apartment count as occupied
	if err := tx.Model(&models.Apartment{}).Where("id = ?", input.ApartmentID).
		Update("occupancy_status", models.OccupancyOccupied).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update apartment occupancy")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, contract)
}

// GetContracts retrieves contracts, optionally filtered by apartment
func GetContracts(c *gin.Context) {
	query := config.DB.Model(&models.Contract{})

	if apartmentID := c.Query("apartmentId"); apartmentID != "" {
		apartmentUUID, err := uuid.Parse(apartmentID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid apartment ID format")
			return
		}
		query = query.Where("apartment_id = ?", apartmentUUID)
	}

	var contracts []models.Contract
	if err := query.Find(&contracts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contracts")
		return
	}

	c.JSON(http.StatusOK, contracts)
}

// TerminateContract ends a contract and marks the apartment vacant
func TerminateContract(c *gin.Context) {
	contractUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contract ID format")
		return
	}

	var contract models.Contract
	if err := config.DB.Where("id = ?", contractUUID).First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if contract.Status == models.ContractStatusTerminated {
		utils.RespondWithError(c, http.StatusConflict, "Contract already terminated")
		return
	}

	now := time.Now()

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	contract.Status = models.ContractStatusTerminated
	contract.EndDate = &now
	if err := tx.Save(&contract).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to terminate contract")
		return
	}

	if err := tx.Model(&models.Apartment{}).Where("id = ?", contract.ApartmentID).
		Update("occupancy_status", models.OccupancyVacant).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update apartment occupancy")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, contract)
}
