// controllers/reading.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"aparta-backend/config"
	"aparta-backend/models"
	"aparta-backend/services"
	"aparta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordReadingInput defines the expected JSON structure for recording a meter reading
type RecordReadingInput struct {
	ApartmentID   uuid.UUID       `json:"apartmentId" binding:"required"`
	MeterID       uuid.UUID       `json:"meterId" binding:"required"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
	BillingPeriod string          `json:"billingPeriod" binding:"required"`
}

// RecordReading records (or corrects) a reading for an apartment meter
// and billing period
func RecordReading(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input RecordReadingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewReadingService(services.NewGormStore(config.DB))
	result, err := svc.RecordReading(input.ApartmentID, input.MeterID, input.CurrentValue, userUUID, input.BillingPeriod)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reading":       result.Reading,
		"consumption":   result.Consumption,
		"estimatedCost": result.EstimatedCost,
	})
}

// GetReadings lists readings for a building and billing period
func GetReadings(c *gin.Context) {
	buildingUUID, err := uuid.Parse(c.Query("buildingId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid building ID format")
		return
	}

	period := c.Query("billingPeriod")
	if period == "" {
		period = utils.CurrentBillingPeriod(time.Now())
	}
	if !utils.ValidateBillingPeriod(period) {
		utils.RespondWithError(c, http.StatusBadRequest, "Billing period must be YYYY-MM")
		return
	}

	var readings []models.MeterReading
	err = config.DB.
		Joins("JOIN apartments ON apartments.id = meter_readings.apartment_id").
		Where("apartments.building_id = ? AND meter_readings.billing_period = ?", buildingUUID, period).
		Find(&readings).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve readings")
		return
	}

	c.JSON(http.StatusOK, readings)
}

// GetRecordingProgress reports reading completion per meter type for a
// building and billing period
func GetRecordingProgress(c *gin.Context) {
	buildingUUID, err := uuid.Parse(c.Query("buildingId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid building ID format")
		return
	}

	period := c.Query("billingPeriod")
	if period == "" {
		period = utils.CurrentBillingPeriod(time.Now())
	}

	svc := services.NewProgressService(services.NewGormStore(config.DB))
	report, err := svc.GetProgress(buildingUUID, period)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// respondWithServiceError maps billing service errors onto HTTP codes
func respondWithServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidationError(err):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrBuildingNotFound),
		errors.Is(err, services.ErrApartmentNotFound),
		errors.Is(err, services.ErrMeterNotFound),
		errors.Is(err, services.ErrInvoiceNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrMeterInactive):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrReadingAlreadyBilled):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
