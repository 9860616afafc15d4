// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"

	"aparta-backend/config"
	"aparta-backend/models"
	"aparta-backend/services"
	"aparta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateInvoicesInput defines the expected JSON structure for an invoice generation run
type GenerateInvoicesInput struct {
	BuildingID    uuid.UUID `json:"buildingId" binding:"required"`
	BillingPeriod string    `json:"billingPeriod" binding:"required"`
}

// GenerateInvoices batches the building's unbilled readings for the
// period into consolidated invoices, one per apartment
func GenerateInvoices(c *gin.Context) {
	var input GenerateInvoicesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewInvoiceService(services.NewGormStore(config.DB))
	processed, err := svc.GenerateInvoices(input.BuildingID, input.BillingPeriod)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	// Best-effort tenant notification; generation already committed
	if processed > 0 {
		go services.NewNotificationService(config.DB).NotifyInvoicesIssued(input.BuildingID, input.BillingPeriod)
	}

	c.JSON(http.StatusOK, gin.H{
		"processedCount": processed,
		"billingPeriod":  input.BillingPeriod,
	})
}

// GetInvoices retrieves invoices, optionally filtered by apartment
func GetInvoices(c *gin.Context) {
	query := config.DB.Preload("Items")

	if apartmentID := c.Query("apartmentId"); apartmentID != "" {
		apartmentUUID, err := uuid.Parse(apartmentID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid apartment ID format")
			return
		}
		query = query.Where("apartment_id = ?", apartmentUUID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").
		Where("id = ?", invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// PayInvoice marks an invoice as paid
func PayInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	svc := services.NewInvoiceService(services.NewGormStore(config.DB))
	invoice, err := svc.MarkInvoicePaid(invoiceUUID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}
