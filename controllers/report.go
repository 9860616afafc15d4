// controllers/report.go
package controllers

import (
	"net/http"

	"aparta-backend/config"
	"aparta-backend/models"
	"aparta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportController handles all reporting functions
type ReportController struct{}

// BillingSummary represents the per-building billing report for a period
type BillingSummary struct {
	BuildingID      uuid.UUID        `json:"buildingId"`
	BillingPeriod   string           `json:"billingPeriod"`
	TotalBilled     decimal.Decimal  `json:"totalBilled"`
	TotalCollected  decimal.Decimal  `json:"totalCollected"`
	InvoiceCount    int              `json:"invoiceCount"`
	PaidCount       int              `json:"paidCount"`
	FeeTypes        []FeeTypeSummary `json:"feeTypes"`
}

type FeeTypeSummary struct {
	FeeType     string          `json:"feeType"`
	Consumption decimal.Decimal `json:"consumption"`
	Amount      decimal.Decimal `json:"amount"`
}

// GetBillingReport returns billed totals and per-fee-type consumption
// for a building and billing period
func (rc *ReportController) GetBillingReport(c *gin.Context) {
	buildingUUID, err := uuid.Parse(c.Query("buildingId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid building ID format")
		return
	}

	period := c.Query("billingPeriod")
	if !utils.ValidateBillingPeriod(period) {
		utils.RespondWithError(c, http.StatusBadRequest, "Billing period must be YYYY-MM")
		return
	}

	marker := models.BillingPeriodMarker(period)

	summary := BillingSummary{
		BuildingID:     buildingUUID,
		BillingPeriod:  period,
		TotalBilled:    decimal.Zero,
		TotalCollected: decimal.Zero,
	}

	var invoices []models.Invoice
	err = config.DB.
		Joins("JOIN apartments ON apartments.id = invoices.apartment_id").
		Where("apartments.building_id = ? AND invoices.description LIKE ?", buildingUUID, "%"+marker+"%").
		Find(&invoices).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	for _, invoice := range invoices {
		summary.InvoiceCount++
		summary.TotalBilled = summary.TotalBilled.Add(invoice.Total)
		if invoice.Status == models.InvoiceStatusPaid {
			summary.PaidCount++
			summary.TotalCollected = summary.TotalCollected.Add(invoice.Total)
		}
	}

	feeTypes, err := rc.getFeeTypeSummaries(buildingUUID, period)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate fee types")
		return
	}
	summary.FeeTypes = feeTypes

	c.JSON(http.StatusOK, summary)
}

func (rc *ReportController) getFeeTypeSummaries(buildingID uuid.UUID, period string) ([]FeeTypeSummary, error) {
	type row struct {
		FeeType     string
		Consumption decimal.Decimal
		Amount      decimal.Decimal
	}

	var rows []row
	err := config.DB.Table("meter_readings").
		Select("meter_readings.fee_type, SUM(meter_readings.current_value - meter_readings.previous_value) as consumption, COALESCE(SUM(invoice_items.total_price), 0) as amount").
		Joins("JOIN apartments ON apartments.id = meter_readings.apartment_id").
		Joins("LEFT JOIN invoice_items ON invoice_items.id = meter_readings.invoice_item_id").
		Where("apartments.building_id = ? AND meter_readings.billing_period = ? AND meter_readings.deleted_at IS NULL", buildingID, period).
		Group("meter_readings.fee_type").
		Order("meter_readings.fee_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]FeeTypeSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, FeeTypeSummary{
			FeeType:     r.FeeType,
			Consumption: r.Consumption,
			Amount:      r.Amount,
		})
	}
	return summaries, nil
}
