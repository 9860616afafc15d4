package services

import (
	"fmt"
	"time"

	"aparta-backend/models"
	"aparta-backend/utils"

	"github.com/google/uuid"
)

// InvoiceService turns a building's unbilled readings for a period
// into consolidated invoices, one per apartment. The whole run is a
// single transaction: either every selected reading is billed or none
// is. Because only readings with a null billed-link are selected, and
// the link is set inside the same transaction that writes the line, a
// successful run leaves nothing behind for a re-run to pick up.
type InvoiceService struct {
	store BillingStore
}

func NewInvoiceService(store BillingStore) *InvoiceService {
	return &InvoiceService{store: store}
}

// GenerateInvoices bills all unbilled readings for the building and
// period and returns how many readings were turned into invoice lines.
// A second call with no new readings returns 0 with no error. Readings
// for fee types with no quotation are skipped, not errored.
func (s *InvoiceService) GenerateInvoices(buildingID uuid.UUID, billingPeriod string) (int, error) {
	if !utils.ValidateBillingPeriod(billingPeriod) {
		return 0, NewValidationError("billing period must be YYYY-MM, got %q", billingPeriod)
	}

	building, err := s.store.GetBuilding(buildingID)
	if err != nil {
		return 0, err
	}
	if building == nil {
		return 0, ErrBuildingNotFound
	}

	processed := 0
	err = s.store.InTransaction(func(tx BillingStore) error {
		readings, err := tx.ListUnbilledReadings(buildingID, billingPeriod)
		if err != nil {
			return err
		}

		// Group by apartment, keeping selection order stable.
		groups := make(map[uuid.UUID][]models.MeterReading)
		var order []uuid.UUID
		for _, r := range readings {
			if _, ok := groups[r.ApartmentID]; !ok {
				order = append(order, r.ApartmentID)
			}
			groups[r.ApartmentID] = append(groups[r.ApartmentID], r)
		}

		for _, apartmentID := range order {
			if err := s.generateForApartment(tx, buildingID, apartmentID, billingPeriod, groups[apartmentID], &processed); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("invoice generation for period %s: %w", billingPeriod, err)
	}

	return processed, nil
}

func (s *InvoiceService) generateForApartment(tx BillingStore, buildingID, apartmentID uuid.UUID, billingPeriod string, readings []models.MeterReading, processed *int) error {
	// Resolve quotations up front; readings whose fee type has no
	// quotation stay unbilled until one is configured.
	var billable []models.MeterReading
	quotations := make(map[string]*models.PriceQuotation)
	for _, r := range readings {
		q, ok := quotations[r.FeeType]
		if !ok {
			var err error
			q, err = tx.GetQuotation(buildingID, r.FeeType)
			if err != nil {
				return err
			}
			quotations[r.FeeType] = q
		}
		if q == nil {
			continue
		}
		billable = append(billable, r)
	}
	if len(billable) == 0 {
		return nil
	}

	invoice, err := tx.FindPendingInvoice(apartmentID, billingPeriod)
	if err != nil {
		return err
	}
	if invoice == nil {
		invoice = &models.Invoice{
			ApartmentID:   apartmentID,
			InvoiceNumber: "INV-" + billingPeriod + "-" + utils.GenerateRandomString(6),
			InvoiceDate:   time.Now(),
			Status:        models.InvoiceStatusPending,
			Description:   "Utility charges. " + models.BillingPeriodMarker(billingPeriod),
		}
		if err := tx.SaveInvoice(invoice); err != nil {
			return err
		}
	}

	total := invoice.Total
	for _, r := range billable {
		quotation := quotations[r.FeeType]
		consumption := r.Consumption()
		amount := PriceForConsumption(quotation, consumption).Round(2)

		item := &models.InvoiceItem{
			InvoiceID:   invoice.ID,
			FeeType:     r.FeeType,
			Description: r.FeeType + " consumption " + billingPeriod,
			Quantity:    consumption,
			UnitPrice:   quotation.UnitPrice,
			TotalPrice:  amount,
		}
		if err := tx.CreateInvoiceItem(item); err != nil {
			return err
		}

		// Billed-link transition, guarded inside this transaction.
		if err := tx.LinkReadingToItem(r.ID, item.ID); err != nil {
			return err
		}

		total = total.Add(amount)
		*processed++
	}

	invoice.Total = total
	return tx.SaveInvoice(invoice)
}

// MarkInvoicePaid flips a pending invoice to paid.
func (s *InvoiceService) MarkInvoicePaid(invoiceID uuid.UUID) (*models.Invoice, error) {
	var result *models.Invoice
	err := s.store.InTransaction(func(tx BillingStore) error {
		invoice, err := tx.GetInvoice(invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return ErrInvoiceNotFound
		}
		if invoice.Status == models.InvoiceStatusPaid {
			result = invoice
			return nil
		}

		now := time.Now()
		invoice.Status = models.InvoiceStatusPaid
		invoice.PaidAt = &now
		if err := tx.SaveInvoice(invoice); err != nil {
			return err
		}
		result = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
