package services

import (
	"aparta-backend/models"

	"github.com/google/uuid"
)

// BillingStore is the persistence surface the billing services run on.
// Finder methods return (nil, nil) when the row does not exist; the
// services map that to their typed not-found errors.
//
// The production implementation is GormStore. Tests run the services
// against an in-memory implementation.
type BillingStore interface {
	GetBuilding(id uuid.UUID) (*models.Building, error)
	GetApartment(id uuid.UUID) (*models.Apartment, error)
	ListEligibleApartments(buildingID uuid.UUID) ([]models.Apartment, error)

	GetMeter(id uuid.UUID) (*models.Meter, error)
	ListActiveMeters() ([]models.Meter, error)

	GetQuotation(buildingID uuid.UUID, feeType string) (*models.PriceQuotation, error)

	GetReading(apartmentID, meterID uuid.UUID, billingPeriod string) (*models.MeterReading, error)
	LatestReadingBefore(apartmentID, meterID uuid.UUID, billingPeriod string) (*models.MeterReading, error)
	SaveReading(reading *models.MeterReading) error

	// ListUnbilledReadings returns the building's readings for the period
	// whose billed-link is still null. Inside a transaction the rows are
	// locked so that two concurrent generation runs for the same
	// (building, period) serialize instead of double-billing.
	ListUnbilledReadings(buildingID uuid.UUID, billingPeriod string) ([]models.MeterReading, error)

	// CountRecordedApartments counts distinct eligible apartments of the
	// building with a reading of the fee type for the period.
	CountRecordedApartments(buildingID uuid.UUID, feeType, billingPeriod string) (int64, error)

	GetInvoice(id uuid.UUID) (*models.Invoice, error)
	FindPendingInvoice(apartmentID uuid.UUID, billingPeriod string) (*models.Invoice, error)
	SaveInvoice(invoice *models.Invoice) error
	CreateInvoiceItem(item *models.InvoiceItem) error

	// LinkReadingToItem sets the billed-link. It fails with
	// ErrReadingAlreadyBilled when the link is already set, so a racing
	// second writer fails cleanly rather than double-billing.
	LinkReadingToItem(readingID, itemID uuid.UUID) error

	// InTransaction runs fn against a store bound to a single
	// all-or-nothing transaction. Any error rolls the whole unit back.
	InTransaction(fn func(tx BillingStore) error) error
}
