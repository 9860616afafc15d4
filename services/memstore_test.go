package services_test

import (
	"errors"
	"sync"

	"aparta-backend/models"
	"aparta-backend/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory BillingStore for exercising the billing
// services without a database. InTransaction snapshots the slices and
// restores them on error, mirroring a rollback.
type memStore struct {
	mu sync.Mutex

	buildings  []models.Building
	apartments []models.Apartment
	meters     []models.Meter
	quotations []models.PriceQuotation
	readings   []models.MeterReading
	invoices   []models.Invoice
	items      []models.InvoiceItem

	// failItemAt makes the n-th CreateInvoiceItem call fail (1-based).
	failItemAt    int
	itemCallCount int
}

var errStoreFailure = errors.New("store failure")

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) GetBuilding(id uuid.UUID) (*models.Building, error) {
	for i := range s.buildings {
		if s.buildings[i].ID == id {
			b := s.buildings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetApartment(id uuid.UUID) (*models.Apartment, error) {
	for i := range s.apartments {
		if s.apartments[i].ID == id {
			a := s.apartments[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListEligibleApartments(buildingID uuid.UUID) ([]models.Apartment, error) {
	var out []models.Apartment
	for _, a := range s.apartments {
		if a.BuildingID == buildingID && a.OccupancyStatus == models.OccupancyOccupied {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) GetMeter(id uuid.UUID) (*models.Meter, error) {
	for i := range s.meters {
		if s.meters[i].ID == id {
			m := s.meters[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListActiveMeters() ([]models.Meter, error) {
	var out []models.Meter
	for _, m := range s.meters {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) GetQuotation(buildingID uuid.UUID, feeType string) (*models.PriceQuotation, error) {
	for i := range s.quotations {
		if s.quotations[i].BuildingID == buildingID && s.quotations[i].FeeType == feeType {
			q := s.quotations[i]
			return &q, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetReading(apartmentID, meterID uuid.UUID, billingPeriod string) (*models.MeterReading, error) {
	for i := range s.readings {
		r := s.readings[i]
		if r.ApartmentID == apartmentID && r.MeterID == meterID && r.BillingPeriod == billingPeriod {
			return &r, nil
		}
	}
	return nil, nil
}

func (s *memStore) LatestReadingBefore(apartmentID, meterID uuid.UUID, billingPeriod string) (*models.MeterReading, error) {
	var latest *models.MeterReading
	for i := range s.readings {
		r := s.readings[i]
		if r.ApartmentID != apartmentID || r.MeterID != meterID || r.BillingPeriod >= billingPeriod {
			continue
		}
		if latest == nil || r.BillingPeriod > latest.BillingPeriod {
			copy := r
			latest = &copy
		}
	}
	return latest, nil
}

func (s *memStore) SaveReading(reading *models.MeterReading) error {
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
		s.readings = append(s.readings, *reading)
		return nil
	}
	for i := range s.readings {
		if s.readings[i].ID == reading.ID {
			s.readings[i] = *reading
			return nil
		}
	}
	s.readings = append(s.readings, *reading)
	return nil
}

func (s *memStore) ListUnbilledReadings(buildingID uuid.UUID, billingPeriod string) ([]models.MeterReading, error) {
	var out []models.MeterReading
	for _, r := range s.readings {
		if r.BillingPeriod != billingPeriod || r.InvoiceItemID != nil {
			continue
		}
		apartment, _ := s.GetApartment(r.ApartmentID)
		if apartment != nil && apartment.BuildingID == buildingID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) CountRecordedApartments(buildingID uuid.UUID, feeType, billingPeriod string) (int64, error) {
	seen := make(map[uuid.UUID]bool)
	for _, r := range s.readings {
		if r.FeeType != feeType || r.BillingPeriod != billingPeriod {
			continue
		}
		apartment, _ := s.GetApartment(r.ApartmentID)
		if apartment == nil || apartment.BuildingID != buildingID {
			continue
		}
		if apartment.OccupancyStatus != models.OccupancyOccupied {
			continue
		}
		seen[r.ApartmentID] = true
	}
	return int64(len(seen)), nil
}

func (s *memStore) GetInvoice(id uuid.UUID) (*models.Invoice, error) {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			inv := s.invoices[i]
			return &inv, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindPendingInvoice(apartmentID uuid.UUID, billingPeriod string) (*models.Invoice, error) {
	for i := range s.invoices {
		inv := s.invoices[i]
		if inv.ApartmentID != apartmentID || inv.Status != models.InvoiceStatusPending {
			continue
		}
		if models.InvoiceBillingPeriod(inv.Description) == billingPeriod {
			return &inv, nil
		}
	}
	return nil, nil
}

func (s *memStore) SaveInvoice(invoice *models.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
		s.invoices = append(s.invoices, *invoice)
		return nil
	}
	for i := range s.invoices {
		if s.invoices[i].ID == invoice.ID {
			s.invoices[i] = *invoice
			return nil
		}
	}
	s.invoices = append(s.invoices, *invoice)
	return nil
}

func (s *memStore) CreateInvoiceItem(item *models.InvoiceItem) error {
	s.itemCallCount++
	if s.failItemAt > 0 && s.itemCallCount >= s.failItemAt {
		return errStoreFailure
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.items = append(s.items, *item)
	return nil
}

func (s *memStore) LinkReadingToItem(readingID, itemID uuid.UUID) error {
	for i := range s.readings {
		if s.readings[i].ID != readingID {
			continue
		}
		if s.readings[i].InvoiceItemID != nil {
			return services.ErrReadingAlreadyBilled
		}
		id := itemID
		s.readings[i].InvoiceItemID = &id
		return nil
	}
	return errors.New("reading not found")
}

func (s *memStore) InTransaction(fn func(tx services.BillingStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapReadings := append([]models.MeterReading(nil), s.readings...)
	snapInvoices := append([]models.Invoice(nil), s.invoices...)
	snapItems := append([]models.InvoiceItem(nil), s.items...)

	if err := fn(s); err != nil {
		s.readings = snapReadings
		s.invoices = snapInvoices
		s.items = snapItems
		return err
	}
	return nil
}

// Seed helpers

func (s *memStore) addBuilding() *models.Building {
	b := models.Building{ID: uuid.New(), Code: "B001", Name: "Tower A", Status: "active"}
	s.buildings = append(s.buildings, b)
	return &b
}

func (s *memStore) addApartment(buildingID uuid.UUID, code, status string) *models.Apartment {
	a := models.Apartment{ID: uuid.New(), BuildingID: buildingID, Code: code, OccupancyStatus: status}
	s.apartments = append(s.apartments, a)
	return &a
}

func (s *memStore) addMeter(code, feeType string, active bool) *models.Meter {
	m := models.Meter{ID: uuid.New(), Code: code, FeeType: feeType, IsActive: active}
	s.meters = append(s.meters, m)
	return &m
}

func (s *memStore) addFlatQuotation(buildingID uuid.UUID, feeType string, unitPrice int64) *models.PriceQuotation {
	q := models.PriceQuotation{
		ID:         uuid.New(),
		BuildingID: buildingID,
		FeeType:    feeType,
		Method:     models.MethodFlat,
		UnitPrice:  decimal.NewFromInt(unitPrice),
	}
	s.quotations = append(s.quotations, q)
	return &q
}

func (s *memStore) addReading(apartmentID, meterID uuid.UUID, feeType, period string, previous, current int64) *models.MeterReading {
	r := models.MeterReading{
		ID:            uuid.New(),
		ApartmentID:   apartmentID,
		MeterID:       meterID,
		FeeType:       feeType,
		BillingPeriod: period,
		PreviousValue: decimal.NewFromInt(previous),
		CurrentValue:  decimal.NewFromInt(current),
		RecordedByID:  uuid.New(),
	}
	s.readings = append(s.readings, r)
	return &r
}
