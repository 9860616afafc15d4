package services

import (
	"errors"

	"aparta-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the database-backed BillingStore used by the controllers.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetBuilding(id uuid.UUID) (*models.Building, error) {
	var building models.Building
	if err := s.db.Where("id = ?", id).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &building, nil
}

func (s *GormStore) GetApartment(id uuid.UUID) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := s.db.Where("id = ?", id).First(&apartment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &apartment, nil
}

func (s *GormStore) ListEligibleApartments(buildingID uuid.UUID) ([]models.Apartment, error) {
	var apartments []models.Apartment
	err := s.db.
		Where("building_id = ? AND occupancy_status = ?", buildingID, models.OccupancyOccupied).
		Find(&apartments).Error
	return apartments, err
}

func (s *GormStore) GetMeter(id uuid.UUID) (*models.Meter, error) {
	var meter models.Meter
	if err := s.db.Where("id = ?", id).First(&meter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meter, nil
}

func (s *GormStore) ListActiveMeters() ([]models.Meter, error) {
	var meters []models.Meter
	err := s.db.Where("is_active = ?", true).Find(&meters).Error
	return meters, err
}

func (s *GormStore) GetQuotation(buildingID uuid.UUID, feeType string) (*models.PriceQuotation, error) {
	var quotation models.PriceQuotation
	err := s.db.
		Where("building_id = ? AND fee_type = ?", buildingID, feeType).
		First(&quotation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quotation, nil
}

func (s *GormStore) GetReading(apartmentID, meterID uuid.UUID, billingPeriod string) (*models.MeterReading, error) {
	var reading models.MeterReading
	err := s.db.
		Where("apartment_id = ? AND meter_id = ? AND billing_period = ?", apartmentID, meterID, billingPeriod).
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

func (s *GormStore) LatestReadingBefore(apartmentID, meterID uuid.UUID, billingPeriod string) (*models.MeterReading, error) {
	// YYYY-MM keys order correctly as strings.
	var reading models.MeterReading
	err := s.db.
		Where("apartment_id = ? AND meter_id = ? AND billing_period < ?", apartmentID, meterID, billingPeriod).
		Order("billing_period DESC").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

func (s *GormStore) SaveReading(reading *models.MeterReading) error {
	return s.db.Save(reading).Error
}

func (s *GormStore) ListUnbilledReadings(buildingID uuid.UUID, billingPeriod string) ([]models.MeterReading, error) {
	apartmentIDs := s.db.Model(&models.Apartment{}).
		Select("id").
		Where("building_id = ?", buildingID)

	// FOR UPDATE serializes concurrent generation runs on the same rows.
	var readings []models.MeterReading
	err := s.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("billing_period = ? AND invoice_item_id IS NULL AND apartment_id IN (?)", billingPeriod, apartmentIDs).
		Order("apartment_id, fee_type").
		Find(&readings).Error
	return readings, err
}

func (s *GormStore) CountRecordedApartments(buildingID uuid.UUID, feeType, billingPeriod string) (int64, error) {
	var count int64
	err := s.db.Model(&models.MeterReading{}).
		Joins("JOIN apartments ON apartments.id = meter_readings.apartment_id").
		Where("apartments.building_id = ? AND apartments.occupancy_status = ? AND apartments.deleted_at IS NULL", buildingID, models.OccupancyOccupied).
		Where("meter_readings.fee_type = ? AND meter_readings.billing_period = ?", feeType, billingPeriod).
		Distinct("meter_readings.apartment_id").
		Count(&count).Error
	return count, err
}

func (s *GormStore) GetInvoice(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.Preload("Items").Where("id = ?", id).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (s *GormStore) FindPendingInvoice(apartmentID uuid.UUID, billingPeriod string) (*models.Invoice, error) {
	marker := models.BillingPeriodMarker(billingPeriod)

	var invoice models.Invoice
	err := s.db.
		Where("apartment_id = ? AND status = ? AND description LIKE ?",
			apartmentID, models.InvoiceStatusPending, "%"+marker+"%").
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (s *GormStore) SaveInvoice(invoice *models.Invoice) error {
	return s.db.Save(invoice).Error
}

func (s *GormStore) CreateInvoiceItem(item *models.InvoiceItem) error {
	return s.db.Create(item).Error
}

func (s *GormStore) LinkReadingToItem(readingID, itemID uuid.UUID) error {
	res := s.db.Model(&models.MeterReading{}).
		Where("id = ? AND invoice_item_id IS NULL", readingID).
		Update("invoice_item_id", itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReadingAlreadyBilled
	}
	return nil
}

func (s *GormStore) InTransaction(fn func(tx BillingStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
