package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MeterReading is one row per (apartment, meter, billing period).
// InvoiceItemID is the billed-link: nil means the reading is still
// eligible for invoice generation; once set it is never cleared.
type MeterReading struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ApartmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reading_key,priority:1"`
	MeterID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reading_key,priority:2"`

	BillingPeriod string `gorm:"type:varchar(7);not null;uniqueIndex:idx_reading_key,priority:3"` // YYYY-MM
	FeeType       string `gorm:"type:varchar(20);not null;index"`                                 // denormalized from the meter

	PreviousValue decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CurrentValue  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReadingDate   time.Time       `gorm:"default:CURRENT_TIMESTAMP"`
	RecordedByID  uuid.UUID       `gorm:"type:uuid;index;not null"`

	InvoiceItemID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	gorm.Model
}

func (r *MeterReading) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// Consumption is the period's usage, always current minus previous.
func (r *MeterReading) Consumption() decimal.Decimal {
	return r.CurrentValue.Sub(r.PreviousValue)
}

// IsBilled reports whether the reading has been turned into an invoice line.
func (r *MeterReading) IsBilled() bool {
	return r.InvoiceItemID != nil
}
