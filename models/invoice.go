package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice statuses.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// Invoice is one consolidated bill per (apartment, billing period).
// The billing period is tagged into the description with
// BillingPeriodMarker so generation can find and reuse a pending
// invoice instead of creating a second one.
type Invoice struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ApartmentID uuid.UUID `gorm:"type:uuid;index;not null"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null"`
	InvoiceDate   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status      string          `gorm:"type:varchar(20);default:'pending'"` // pending, paid
	Description string          `gorm:"type:text"`
	PaidAt      *time.Time

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID"`

	gorm.Model
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null"`

	FeeType     string `gorm:"type:varchar(20);not null"`
	Description string

	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`

	gorm.Model
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// BillingPeriodMarker is the tag embedded in an invoice description to
// scope it to a billing period, e.g. "BillingPeriod: 2025-10".
func BillingPeriodMarker(period string) string {
	return "BillingPeriod: " + period
}

// InvoiceBillingPeriod extracts the period from a tagged description,
// or "" if the description carries no marker.
func InvoiceBillingPeriod(description string) string {
	idx := strings.Index(description, "BillingPeriod: ")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimPrefix(description[idx:], "BillingPeriod: ")
	if len(rest) < 7 {
		return ""
	}
	return rest[:7]
}
