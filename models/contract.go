package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contract statuses.
const (
	ContractStatusActive     = "active"
	ContractStatusTerminated = "terminated"
)

// Contract is a tenancy record. An active contract is what marks an
// apartment as occupied for billing purposes.
type Contract struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ApartmentID uuid.UUID `gorm:"type:uuid;index;not null"`
	TenantName  string    `gorm:"not null"`
	TenantPhone string

	StartDate   time.Time       `gorm:"not null"`
	EndDate     *time.Time
	MonthlyRent decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status      string          `gorm:"type:varchar(20);default:'active'"` // active, terminated

	gorm.Model
}

func (c *Contract) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
