package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fee types join meters to price quotations.
const (
	FeeTypeElectric = "ELECTRIC"
	FeeTypeWater    = "WATER"
	FeeTypeGas      = "GAS"
)

type Meter struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Code     string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	FeeType  string    `gorm:"type:varchar(20);not null"` // ELECTRIC, WATER, GAS
	Unit     string    `gorm:"type:varchar(10)"`          // kWh, m3
	IsActive bool      `gorm:"default:true"`

	Readings []MeterReading `gorm:"foreignKey:MeterID"`

	gorm.Model
}

func (m *Meter) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
