package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Occupancy statuses. Only occupied apartments count toward the
// recording-progress denominator.
const (
	OccupancyOccupied = "occupied"
	OccupancyVacant   = "vacant"
	OccupancyUnsold   = "unsold"
)

type Apartment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BuildingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_building_apartment_code,priority:1"`
	Code       string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_building_apartment_code,priority:2"` // e.g. "APT-101"
	Floor      int
	Area       float64 // square meters

	OccupancyStatus string `gorm:"type:varchar(20);default:'vacant'"` // occupied, vacant, unsold

	Readings []MeterReading `gorm:"foreignKey:ApartmentID"`
	Invoices []Invoice      `gorm:"foreignKey:ApartmentID"`

	gorm.Model
}

func (a *Apartment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
