package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Building struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Code    string    `gorm:"type:varchar(20);uniqueIndex;not null"` // e.g. "B001"
	Name    string    `gorm:"not null"`
	Address string
	Status  string `gorm:"type:varchar(20);default:'active'"` // active, inactive

	Apartments      []Apartment      `gorm:"foreignKey:BuildingID"`
	PriceQuotations []PriceQuotation `gorm:"foreignKey:BuildingID"`

	gorm.Model
}

func (b *Building) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
