package models

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Calculation methods for a quotation.
const (
	MethodFlat   = "flat"
	MethodTiered = "tiered"
)

// PriceQuotation is the tariff for a (building, fee type) pair.
// UnitPrice is the flat price, and also the fallback price when the
// tier payload is missing or unparseable.
type PriceQuotation struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BuildingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_building_fee_type,priority:1"`
	FeeType    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_building_fee_type,priority:2"`

	Method    string          `gorm:"type:varchar(10);not null;default:'flat'"` // flat, tiered
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit      string          `gorm:"type:varchar(10)"` // kWh, m3

	// TierPayload is a JSON array of tiers ordered by fromValue, e.g.
	// [{"fromValue":0,"toValue":100,"unitPrice":1800},{"fromValue":101,"toValue":null,"unitPrice":2500}]
	// A null toValue marks the open-ended last tier.
	TierPayload string `gorm:"type:text"`

	gorm.Model
}

func (q *PriceQuotation) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}

// Tier is one consumption sub-range with its own unit price.
// A nil ToValue means the tier is open-ended.
type Tier struct {
	FromValue decimal.Decimal  `json:"fromValue"`
	ToValue   *decimal.Decimal `json:"toValue"`
	UnitPrice decimal.Decimal  `json:"unitPrice"`
}

var (
	ErrEmptyTierPayload   = errors.New("tier payload is empty")
	ErrInvalidTierPayload = errors.New("tier payload is invalid")
)

// Tiers parses the tier payload into an ascending list of tiers.
// Callers are expected to fall back to the flat UnitPrice on error.
func (q *PriceQuotation) Tiers() ([]Tier, error) {
	if q.TierPayload == "" {
		return nil, ErrEmptyTierPayload
	}

	var tiers []Tier
	if err := json.Unmarshal([]byte(q.TierPayload), &tiers); err != nil {
		return nil, errors.Join(ErrInvalidTierPayload, err)
	}
	if len(tiers) == 0 {
		return nil, ErrEmptyTierPayload
	}

	for _, t := range tiers {
		if t.FromValue.IsNegative() || t.UnitPrice.IsNegative() {
			return nil, ErrInvalidTierPayload
		}
		if t.ToValue != nil && t.ToValue.LessThan(t.FromValue) {
			return nil, ErrInvalidTierPayload
		}
	}

	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].FromValue.LessThan(tiers[j].FromValue)
	})

	return tiers, nil
}
