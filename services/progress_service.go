package services

import (
	"math"

	"aparta-backend/utils"

	"github.com/google/uuid"
)

// ProgressService reports how far reading collection has come for a
// building and billing period. Read-only; safe to call repeatedly.
type ProgressService struct {
	store BillingStore
}

func NewProgressService(store BillingStore) *ProgressService {
	return &ProgressService{store: store}
}

type MeterTypeProgress struct {
	FeeType  string  `json:"feeType"`
	Recorded int     `json:"recorded"`
	Percent  float64 `json:"percent"`
}

type ProgressReport struct {
	BuildingID      uuid.UUID           `json:"buildingId"`
	BillingPeriod   string              `json:"billingPeriod"`
	TotalApartments int                 `json:"totalApartments"`
	MeterTypes      []MeterTypeProgress `json:"meterTypes"`
}

// GetProgress returns, per active meter type, the share of occupied
// apartments with a recorded reading for the period. Percentages are
// rounded to two decimals; a building with no occupied apartments
// reports zero for every type.
func (s *ProgressService) GetProgress(buildingID uuid.UUID, billingPeriod string) (*ProgressReport, error) {
	if !utils.ValidateBillingPeriod(billingPeriod) {
		return nil, NewValidationError("billing period must be YYYY-MM, got %q", billingPeriod)
	}

	building, err := s.store.GetBuilding(buildingID)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, ErrBuildingNotFound
	}

	apartments, err := s.store.ListEligibleApartments(buildingID)
	if err != nil {
		return nil, err
	}
	total := len(apartments)

	meters, err := s.store.ListActiveMeters()
	if err != nil {
		return nil, err
	}

	report := &ProgressReport{
		BuildingID:      buildingID,
		BillingPeriod:   billingPeriod,
		TotalApartments: total,
	}

	seen := make(map[string]bool)
	for _, meter := range meters {
		if seen[meter.FeeType] {
			continue
		}
		seen[meter.FeeType] = true

		recorded, err := s.store.CountRecordedApartments(buildingID, meter.FeeType, billingPeriod)
		if err != nil {
			return nil, err
		}

		percent := 0.0
		if total > 0 {
			percent = math.Round(float64(recorded)/float64(total)*100*100) / 100
		}

		report.MeterTypes = append(report.MeterTypes, MeterTypeProgress{
			FeeType:  meter.FeeType,
			Recorded: int(recorded),
			Percent:  percent,
		})
	}

	return report, nil
}
