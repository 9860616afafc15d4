package services

import (
	"time"

	"aparta-backend/models"
	"aparta-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReadingService records periodic meter readings. One row exists per
// (apartment, meter, billing period): re-submitting for the same key
// corrects the stored reading instead of appending a duplicate.
type ReadingService struct {
	store   BillingStore
	pricing *PricingService
}

func NewReadingService(store BillingStore) *ReadingService {
	return &ReadingService{
		store:   store,
		pricing: NewPricingService(store),
	}
}

// ReadingResult is what a successful record returns. EstimatedCost is
// display-only: it is not persisted and billing recomputes the price.
type ReadingResult struct {
	Reading       *models.MeterReading
	Consumption   decimal.Decimal
	EstimatedCost decimal.Decimal
}

// RecordReading upserts the reading for (apartment, meter, period).
// For a first submission the previous value is taken from the latest
// prior period's current value, or zero with no history. Negative
// current values and negative derived consumption are rejected before
// anything is written. A reading that has already been billed is
// immutable: correcting it would desync it from its invoice line.
func (s *ReadingService) RecordReading(apartmentID, meterID uuid.UUID, currentValue decimal.Decimal, recordedBy uuid.UUID, billingPeriod string) (*ReadingResult, error) {
	if !utils.ValidateBillingPeriod(billingPeriod) {
		return nil, NewValidationError("billing period must be YYYY-MM, got %q", billingPeriod)
	}
	if currentValue.IsNegative() {
		return nil, NewValidationError("current reading value must not be negative")
	}

	apartment, err := s.store.GetApartment(apartmentID)
	if err != nil {
		return nil, err
	}
	if apartment == nil {
		return nil, ErrApartmentNotFound
	}

	meter, err := s.store.GetMeter(meterID)
	if err != nil {
		return nil, err
	}
	if meter == nil {
		return nil, ErrMeterNotFound
	}
	if !meter.IsActive {
		return nil, ErrMeterInactive
	}

	reading, err := s.store.GetReading(apartmentID, meterID, billingPeriod)
	if err != nil {
		return nil, err
	}
	if reading != nil && reading.IsBilled() {
		return nil, ErrReadingAlreadyBilled
	}

	if reading == nil {
		previous := decimal.Zero
		prior, err := s.store.LatestReadingBefore(apartmentID, meterID, billingPeriod)
		if err != nil {
			return nil, err
		}
		if prior != nil {
			previous = prior.CurrentValue
		}

		reading = &models.MeterReading{
			ApartmentID:   apartmentID,
			MeterID:       meterID,
			BillingPeriod: billingPeriod,
			FeeType:       meter.FeeType,
			PreviousValue: previous,
		}
	}

	if currentValue.LessThan(reading.PreviousValue) {
		return nil, NewValidationError(
			"current reading %s is below previous reading %s",
			currentValue.String(), reading.PreviousValue.String())
	}

	reading.CurrentValue = currentValue
	reading.ReadingDate = time.Now()
	reading.RecordedByID = recordedBy

	if err := s.store.SaveReading(reading); err != nil {
		return nil, err
	}

	consumption := reading.Consumption()
	estimated, err := s.pricing.ResolvePrice(apartment.BuildingID, meter.FeeType, consumption)
	if err != nil {
		return nil, err
	}

	return &ReadingResult{
		Reading:       reading,
		Consumption:   consumption,
		EstimatedCost: estimated,
	}, nil
}
