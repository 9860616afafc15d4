package services

import (
	"log"

	"aparta-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingService resolves the cost of a consumption quantity against a
// building's tariffs. It never fails on missing or bad configuration:
// an absent tariff prices to zero and a broken tier payload falls back
// to the flat unit price, so batch invoicing is never blocked by one
// bad quotation.
type PricingService struct {
	store BillingStore
}

func NewPricingService(store BillingStore) *PricingService {
	return &PricingService{store: store}
}

// ResolvePrice returns the amount owed for quantity units of the fee
// type under the building's tariff, or zero when no tariff exists.
func (s *PricingService) ResolvePrice(buildingID uuid.UUID, feeType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	quotation, err := s.store.GetQuotation(buildingID, feeType)
	if err != nil {
		return decimal.Zero, err
	}
	if quotation == nil {
		return decimal.Zero, nil
	}
	return PriceForConsumption(quotation, quantity), nil
}

// PriceForConsumption prices a quantity under a single quotation.
func PriceForConsumption(q *models.PriceQuotation, quantity decimal.Decimal) decimal.Decimal {
	if quantity.IsNegative() {
		quantity = decimal.Zero
	}

	if q.Method != models.MethodTiered {
		return quantity.Mul(q.UnitPrice)
	}

	tiers, err := q.Tiers()
	if err != nil {
		// Documented fallback: a missing or unparseable tier table prices
		// the whole quantity at the flat unit price.
		log.Printf("quotation %s (%s): unusable tier payload, falling back to flat price: %v", q.ID, q.FeeType, err)
		return quantity.Mul(q.UnitPrice)
	}

	return priceTiered(tiers, quantity)
}

// priceTiered walks the tiers in ascending order, pricing each covered
// portion at its tier's unit price until the quantity is exhausted.
// The last tier may be open-ended (nil ToValue).
func priceTiered(tiers []models.Tier, quantity decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	covered := decimal.Zero

	for _, tier := range tiers {
		if covered.GreaterThanOrEqual(quantity) {
			break
		}

		ceiling := quantity
		if tier.ToValue != nil && tier.ToValue.LessThan(quantity) {
			ceiling = *tier.ToValue
		}

		portion := ceiling.Sub(covered)
		if portion.IsNegative() || portion.IsZero() {
			continue
		}

		total = total.Add(portion.Mul(tier.UnitPrice))
		covered = covered.Add(portion)
	}

	return total
}
