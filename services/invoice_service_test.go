package services_test

import (
	"testing"

	"aparta-backend/models"
	"aparta-backend/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoicesConsolidatesPerApartment(t *testing.T) {
	store := newMemStore()
	building := store.addBuilding()
	apartment := store.addApartment(building.ID, "APT-101", models.OccupancyOccupied)
	elec := store.addMeter("ELEC-1", models.FeeTypeElectric, true)
	water := store.addMeter("WATER-1", models.FeeTypeWater, true)
	gas := store.addMeter("GAS-1", models.FeeTypeGas, true)
	store.addFlatQuotation(building.ID, models.FeeTypeElectric, 2000)
	store.addFlatQuotation(building.ID, models.FeeTypeWater, 9000)
	store.addFlatQuotation(building.ID, models.FeeTypeGas, 12000)

	store.addReading(apartment.ID, elec.ID, models.FeeTypeElectric, "2025-10", 100, 160)
	store.addReading(apartment.ID, water.ID, models.FeeTypeWater, "2025-10", 10, 22)
	store.addReading(apartment.ID, gas.ID, models.FeeTypeGas, "2025-10", 5, 8)

	svc := services.NewInvoiceService(store)
	processed, err := svc.GenerateInvoices(building.ID, "2025-10")

	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	require.Len(t, store.invoices, 1, "one invoice per apartment per period")
	require.Len(t, store.items, 3)

	invoice := store.invoices[0]
	want := decimal.NewFromInt(60*2000 + 12*9000 + 3*12000)
	assert.True(t, invoice.Total.Equal(want), "invoice total must equal the sum of its lines, got %s", invoice.Total)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, "2025-10", models.InvoiceBillingPeriod(invoice.Description))

	for _, r := range store.readings {
		assert.True(t, r.IsBilled(), "every selected reading gets its billed-link set")
	}
}

func TestGenerateInvoicesIsIdempotent(t *testing.T) {
	store := newMemStore()
	building := store.addBuilding()
	apartment := store.addApartment(building.ID, "APT-101", models.OccupancyOccupied)
	elec := store.addMeter("ELEC-1", models.FeeTypeElectric, true)
	store.addFlatQuotation(building.ID, models.FeeTypeElectric, 2000)
	store.addReading(apartment.ID, elec.ID, models.FeeTypeElectric, "2025-10", 100, 160)

	svc := services.NewInvoiceService(store)

	processed, err := svc.GenerateInvoices(building.ID, "2025-10")
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	totalAfterFirst := store.invoices[0].Total

	processed, err = svc.GenerateInvoices(building.ID, "2025-10")
	require.NoError(t, err)
	assert.Equal(t, 0, processed, "a re-run with nothing new bills nothing")
	assert.Len(t, store.invoices, 1)
	assert.Len(t, store.items, 1)
	assert.True(t, store.invoices[0].Total.Equal(totalAfterFirst), "totals must not drift on re-runs")
}

func TestGenerateInvoicesSkipsUnconfiguredFeeTypes(t *testing.T) {
	store := newMemStore()
	building := store.addBuilding()
	apartment := store.addApartment(building.ID, "APT-101", models.OccupancyOccupied)
	elec := store.addMeter("ELEC-1", models.FeeTypeElectric, true)
	water := store.addMeter("WATER-1", models.FeeTypeWater, true)
	store.addFlatQuotation(building.ID, models.FeeTypeElectric, 2000)
	// Water has no quotation for this building.

	store.addReading(apartment.ID, elec.ID, models.FeeTypeElectric, "2025-10", 0, 60)
	store.addReading(apartment.ID, water.ID, models.FeeTypeWater, "2025-10", 0, 15)

	svc := services.NewInvoiceService(store)
	processed, err := svc.GenerateInvoices(building.ID, "2025-10")

	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Len(t, store.items, 1)

	waterReading, err := store.GetReading(apartment.ID, water.ID, "2025-10")
	require.NoError(t, err)
	assert.False(t, waterReading.IsBilled(), "the skipped reading stays eligible for a later run")
}

func TestGenerateInvoicesReusesPendingInvoice(t *testing.T) {
	store := newMemStore()
	building := store.addBuilding()
	apartment := store.addApartment(building.ID, "APT-101", models.OccupancyOccupied)
	elec := store.addMeter("ELEC-1", models.FeeTypeElectric, true)
	store.addFlatQuotation(building.ID, models.FeeTypeElectric, 2000)
	store.addReading(apartment.ID, elec.ID, models.FeeTypeElectric, "2025-10", 100, 160)

	existing := models.Invoice{
		ID:            uuid.New(),
		ApartmentID:   apartment.ID,
		InvoiceNumber: "INV-2025-10-SEED01",
		Status:        models.InvoiceStatusPending,
		Description:   "Parking fee. " + models.BillingPeriodMarker("2025-10"),
		Total:         decimal.NewFromInt(50000),
	}
	store.invoices = append(store.invoices, existing)

	svc := services.NewInvoiceService(store)
	processed, err := svc.GenerateInvoices(building.ID, "2025-10")

	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	require.Len(t, store.invoices, 1, "the pending invoice for the period is extended, not duplicated")

	invoice := store.invoices[0]
	assert.Equal(t, existing.ID, invoice.ID)
	assert.True(t, invoice.Total.Equal(decimal.NewFromInt(50000+60*2000)), "got %s", invoice.Total)
	require.Len(t, store.items, 1)
	assert.Equal(t, existing.ID, store.items[0].InvoiceID)
}

func TestGenerateInvoicesIgnoresPaidAndOtherPeriodInvoices(t *testing.T) {
	store := newMemStore()
	building := store.addBuilding()
	apartment := store.addApartment(building.ID, "APT-101", models.OccupancyOccupied)
	elec := store.addMeter("ELEC-1", models.FeeTypeElectric, true)
	store.addFlatQuotation(building.ID, models.FeeTypeElectric, 2000)
	store.addReading(apartment.ID, elec.ID, models.FeeTypeElectric, "2025-10", 0, 60)

	store.invoices = append(store.invoices,
		models.Invoice{
			ID: uuid.New(), ApartmentID: apartment.ID, InvoiceNumber: "INV-2025-10-PAID01",
			Status:      models.InvoiceStatusPaid,
			Description: "Utility charges. " + models.BillingPeriodMarker("2025-10"),
		},
		models.Invoice{
			ID: uuid.New(), ApartmentID: apartment.ID, InvoiceNumber: "INV-2025-09-OLD001",
			Status:      models.InvoiceStatusPending,
			Description: "Utility charges. " + models.BillingPeriodMarker("2025-09"),
		},
	)

	svc := services.NewInvoiceService(store)
	processed, err := svc.GenerateInvoices(building.ID, "2025-10")

	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Len(t, store.invoices, 3, "a fresh pending invoice is created for the period")
}

func TestGenerateInvoicesTieredPricing(t *testing.T) {
	store := newMemStore()
	building := store.addBuilding()
	apartment := store.addApartment(building.ID, "APT-101", models.OccupancyOccupied)
	elec := store.addMeter("ELEC-1", models.FeeTypeElectric, true)
	store.quotations = append(store.quotations, models.PriceQuotation{
		ID:          uuid.New(),
		BuildingID:  building.ID,
		FeeType:     models.FeeTypeElectric,
		Method:      models.MethodTiered,
		UnitPrice:   decimal.NewFromInt(2000),
		TierPayload: residentialTiers,
	})
	store.addReading(apartment.ID, elec.ID, models.FeeTypeElectric, "2025-10", 0, 150)

	svc := services.NewInvoiceService(store)
	processed, err := svc.GenerateInvoices(building.ID, "2025-10")

	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	require.Len(t, store.items, 1)
	assert.True(t, store.items[0].TotalPrice.Equal(decimal.NewFromInt(305000)),
		"got %s", store.items[0].TotalPrice)
}

func TestGenerateInvoicesRollsBackOnFailure(t *testing.T) {
	store := newMemStore()
	building := store.addBuilding()
	apartment := store.addApartment(building.ID, "APT-101", models.OccupancyOccupied)
	elec := store.addMeter("ELEC-1", models.FeeTypeElectric, true)
	water := store.addMeter("WATER-1", models.FeeTypeWater, true)
	store.addFlatQuotation(building.ID, models.FeeTypeElectric, 2000)
	store.addFlatQuotation(building.ID, models.FeeTypeWater, 9000)
	store.addReading(apartment.ID, elec.ID, models.FeeTypeElectric, "2025-10", 0, 60)
	store.addReading(apartment.ID, water.ID, models.FeeTypeWater, "2025-10", 0, 15)

	store.failItemAt = 2

	svc := services.NewInvoiceService(store)
	processed, err := svc.GenerateInvoices(building.ID, "2025-10")

	require.ErrorIs(t, err, errStoreFailure)
	assert.Equal(t, 0, processed)
	assert.Empty(t, store.invoices, "the whole run is rolled back")
	assert.Empty(t, store.items)
	for _, r := range store.readings {
		assert.False(t, r.IsBilled(), "no billed-link survives a failed run")
	}
}

func TestGenerateInvoicesValidation(t *testing.T) {
	store := newMemStore()
	building := store.addBuilding()
	svc := services.NewInvoiceService(store)

	t.Run("bad billing period", func(t *testing.T) {
		_, err := svc.GenerateInvoices(building.ID, "2025/10")
		assert.True(t, services.IsValidationError(err), "got %v", err)
	})

	t.Run("unknown building", func(t *testing.T) {
		_, err := svc.GenerateInvoices(uuid.New(), "2025-10")
		assert.ErrorIs(t, err, services.ErrBuildingNotFound)
	})
}

func TestMarkInvoicePaid(t *testing.T) {
	store := newMemStore()
	invoice := models.Invoice{
		ID:            uuid.New(),
		ApartmentID:   uuid.New(),
		InvoiceNumber: "INV-2025-10-ABC123",
		Status:        models.InvoiceStatusPending,
		Total:         decimal.NewFromInt(120000),
	}
	store.invoices = append(store.invoices, invoice)

	svc := services.NewInvoiceService(store)

	paid, err := svc.MarkInvoicePaid(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	firstPaidAt := *paid.PaidAt

	again, err := svc.MarkInvoicePaid(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, again.Status)
	require.NotNil(t, again.PaidAt)
	assert.Equal(t, firstPaidAt, *again.PaidAt, "paying twice must not move the paid timestamp")

	_, err = svc.MarkInvoicePaid(uuid.New())
	assert.ErrorIs(t, err, services.ErrInvoiceNotFound)
}
