package onboarding_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hrunx/Gasable-sub001/internal/application/onboarding"
)

// ──────────────────────────────────────────────────────────────────────────────
// Draft builders
// ──────────────────────────────────────────────────────────────────────────────

func validStoreDraft() onboarding.StoreDraft {
	return onboarding.StoreDraft{
		Category:        "physical",
		Name:            "Gas Station Central",
		CRNumber:        "CR-1010101010",
		VATNumber:       "VAT-300123456",
		Phone:           "+966500000001",
		Email:           "central@example.com",
		City:            "Riyadh",
		FullAddress:     "King Fahd Rd 12, Riyadh",
		PickupEnabled:   true,
		DeliveryEnabled: true,
		InvoicingMethod: "merchant",
	}
}

func validProductDraft() onboarding.ProductDraft {
	return onboarding.ProductDraft{
		Name:        "LPG Cylinder 12kg",
		Brand:       "Gasable",
		Type:        "cylinder",
		Category:    "fuel",
		BasePrice:   decimal.RequireFromString("45.00"),
		B2BPrice:    decimal.RequireFromString("40.00"),
		B2CPrice:    decimal.RequireFromString("48.00"),
		MinOrderQty: 1,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Store stage
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateStore_ValidDraftPasses(t *testing.T) {
	assert.Empty(t, onboarding.ValidateStore(validStoreDraft()))
}

func TestValidateStore_MissingFieldsListedIndividually(t *testing.T) {
	d := validStoreDraft()
	d.Name = ""
	d.VATNumber = "   "
	d.FullAddress = ""

	defects := onboarding.ValidateStore(d)
	assert.Len(t, defects, 3, "one defect per missing field")
	assert.Contains(t, defects, "store name is required")
	assert.Contains(t, defects, "VAT number is required")
	assert.Contains(t, defects, "full address is required")
}

func TestValidateStore_EmptyDraftReportsEveryRequirement(t *testing.T) {
	defects := onboarding.ValidateStore(onboarding.StoreDraft{})
	assert.Len(t, defects, 6)
}

// ──────────────────────────────────────────────────────────────────────────────
// Product sub-steps
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateProductGeneral_RequiresIdentityFields(t *testing.T) {
	p := validProductDraft()
	assert.Empty(t, onboarding.ValidateProductGeneral(p))

	p.Brand = ""
	p.Type = " "
	defects := onboarding.ValidateProductGeneral(p)
	assert.Len(t, defects, 2)
	assert.Contains(t, defects, "product brand is required")
	assert.Contains(t, defects, "product type is required")
}

func TestValidateProductPricing_AllPricesMustBePositive(t *testing.T) {
	p := validProductDraft()
	assert.Empty(t, onboarding.ValidateProductPricing(p))

	p.B2BPrice = decimal.Zero
	defects := onboarding.ValidateProductPricing(p)
	assert.Len(t, defects, 1)
	assert.Contains(t, defects[0], "B2B price")
}

func TestValidateProductPricing_NegativePriceAndZeroQtyFail(t *testing.T) {
	p := validProductDraft()
	p.BasePrice = decimal.RequireFromString("-1")
	p.MinOrderQty = 0

	defects := onboarding.ValidateProductPricing(p)
	assert.Len(t, defects, 2)
}

func TestValidateLogistics_AlwaysPasses(t *testing.T) {
	assert.Nil(t, onboarding.ValidateLogistics(onboarding.LogisticsDraft{}))
	assert.Nil(t, onboarding.ValidateLogistics(onboarding.LogisticsDraft{ShipmentMode: "own_fleet"}))
}
