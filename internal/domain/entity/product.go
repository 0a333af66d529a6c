package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attribute group types. Heterogeneous attribute groups are flattened into a
// single ordered list of typed attributes before persisting.
const (
	AttrMechanical    = "mechanical"
	AttrPhysical      = "physical"
	AttrChemical      = "chemical"
	AttrElectrical    = "electrical"
	AttrFuel          = "fuel"
	AttrCertification = "certification"
	AttrStandard      = "standard"
	AttrSafety        = "safety"
)

// ProductAttribute is one flattened (type, name, value, unit) tuple.
type ProductAttribute struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Product represents a catalog product created during onboarding.
// BasePrice is the fallback when no zone pricing applies (see pricing resolver).
type Product struct {
	ID          string
	CompanyID   string
	StoreID     string
	Name        string
	Brand       string
	Type        string
	Category    string
	Description string
	BasePrice   decimal.Decimal
	B2BPrice    decimal.Decimal
	B2CPrice    decimal.Decimal
	MinOrderQty int
	Attributes  []ProductAttribute
	ZoneIDs     []string // optional scoped availability
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
