package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Zone types.
const (
	ZoneUrban    = "urban"
	ZoneSuburban = "suburban"
	ZoneRural    = "rural"
	ZoneExpress  = "express"
	ZoneEconomy  = "economy"
)

// Customer pricing tracks.
const (
	CustomerB2B = "B2B"
	CustomerB2C = "B2C"
)

// ValidZoneType reports whether t is one of the known zone types.
func ValidZoneType(t string) bool {
	switch t {
	case ZoneUrban, ZoneSuburban, ZoneRural, ZoneExpress, ZoneEconomy:
		return true
	}
	return false
}

// DeliveryZone is a company-scoped delivery-pricing region. Zones outlive a
// single onboarding session and are reusable across stores.
type DeliveryZone struct {
	ID                 string
	CompanyID          string
	Name               string
	ZoneType           string // urban | suburban | rural | express | economy
	DeliveryFee        decimal.Decimal
	DefaultB2BPrice    *decimal.Decimal
	DefaultB2CPrice    *decimal.Decimal
	DiscountPercentage decimal.Decimal
	CoverageAreas      []string
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProductZoneAssignment links a product to a zone with optional price and
// quantity overrides. At most one row exists per (product, zone) pair.
// Priority (1-10, higher wins) breaks ties when several zones could apply.
type ProductZoneAssignment struct {
	ID                  string
	ProductID           string
	ZoneID              string
	OverrideBasePrice   *decimal.Decimal
	OverrideB2BPrice    *decimal.Decimal
	OverrideB2CPrice    *decimal.Decimal
	OverrideMinOrderQty *int
	Priority            int
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ZoneStats aggregate counters for the zones dashboard.
type ZoneStats struct {
	TotalZones       int
	ActiveZones      int
	TotalAssignments int
	AvgDeliveryFee   decimal.Decimal
}
