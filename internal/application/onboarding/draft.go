package onboarding

import (
	"github.com/shopspring/decimal"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// WorkingDay is one weekday entry of the store schedule. AllDay and Closed
// are mutually exclusive with Open/Close editing; normalization clears the
// fixed hours whenever a flag is set.
type WorkingDay struct {
	Open   string `json:"open,omitempty"`  // "08:00"
	Close  string `json:"close,omitempty"` // "18:00"
	AllDay bool   `json:"all_day,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// Weekdays in schedule order. The working-hours map carries one entry per day.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// StoreDraft is the editable store data collected in the first stage.
type StoreDraft struct {
	Category        string                `json:"category"` // physical | cloud
	Name            string                `json:"name"`
	CRNumber        string                `json:"cr_number"`
	VATNumber       string                `json:"vat_number"`
	Phone           string                `json:"phone"`
	Email           string                `json:"email"`
	Description     string                `json:"description,omitempty"`
	City            string                `json:"city,omitempty"`
	District        string                `json:"district,omitempty"`
	FullAddress     string                `json:"full_address"`
	WorkingHours    map[string]WorkingDay `json:"working_hours,omitempty"`
	PickupEnabled   bool                  `json:"pickup_enabled"`
	DeliveryEnabled bool                  `json:"delivery_enabled"`
	InvoicingMethod string                `json:"invoicing_method"` // merchant | platform
}

// AttributeItem is one row of a typed attribute group.
type AttributeItem struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// ProductDraft is one product collected across the four product sub-tabs.
type ProductDraft struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`

	Mechanical []AttributeItem `json:"mechanical,omitempty"`
	Physical   []AttributeItem `json:"physical,omitempty"`
	Chemical   []AttributeItem `json:"chemical,omitempty"`
	Electrical []AttributeItem `json:"electrical,omitempty"`
	Fuel       []AttributeItem `json:"fuel,omitempty"`

	Certifications []string `json:"certifications,omitempty"`
	Standards      []string `json:"standards,omitempty"`
	SafetyNotes    string   `json:"safety_notes,omitempty"`

	BasePrice   decimal.Decimal `json:"base_price"`
	B2BPrice    decimal.Decimal `json:"b2b_price"`
	B2CPrice    decimal.Decimal `json:"b2c_price"`
	MinOrderQty int             `json:"min_order_qty"`

	ZoneIDs []string `json:"zone_ids,omitempty"` // optional scoped availability
}

// ProductAttributesDraft patches only the attribute sub-tab of a product
// draft, leaving identity and pricing untouched.
type ProductAttributesDraft struct {
	Mechanical []AttributeItem `json:"mechanical,omitempty"`
	Physical   []AttributeItem `json:"physical,omitempty"`
	Chemical   []AttributeItem `json:"chemical,omitempty"`
	Electrical []AttributeItem `json:"electrical,omitempty"`
	Fuel       []AttributeItem `json:"fuel,omitempty"`

	Certifications []string `json:"certifications,omitempty"`
	Standards      []string `json:"standards,omitempty"`
	SafetyNotes    string   `json:"safety_notes,omitempty"`
}

// ZoneDraft is a delivery zone requested during the logistics stage.
type ZoneDraft struct {
	Name               string           `json:"name"`
	ZoneType           string           `json:"zone_type"`
	DeliveryFee        decimal.Decimal  `json:"delivery_fee"`
	DefaultB2BPrice    *decimal.Decimal `json:"default_b2b_price,omitempty"`
	DefaultB2CPrice    *decimal.Decimal `json:"default_b2c_price,omitempty"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	CoverageAreas      []string         `json:"coverage_areas,omitempty"`
}

// VehicleDraft carries a client-generated TempID until the vehicle persists.
type VehicleDraft struct {
	TempID      string `json:"temp_id"`
	PlateNumber string `json:"plate_number"`
	Model       string `json:"model"`
	FuelType    string `json:"fuel_type,omitempty"`
	CapacityKg  int    `json:"capacity_kg,omitempty"`
}

// DriverDraft references its vehicle by TempID; the saver resolves it to the
// persisted vehicle id.
type DriverDraft struct {
	TempID        string `json:"temp_id"`
	VehicleTempID string `json:"vehicle_temp_id,omitempty"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number,omitempty"`
}

// LogisticsDraft is the data collected in the logistics stage. Vehicles and
// Drivers only matter when ShipmentMode is own_fleet.
type LogisticsDraft struct {
	ShipmentMode string         `json:"shipment_mode"` // third_party | logistics_partner | own_fleet
	Zones        []ZoneDraft    `json:"zones,omitempty"`
	Vehicles     []VehicleDraft `json:"vehicles,omitempty"`
	Drivers      []DriverDraft  `json:"drivers,omitempty"`
}

// normalizeStore enforces the store invariants centrally so they cannot be
// bypassed by individual field edits: a cloud store never offers pickup, and
// a working-day flag clears the fixed open/close pair.
func normalizeStore(d StoreDraft) StoreDraft {
	if d.Category == entity.StoreCategoryCloud {
		d.PickupEnabled = false
	}
	if d.WorkingHours != nil {
		for day, wd := range d.WorkingHours {
			if wd.AllDay || wd.Closed {
				wd.Open = ""
				wd.Close = ""
				if wd.Closed {
					wd.AllDay = false
				}
				d.WorkingHours[day] = wd
			}
		}
	}
	return d
}

// flattenAttributes folds the five typed groups plus certifications,
// standards and safety text into one ordered list so heterogeneous categories
// persist uniformly.
func flattenAttributes(p ProductDraft) []entity.ProductAttribute {
	var out []entity.ProductAttribute
	appendGroup := func(typ string, items []AttributeItem) {
		for _, it := range items {
			out = append(out, entity.ProductAttribute{Type: typ, Name: it.Name, Value: it.Value, Unit: it.Unit})
		}
	}
	appendGroup(entity.AttrMechanical, p.Mechanical)
	appendGroup(entity.AttrPhysical, p.Physical)
	appendGroup(entity.AttrChemical, p.Chemical)
	appendGroup(entity.AttrElectrical, p.Electrical)
	appendGroup(entity.AttrFuel, p.Fuel)
	for _, c := range p.Certifications {
		out = append(out, entity.ProductAttribute{Type: entity.AttrCertification, Name: c, Value: c})
	}
	for _, s := range p.Standards {
		out = append(out, entity.ProductAttribute{Type: entity.AttrStandard, Name: s, Value: s})
	}
	if p.SafetyNotes != "" {
		out = append(out, entity.ProductAttribute{Type: entity.AttrSafety, Name: "safety_notes", Value: p.SafetyNotes})
	}
	return out
}
