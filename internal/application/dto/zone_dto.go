package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// ZoneRequest input to create or update a delivery zone.
type ZoneRequest struct {
	Name               string           `json:"name" validate:"required"`
	ZoneType           string           `json:"zone_type" validate:"required"`
	DeliveryFee        decimal.Decimal  `json:"delivery_fee"`
	DefaultB2BPrice    *decimal.Decimal `json:"default_b2b_price"`
	DefaultB2CPrice    *decimal.Decimal `json:"default_b2c_price"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	CoverageAreas      []string         `json:"coverage_areas"`
	Active             *bool            `json:"active"`
}

// ZoneResponse delivery zone output.
type ZoneResponse struct {
	ID                 string           `json:"id"`
	CompanyID          string           `json:"company_id"`
	Name               string           `json:"name"`
	ZoneType           string           `json:"zone_type"`
	DeliveryFee        decimal.Decimal  `json:"delivery_fee"`
	DefaultB2BPrice    *decimal.Decimal `json:"default_b2b_price,omitempty"`
	DefaultB2CPrice    *decimal.Decimal `json:"default_b2c_price,omitempty"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	CoverageAreas      []string         `json:"coverage_areas,omitempty"`
	Active             bool             `json:"active"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// NewZoneResponse maps a zone entity.
func NewZoneResponse(z *entity.DeliveryZone) ZoneResponse {
	return ZoneResponse{
		ID:                 z.ID,
		CompanyID:          z.CompanyID,
		Name:               z.Name,
		ZoneType:           z.ZoneType,
		DeliveryFee:        z.DeliveryFee,
		DefaultB2BPrice:    z.DefaultB2BPrice,
		DefaultB2CPrice:    z.DefaultB2CPrice,
		DiscountPercentage: z.DiscountPercentage,
		CoverageAreas:      z.CoverageAreas,
		Active:             z.Active,
		CreatedAt:          z.CreatedAt,
		UpdatedAt:          z.UpdatedAt,
	}
}

// AssignProductsRequest bulk-assigns products to a zone with shared overrides.
type AssignProductsRequest struct {
	ProductIDs  []string         `json:"product_ids" validate:"required,min=1"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	B2BPrice    *decimal.Decimal `json:"b2b_price"`
	B2CPrice    *decimal.Decimal `json:"b2c_price"`
	MinOrderQty *int             `json:"min_order_qty"`
	Priority    int              `json:"priority" validate:"min=1,max=10"`
	Active      *bool            `json:"active"`
}

// AssignmentResponse product-zone assignment output.
type AssignmentResponse struct {
	ID                  string           `json:"id"`
	ProductID           string           `json:"product_id"`
	ZoneID              string           `json:"zone_id"`
	OverrideBasePrice   *decimal.Decimal `json:"override_base_price,omitempty"`
	OverrideB2BPrice    *decimal.Decimal `json:"override_b2b_price,omitempty"`
	OverrideB2CPrice    *decimal.Decimal `json:"override_b2c_price,omitempty"`
	OverrideMinOrderQty *int             `json:"override_min_order_qty,omitempty"`
	Priority            int              `json:"priority"`
	Active              bool             `json:"active"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// NewAssignmentResponse maps an assignment entity.
func NewAssignmentResponse(a *entity.ProductZoneAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:                  a.ID,
		ProductID:           a.ProductID,
		ZoneID:              a.ZoneID,
		OverrideBasePrice:   a.OverrideBasePrice,
		OverrideB2BPrice:    a.OverrideB2BPrice,
		OverrideB2CPrice:    a.OverrideB2CPrice,
		OverrideMinOrderQty: a.OverrideMinOrderQty,
		Priority:            a.Priority,
		Active:              a.Active,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// ResolveZoneRequest picks the winning assignment among candidate zones.
type ResolveZoneRequest struct {
	ProductID string   `json:"product_id" validate:"required"`
	ZoneIDs   []string `json:"zone_ids" validate:"required,min=1"`
}

// ZoneStatsResponse aggregate zone counters.
type ZoneStatsResponse struct {
	TotalZones       int             `json:"total_zones"`
	ActiveZones      int             `json:"active_zones"`
	TotalAssignments int             `json:"total_assignments"`
	AvgDeliveryFee   decimal.Decimal `json:"avg_delivery_fee"`
}

// EffectivePriceResponse resolved price output.
type EffectivePriceResponse struct {
	ProductID    string          `json:"product_id"`
	ZoneID       string          `json:"zone_id"`
	CustomerType string          `json:"customer_type"`
	Price        decimal.Decimal `json:"price"`
}
