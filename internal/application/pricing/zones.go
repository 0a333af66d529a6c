package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrunx/Gasable-sub001/internal/domain"
	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// ZoneInput carries the editable fields of a delivery zone.
type ZoneInput struct {
	Name               string
	ZoneType           string
	DeliveryFee        decimal.Decimal
	DefaultB2BPrice    *decimal.Decimal
	DefaultB2CPrice    *decimal.Decimal
	DiscountPercentage decimal.Decimal
	CoverageAreas      []string
	Active             *bool
}

func (in ZoneInput) validate() error {
	if in.Name == "" || !entity.ValidZoneType(in.ZoneType) {
		return domain.ErrInvalidInput
	}
	if in.DeliveryFee.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateZone validates and persists a new company-scoped zone.
func (s *Service) CreateZone(ctx context.Context, companyID string, in ZoneInput) (*entity.DeliveryZone, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	z := &entity.DeliveryZone{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		Name:               in.Name,
		ZoneType:           in.ZoneType,
		DeliveryFee:        in.DeliveryFee,
		DefaultB2BPrice:    in.DefaultB2BPrice,
		DefaultB2CPrice:    in.DefaultB2CPrice,
		DiscountPercentage: in.DiscountPercentage,
		CoverageAreas:      in.CoverageAreas,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if in.Active != nil {
		z.Active = *in.Active
	}
	if err := s.zones.Create(ctx, z); err != nil {
		return nil, err
	}
	return z, nil
}

// UpdateZone applies the input to an existing zone.
func (s *Service) UpdateZone(ctx context.Context, zoneID string, in ZoneInput) (*entity.DeliveryZone, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	z, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if z == nil {
		return nil, domain.ErrNotFound
	}
	z.Name = in.Name
	z.ZoneType = in.ZoneType
	z.DeliveryFee = in.DeliveryFee
	z.DefaultB2BPrice = in.DefaultB2BPrice
	z.DefaultB2CPrice = in.DefaultB2CPrice
	z.DiscountPercentage = in.DiscountPercentage
	z.CoverageAreas = in.CoverageAreas
	if in.Active != nil {
		z.Active = *in.Active
	}
	z.UpdatedAt = time.Now().UTC()
	if err := s.zones.Update(ctx, z); err != nil {
		return nil, err
	}
	return z, nil
}

// DeleteZone removes a zone. Every assignment referencing it is removed in
// the same call (the repository cascades).
func (s *Service) DeleteZone(ctx context.Context, zoneID string) error {
	z, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		return err
	}
	if z == nil {
		return domain.ErrNotFound
	}
	return s.zones.Delete(ctx, zoneID)
}

// ListZones lists a company's zones.
func (s *Service) ListZones(ctx context.Context, companyID string) ([]*entity.DeliveryZone, error) {
	return s.zones.ListByCompany(ctx, companyID)
}

// GetZone fetches one zone.
func (s *Service) GetZone(ctx context.Context, zoneID string) (*entity.DeliveryZone, error) {
	z, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if z == nil {
		return nil, domain.ErrNotFound
	}
	return z, nil
}

// Overrides are the optional per-assignment price and quantity overrides.
type Overrides struct {
	BasePrice   *decimal.Decimal
	B2BPrice    *decimal.Decimal
	B2CPrice    *decimal.Decimal
	MinOrderQty *int
	Priority    int
	Active      *bool
}

// AssignProductsToZone bulk-upserts the (product, zone) pairs with the given
// overrides. Re-assigning an existing pair updates it, never duplicates. The
// batch is not transactional: the first failure is returned as the aggregate
// result and earlier upserts stay committed.
func (s *Service) AssignProductsToZone(ctx context.Context, productIDs []string, zoneID string, ov Overrides) error {
	if ov.Priority < 1 || ov.Priority > 10 {
		return domain.ErrInvalidInput
	}
	z, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		return err
	}
	if z == nil {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	for _, productID := range productIDs {
		a := &entity.ProductZoneAssignment{
			ID:                  uuid.New().String(),
			ProductID:           productID,
			ZoneID:              zoneID,
			OverrideBasePrice:   ov.BasePrice,
			OverrideB2BPrice:    ov.B2BPrice,
			OverrideB2CPrice:    ov.B2CPrice,
			OverrideMinOrderQty: ov.MinOrderQty,
			Priority:            ov.Priority,
			Active:              true,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if ov.Active != nil {
			a.Active = *ov.Active
		}
		if err := s.assignments.Upsert(ctx, a); err != nil {
			return fmt.Errorf("assign product %s to zone %s: %w", productID, zoneID, err)
		}
	}
	return nil
}

// UpdateAssignment applies overrides to a single existing assignment.
func (s *Service) UpdateAssignment(ctx context.Context, productID, zoneID string, ov Overrides) (*entity.ProductZoneAssignment, error) {
	if ov.Priority < 1 || ov.Priority > 10 {
		return nil, domain.ErrInvalidInput
	}
	a, err := s.assignments.GetByPair(ctx, productID, zoneID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	a.OverrideBasePrice = ov.BasePrice
	a.OverrideB2BPrice = ov.B2BPrice
	a.OverrideB2CPrice = ov.B2CPrice
	a.OverrideMinOrderQty = ov.MinOrderQty
	a.Priority = ov.Priority
	if ov.Active != nil {
		a.Active = *ov.Active
	}
	a.UpdatedAt = time.Now().UTC()
	if err := s.assignments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// RemoveAssignment deletes a single (product, zone) assignment.
func (s *Service) RemoveAssignment(ctx context.Context, productID, zoneID string) error {
	a, err := s.assignments.GetByPair(ctx, productID, zoneID)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return s.assignments.Delete(ctx, productID, zoneID)
}

// ListAssignments lists a zone's assignments.
func (s *Service) ListAssignments(ctx context.Context, zoneID string) ([]*entity.ProductZoneAssignment, error) {
	return s.assignments.ListByZone(ctx, zoneID)
}
