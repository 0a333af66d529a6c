package pricing

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hrunx/Gasable-sub001/internal/domain"
	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/internal/domain/repository"
	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

// Service owns delivery zones and product-to-zone price assignments, and
// resolves the effective price of a product in a delivery context.
type Service struct {
	zones       repository.ZoneRepository
	assignments repository.AssignmentRepository
	products    repository.ProductRepository
	log         *logger.Logger
}

// NewService builds the pricing service.
func NewService(zones repository.ZoneRepository, assignments repository.AssignmentRepository, products repository.ProductRepository, log *logger.Logger) *Service {
	return &Service{zones: zones, assignments: assignments, products: products, log: log}
}

// ResolvePrice computes the effective price of a product delivered into a
// zone for the given customer type. Resolution order: assignment override for
// the customer type, assignment base override, zone default for the customer
// type, product base price.
func ResolvePrice(product *entity.Product, zone *entity.DeliveryZone, a *entity.ProductZoneAssignment, customerType string) decimal.Decimal {
	if a != nil && a.Active {
		switch customerType {
		case entity.CustomerB2B:
			if a.OverrideB2BPrice != nil {
				return *a.OverrideB2BPrice
			}
		case entity.CustomerB2C:
			if a.OverrideB2CPrice != nil {
				return *a.OverrideB2CPrice
			}
		}
		if a.OverrideBasePrice != nil {
			return *a.OverrideBasePrice
		}
	}
	if zone != nil {
		switch customerType {
		case entity.CustomerB2B:
			if zone.DefaultB2BPrice != nil {
				return *zone.DefaultB2BPrice
			}
		case entity.CustomerB2C:
			if zone.DefaultB2CPrice != nil {
				return *zone.DefaultB2CPrice
			}
		}
	}
	return product.BasePrice
}

// EffectivePrice loads the product, zone and assignment and resolves.
// The customer type is case-insensitive ("b2b" and "B2B" are the same track).
func (s *Service) EffectivePrice(ctx context.Context, productID, zoneID, customerType string) (decimal.Decimal, error) {
	customerType = strings.ToUpper(customerType)
	if customerType != entity.CustomerB2B && customerType != entity.CustomerB2C {
		return decimal.Zero, domain.ErrInvalidInput
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	zone, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		return decimal.Zero, err
	}
	if zone == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	a, err := s.assignments.GetByPair(ctx, productID, zoneID)
	if err != nil {
		return decimal.Zero, err
	}
	return ResolvePrice(product, zone, a, customerType), nil
}

// ResolveZone picks the authoritative assignment when a product could match
// more than one applicable zone: the numerically highest priority wins. A tie
// among active applicable assignments is a data-entry error and is surfaced,
// never silently resolved.
func (s *Service) ResolveZone(ctx context.Context, productID string, candidateZoneIDs []string) (*entity.ProductZoneAssignment, error) {
	all, err := s.assignments.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	candidates := map[string]bool{}
	for _, id := range candidateZoneIDs {
		candidates[id] = true
	}

	var best *entity.ProductZoneAssignment
	tie := false
	for _, a := range all {
		if !a.Active || !candidates[a.ZoneID] {
			continue
		}
		switch {
		case best == nil || a.Priority > best.Priority:
			best = a
			tie = false
		case a.Priority == best.Priority:
			tie = true
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	if tie {
		return nil, domain.ErrPriorityTie
	}
	return best, nil
}

// Stats aggregates zone counters for a company. The average delivery fee over
// zero zones is zero, not a division error.
func (s *Service) Stats(ctx context.Context, companyID string) (*entity.ZoneStats, error) {
	zones, err := s.zones.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	stats := &entity.ZoneStats{TotalZones: len(zones), AvgDeliveryFee: decimal.Zero}
	sum := decimal.Zero
	for _, z := range zones {
		if z.Active {
			stats.ActiveZones++
		}
		sum = sum.Add(z.DeliveryFee)
	}
	if len(zones) > 0 {
		stats.AvgDeliveryFee = sum.Div(decimal.NewFromInt(int64(len(zones))))
	}
	count, err := s.assignments.CountAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	stats.TotalAssignments = count
	return stats, nil
}
