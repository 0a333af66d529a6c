package repository

import (
	"context"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// ZoneRepository persistence port for DeliveryZone.
// Delete must cascade-remove every assignment referencing the zone.
type ZoneRepository interface {
	Create(ctx context.Context, zone *entity.DeliveryZone) error
	Update(ctx context.Context, zone *entity.DeliveryZone) error
	GetByID(ctx context.Context, id string) (*entity.DeliveryZone, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.DeliveryZone, error)
	Delete(ctx context.Context, id string) error
}

// AssignmentRepository persistence port for ProductZoneAssignment.
// Upsert keeps the (product, zone) pair unique: re-assigning updates in place.
type AssignmentRepository interface {
	Upsert(ctx context.Context, a *entity.ProductZoneAssignment) error
	GetByPair(ctx context.Context, productID, zoneID string) (*entity.ProductZoneAssignment, error)
	ListByZone(ctx context.Context, zoneID string) ([]*entity.ProductZoneAssignment, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductZoneAssignment, error)
	Update(ctx context.Context, a *entity.ProductZoneAssignment) error
	Delete(ctx context.Context, productID, zoneID string) error
	CountAll(ctx context.Context, companyID string) (int, error)
}
