package repository

import (
	"context"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// VehicleRepository persistence port for fleet vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, v *entity.Vehicle) error
	ListByStore(ctx context.Context, storeID string) ([]*entity.Vehicle, error)
}

// DriverRepository persistence port for fleet drivers.
type DriverRepository interface {
	Create(ctx context.Context, d *entity.Driver) error
	ListByStore(ctx context.Context, storeID string) ([]*entity.Driver, error)
}
