package postgres

import (
	"context"
	"fmt"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implements VehicleRepository over PostgreSQL.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository builds the adapter.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persists a new vehicle.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, company_id, store_id, plate_number, model, fuel_type, capacity_kg, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.CompanyID, v.StoreID, v.PlateNumber, v.Model, v.FuelType, v.CapacityKg, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// ListByStore lists a store's vehicles.
func (r *VehicleRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Vehicle, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, store_id, plate_number, model, fuel_type, capacity_kg, created_at
		 FROM vehicles WHERE store_id = $1 ORDER BY created_at`, storeID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.CompanyID, &v.StoreID, &v.PlateNumber, &v.Model, &v.FuelType, &v.CapacityKg, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

var _ repository.DriverRepository = (*DriverRepo)(nil)

// DriverRepo implements DriverRepository over PostgreSQL.
type DriverRepo struct {
	q Querier
}

// NewDriverRepository builds the adapter.
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

// Create persists a new driver.
func (r *DriverRepo) Create(ctx context.Context, d *entity.Driver) error {
	query := `
		INSERT INTO drivers (id, company_id, store_id, vehicle_id, name, phone, license_number, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CompanyID, d.StoreID, d.VehicleID, d.Name, d.Phone, d.LicenseNumber, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// ListByStore lists a store's drivers.
func (r *DriverRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Driver, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, store_id, coalesce(vehicle_id::text, ''), name, phone, license_number, created_at
		 FROM drivers WHERE store_id = $1 ORDER BY created_at`, storeID)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.StoreID, &d.VehicleID, &d.Name, &d.Phone, &d.LicenseNumber, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
