package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hrunx/Gasable-sub001/internal/domain"
	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/internal/domain/repository"
)

var _ repository.ZoneRepository = (*ZoneRepo)(nil)

// ZoneRepo implements ZoneRepository over PostgreSQL. Assignment rows carry
// an ON DELETE CASCADE foreign key, so deleting a zone removes them in the
// same statement.
type ZoneRepo struct {
	q Querier
}

// NewZoneRepository builds the adapter.
func NewZoneRepository(q Querier) *ZoneRepo {
	return &ZoneRepo{q: q}
}

const zoneColumns = `id, company_id, name, zone_type, delivery_fee, default_b2b_price,
	default_b2c_price, discount_percentage, coverage_areas, active, created_at, updated_at`

// Create persists a new zone.
func (r *ZoneRepo) Create(ctx context.Context, z *entity.DeliveryZone) error {
	areas, err := json.Marshal(z.CoverageAreas)
	if err != nil {
		return fmt.Errorf("encode coverage areas: %w", err)
	}
	query := `
		INSERT INTO delivery_zones (` + zoneColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		z.ID, z.CompanyID, z.Name, z.ZoneType, z.DeliveryFee, z.DefaultB2BPrice,
		z.DefaultB2CPrice, z.DiscountPercentage, areas, z.Active, z.CreatedAt, z.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert zone: %w", err)
	}
	return nil
}

// Update rewrites an existing zone.
func (r *ZoneRepo) Update(ctx context.Context, z *entity.DeliveryZone) error {
	areas, err := json.Marshal(z.CoverageAreas)
	if err != nil {
		return fmt.Errorf("encode coverage areas: %w", err)
	}
	query := `
		UPDATE delivery_zones SET name = $2, zone_type = $3, delivery_fee = $4,
			default_b2b_price = $5, default_b2c_price = $6, discount_percentage = $7,
			coverage_areas = $8, active = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		z.ID, z.Name, z.ZoneType, z.DeliveryFee, z.DefaultB2BPrice, z.DefaultB2CPrice,
		z.DiscountPercentage, areas, z.Active, z.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update zone: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a zone by id.
func (r *ZoneRepo) GetByID(ctx context.Context, id string) (*entity.DeliveryZone, error) {
	row := r.q.QueryRow(ctx, `SELECT `+zoneColumns+` FROM delivery_zones WHERE id = $1`, id)
	z, err := scanZone(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone: %w", err)
	}
	return z, nil
}

// ListByCompany lists a company's zones.
func (r *ZoneRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.DeliveryZone, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+zoneColumns+` FROM delivery_zones WHERE company_id = $1 ORDER BY created_at`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryZone
	for rows.Next() {
		z, err := scanZone(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		list = append(list, z)
	}
	return list, rows.Err()
}

// Delete removes a zone; its assignments go with it via the FK cascade.
func (r *ZoneRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM delivery_zones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete zone: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanZone(scan func(...any) error) (*entity.DeliveryZone, error) {
	var z entity.DeliveryZone
	var areas []byte
	err := scan(
		&z.ID, &z.CompanyID, &z.Name, &z.ZoneType, &z.DeliveryFee, &z.DefaultB2BPrice,
		&z.DefaultB2CPrice, &z.DiscountPercentage, &areas, &z.Active, &z.CreatedAt, &z.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(areas) > 0 {
		if err := json.Unmarshal(areas, &z.CoverageAreas); err != nil {
			return nil, fmt.Errorf("decode coverage areas: %w", err)
		}
	}
	return &z, nil
}
