package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implements AssignmentRepository over PostgreSQL. The unique
// index on (product_id, zone_id) backs the upsert: re-assigning a pair
// updates in place, never duplicates.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository builds the adapter.
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `id, product_id, zone_id, override_base_price, override_b2b_price,
	override_b2c_price, override_min_order_qty, priority, active, created_at, updated_at`

// Upsert creates or updates the (product, zone) assignment.
func (r *AssignmentRepo) Upsert(ctx context.Context, a *entity.ProductZoneAssignment) error {
	query := `
		INSERT INTO product_zone_assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (product_id, zone_id) DO UPDATE SET
			override_base_price = EXCLUDED.override_base_price,
			override_b2b_price = EXCLUDED.override_b2b_price,
			override_b2c_price = EXCLUDED.override_b2c_price,
			override_min_order_qty = EXCLUDED.override_min_order_qty,
			priority = EXCLUDED.priority,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ProductID, a.ZoneID, a.OverrideBasePrice, a.OverrideB2BPrice,
		a.OverrideB2CPrice, a.OverrideMinOrderQty, a.Priority, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert assignment: %w", err)
	}
	return nil
}

// GetByPair fetches the assignment for (product, zone); nil when absent.
func (r *AssignmentRepo) GetByPair(ctx context.Context, productID, zoneID string) (*entity.ProductZoneAssignment, error) {
	row := r.q.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM product_zone_assignments WHERE product_id = $1 AND zone_id = $2`,
		productID, zoneID)
	a, err := scanAssignment(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

// ListByZone lists a zone's assignments.
func (r *AssignmentRepo) ListByZone(ctx context.Context, zoneID string) ([]*entity.ProductZoneAssignment, error) {
	return r.list(ctx,
		`SELECT `+assignmentColumns+` FROM product_zone_assignments WHERE zone_id = $1 ORDER BY priority DESC`,
		zoneID)
}

// ListByProduct lists a product's assignments across zones.
func (r *AssignmentRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductZoneAssignment, error) {
	return r.list(ctx,
		`SELECT `+assignmentColumns+` FROM product_zone_assignments WHERE product_id = $1 ORDER BY priority DESC`,
		productID)
}

// Update rewrites an existing assignment.
func (r *AssignmentRepo) Update(ctx context.Context, a *entity.ProductZoneAssignment) error {
	query := `
		UPDATE product_zone_assignments SET override_base_price = $3, override_b2b_price = $4,
			override_b2c_price = $5, override_min_order_qty = $6, priority = $7, active = $8,
			updated_at = $9
		WHERE product_id = $1 AND zone_id = $2`
	_, err := r.q.Exec(ctx, query,
		a.ProductID, a.ZoneID, a.OverrideBasePrice, a.OverrideB2BPrice, a.OverrideB2CPrice,
		a.OverrideMinOrderQty, a.Priority, a.Active, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// Delete removes one (product, zone) assignment.
func (r *AssignmentRepo) Delete(ctx context.Context, productID, zoneID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM product_zone_assignments WHERE product_id = $1 AND zone_id = $2`,
		productID, zoneID)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// CountAll counts the assignments whose zone belongs to the company.
func (r *AssignmentRepo) CountAll(ctx context.Context, companyID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `
		SELECT count(*)
		FROM product_zone_assignments a
		JOIN delivery_zones z ON z.id = a.zone_id
		WHERE z.company_id = $1`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count assignments: %w", err)
	}
	return count, nil
}

func (r *AssignmentRepo) list(ctx context.Context, query string, arg any) ([]*entity.ProductZoneAssignment, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductZoneAssignment
	for rows.Next() {
		a, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAssignment(scan func(...any) error) (*entity.ProductZoneAssignment, error) {
	var a entity.ProductZoneAssignment
	err := scan(
		&a.ID, &a.ProductID, &a.ZoneID, &a.OverrideBasePrice, &a.OverrideB2BPrice,
		&a.OverrideB2CPrice, &a.OverrideMinOrderQty, &a.Priority, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
