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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements ProductRepository over PostgreSQL. The flattened
// attribute list and the optional zone scope are stored as jsonb.
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, store_id, name, brand, type, category, description,
	base_price, b2b_price, b2c_price, min_order_qty, attributes, zone_ids, created_at, updated_at`

// Create persists a new product.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}
	zones, err := json.Marshal(p.ZoneIDs)
	if err != nil {
		return fmt.Errorf("encode zone ids: %w", err)
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.StoreID, p.Name, p.Brand, p.Type, p.Category, p.Description,
		p.BasePrice, p.B2BPrice, p.B2CPrice, p.MinOrderQty, attrs, zones, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by id.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListByStore lists a store's products with pagination.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update rewrites an existing product.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}
	zones, err := json.Marshal(p.ZoneIDs)
	if err != nil {
		return fmt.Errorf("encode zone ids: %w", err)
	}
	query := `
		UPDATE products SET name = $2, brand = $3, type = $4, category = $5, description = $6,
			base_price = $7, b2b_price = $8, b2c_price = $9, min_order_qty = $10,
			attributes = $11, zone_ids = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Brand, p.Type, p.Category, p.Description,
		p.BasePrice, p.B2BPrice, p.B2CPrice, p.MinOrderQty, attrs, zones, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a product by id.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(scan func(...any) error) (*entity.Product, error) {
	var p entity.Product
	var attrs, zones []byte
	err := scan(
		&p.ID, &p.CompanyID, &p.StoreID, &p.Name, &p.Brand, &p.Type, &p.Category, &p.Description,
		&p.BasePrice, &p.B2BPrice, &p.B2CPrice, &p.MinOrderQty, &attrs, &zones, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &p.Attributes); err != nil {
			return nil, fmt.Errorf("decode attributes: %w", err)
		}
	}
	if len(zones) > 0 {
		if err := json.Unmarshal(zones, &p.ZoneIDs); err != nil {
			return nil, fmt.Errorf("decode zone ids: %w", err)
		}
	}
	return &p, nil
}
