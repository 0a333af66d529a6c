package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hrunx/Gasable-sub001/internal/domain"
	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implements StoreRepository over PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository builds the adapter.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

const storeColumns = `id, company_id, name, category, cr_number, vat_number, phone, email,
	description, city, district, full_address, working_hours, pickup_enabled,
	delivery_enabled, invoicing_method, status, approval_submitted_at, draft_data,
	created_at, updated_at`

// Create persists a new store.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Name, s.Category, s.CRNumber, s.VATNumber, s.Phone, s.Email,
		s.Description, s.City, s.District, s.FullAddress, s.WorkingHours, s.PickupEnabled,
		s.DeliveryEnabled, s.InvoicingMethod, s.Status, s.ApprovalSubmittedAt, s.DraftData,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// Update rewrites the editable fields of an existing store. Status, draft
// data and the approval timestamp have their own dedicated updates.
func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) error {
	query := `
		UPDATE stores SET name = $2, category = $3, cr_number = $4, vat_number = $5,
			phone = $6, email = $7, description = $8, city = $9, district = $10,
			full_address = $11, working_hours = $12, pickup_enabled = $13,
			delivery_enabled = $14, invoicing_method = $15, updated_at = $16
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Category, s.CRNumber, s.VATNumber, s.Phone, s.Email,
		s.Description, s.City, s.District, s.FullAddress, s.WorkingHours,
		s.PickupEnabled, s.DeliveryEnabled, s.InvoicingMethod, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a store by id.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	return r.scanOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
}

// GetByCompany fetches the company's most recent store.
func (r *StoreRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Store, error) {
	return r.scanOne(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE company_id = $1 ORDER BY created_at DESC LIMIT 1`,
		companyID)
}

// SetPendingApproval flips the status and records the submission timestamp.
func (r *StoreRepo) SetPendingApproval(ctx context.Context, storeID string, submittedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stores SET status = $2, approval_submitted_at = $3, updated_at = now() WHERE id = $1`,
		storeID, entity.StoreStatusPendingApproval, submittedAt,
	)
	if err != nil {
		return fmt.Errorf("set pending approval: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDraftData writes the onboarding draft snapshot into the store row.
func (r *StoreRepo) UpdateDraftData(ctx context.Context, storeID string, draft json.RawMessage) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stores SET draft_data = $2, updated_at = now() WHERE id = $1`,
		storeID, draft,
	)
	if err != nil {
		return fmt.Errorf("update draft data: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetDraftData reads the stored draft snapshot; nil when none was saved.
func (r *StoreRepo) GetDraftData(ctx context.Context, storeID string) (json.RawMessage, error) {
	var data json.RawMessage
	err := r.q.QueryRow(ctx, `SELECT draft_data FROM stores WHERE id = $1`, storeID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft data: %w", err)
	}
	return data, nil
}

func (r *StoreRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Category, &s.CRNumber, &s.VATNumber, &s.Phone, &s.Email,
		&s.Description, &s.City, &s.District, &s.FullAddress, &s.WorkingHours, &s.PickupEnabled,
		&s.DeliveryEnabled, &s.InvoicingMethod, &s.Status, &s.ApprovalSubmittedAt, &s.DraftData,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implements BranchRepository over PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository builds the adapter.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create persists a new branch.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `
		INSERT INTO branches (id, store_id, company_id, name, address, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, b.ID, b.StoreID, b.CompanyID, b.Name, b.Address, b.IsDefault, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// ListByStore lists a store's branches.
func (r *BranchRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, store_id, company_id, name, address, is_default, created_at
		 FROM branches WHERE store_id = $1 ORDER BY created_at`, storeID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.StoreID, &b.CompanyID, &b.Name, &b.Address, &b.IsDefault, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
