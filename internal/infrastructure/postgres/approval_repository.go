package postgres

import (
	"context"
	"fmt"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/internal/domain/repository"
)

var _ repository.ApprovalRepository = (*ApprovalRepo)(nil)

// ApprovalRepo implements ApprovalRepository over PostgreSQL.
type ApprovalRepo struct {
	q Querier
}

// NewApprovalRepository builds the adapter.
func NewApprovalRepository(q Querier) *ApprovalRepo {
	return &ApprovalRepo{q: q}
}

// Create persists a new approval audit row.
func (r *ApprovalRepo) Create(ctx context.Context, a *entity.StoreApproval) error {
	query := `
		INSERT INTO store_approvals (id, store_id, company_id, status, submission_data, submitted_at, submitted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.StoreID, a.CompanyID, a.Status, a.SubmissionData, a.SubmittedAt, a.SubmittedBy)
	if err != nil {
		return fmt.Errorf("insert approval: %w", err)
	}
	return nil
}

// ListByStore lists a store's approval records, newest first.
func (r *ApprovalRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.StoreApproval, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, store_id, company_id, status, submission_data, submitted_at, submitted_by
		 FROM store_approvals WHERE store_id = $1 ORDER BY submitted_at DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()
	var list []*entity.StoreApproval
	for rows.Next() {
		var a entity.StoreApproval
		if err := rows.Scan(&a.ID, &a.StoreID, &a.CompanyID, &a.Status, &a.SubmissionData, &a.SubmittedAt, &a.SubmittedBy); err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
