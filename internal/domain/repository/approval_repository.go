package repository

import (
	"context"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// ApprovalRepository persistence port for the approval audit trail.
type ApprovalRepository interface {
	Create(ctx context.Context, a *entity.StoreApproval) error
	ListByStore(ctx context.Context, storeID string) ([]*entity.StoreApproval, error)
}
