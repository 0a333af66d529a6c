package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// StoreRepository persistence port for Store and its default branch.
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	Update(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	GetByCompany(ctx context.Context, companyID string) (*entity.Store, error)
	// SetPendingApproval flips the status and records the submission timestamp.
	SetPendingApproval(ctx context.Context, storeID string, submittedAt time.Time) error
	// UpdateDraftData writes the onboarding draft snapshot into the store row.
	UpdateDraftData(ctx context.Context, storeID string, draft json.RawMessage) error
	GetDraftData(ctx context.Context, storeID string) (json.RawMessage, error)
}

// BranchRepository persistence port for Branch.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	ListByStore(ctx context.Context, storeID string) ([]*entity.Branch, error)
}
