package onboarding

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hrunx/Gasable-sub001/internal/domain"
	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/internal/domain/repository"
	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

// ApprovalSubmitter runs the approval stage as an ordered list of effects,
// each marked required or optional. The required status flip must commit;
// the audit row is best-effort and its failure is only logged.
type ApprovalSubmitter struct {
	stores    repository.StoreRepository
	approvals repository.ApprovalRepository
	log       *logger.Logger
}

// NewApprovalSubmitter builds the executor.
func NewApprovalSubmitter(stores repository.StoreRepository, approvals repository.ApprovalRepository, log *logger.Logger) *ApprovalSubmitter {
	return &ApprovalSubmitter{stores: stores, approvals: approvals, log: log}
}

type approvalEffect struct {
	name     string
	required bool
	run      func(ctx context.Context) error
}

// Execute submits the store for review. A missing store reference is a
// configuration error, not a user-fixable defect.
func (s *ApprovalSubmitter) Execute(ctx context.Context, companyID, userID string, ref *StoreRef, snap Snapshot) error {
	if ref == nil || ref.StoreID == "" {
		return domain.ErrMissingStoreRef
	}

	submittedAt := time.Now().UTC()
	effects := []approvalEffect{
		{
			name:     "mark_pending_approval",
			required: true,
			run: func(ctx context.Context) error {
				return s.stores.SetPendingApproval(ctx, ref.StoreID, submittedAt)
			},
		},
		{
			name:     "insert_approval_audit",
			required: false,
			run: func(ctx context.Context) error {
				submission, err := json.Marshal(map[string]any{
					"store":     snap.Store,
					"products":  snap.Products,
					"logistics": snap.Logistics,
				})
				if err != nil {
					return err
				}
				return s.approvals.Create(ctx, &entity.StoreApproval{
					ID:             uuid.New().String(),
					StoreID:        ref.StoreID,
					CompanyID:      companyID,
					Status:         "pending",
					SubmissionData: submission,
					SubmittedAt:    submittedAt,
					SubmittedBy:    userID,
				})
			},
		},
	}

	for _, e := range effects {
		if err := e.run(ctx); err != nil {
			if e.required {
				return &StageError{Stage: StageApproval, Message: e.name, Err: err}
			}
			s.log.Warn().Err(err).Str("effect", e.name).Str("store_id", ref.StoreID).
				Msg("optional approval effect failed, continuing without it")
		}
	}
	return nil
}
