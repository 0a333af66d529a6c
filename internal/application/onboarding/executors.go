package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/internal/domain/repository"
	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

// StageError is a stage-scoped executor failure: a single user-facing message
// naming the failed operation. The wizard surfaces it as lastError and keeps
// the stage (and the draft) unchanged.
type StageError struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *StageError) Unwrap() error { return e.Err }

// ──────────────────────────────────────────────────────────────────────────────
// StoreCreator
// ──────────────────────────────────────────────────────────────────────────────

// StoreCreator maps the store draft to a persisted store. A physical store
// also gets a default branch provisioned in the same call. When the session
// already carries a StoreRef (re-advance after Back) the existing store is
// updated instead of duplicated.
type StoreCreator struct {
	stores   repository.StoreRepository
	branches repository.BranchRepository
	log      *logger.Logger
}

// NewStoreCreator builds the executor.
func NewStoreCreator(stores repository.StoreRepository, branches repository.BranchRepository, log *logger.Logger) *StoreCreator {
	return &StoreCreator{stores: stores, branches: branches, log: log}
}

// Execute performs the store write and returns the created reference.
func (c *StoreCreator) Execute(ctx context.Context, companyID string, draft StoreDraft, prior *StoreRef) (*StoreRef, error) {
	draft = normalizeStore(draft) // cloud stores never offer pickup

	hours, err := json.Marshal(draft.WorkingHours)
	if err != nil {
		return nil, &StageError{Stage: StageStore, Message: "encode working hours", Err: err}
	}

	now := time.Now().UTC()
	store := &entity.Store{
		CompanyID:       companyID,
		Name:            draft.Name,
		Category:        draft.Category,
		CRNumber:        draft.CRNumber,
		VATNumber:       draft.VATNumber,
		Phone:           draft.Phone,
		Email:           draft.Email,
		Description:     draft.Description,
		City:            draft.City,
		District:        draft.District,
		FullAddress:     draft.FullAddress,
		WorkingHours:    hours,
		PickupEnabled:   draft.PickupEnabled,
		DeliveryEnabled: draft.DeliveryEnabled,
		InvoicingMethod: draft.InvoicingMethod,
		Status:          entity.StoreStatusActive,
		UpdatedAt:       now,
	}

	if prior != nil && prior.StoreID != "" {
		store.ID = prior.StoreID
		if err := c.stores.Update(ctx, store); err != nil {
			return nil, &StageError{Stage: StageStore, Message: "update store", Err: err}
		}
		c.log.Info().Str("store_id", store.ID).Msg("store updated on re-advance")
		return prior, nil
	}

	store.ID = uuid.New().String()
	store.CreatedAt = now
	if err := c.stores.Create(ctx, store); err != nil {
		return nil, &StageError{Stage: StageStore, Message: "create store", Err: err}
	}

	ref := &StoreRef{StoreID: store.ID}
	if draft.Category == entity.StoreCategoryPhysical {
		branch := &entity.Branch{
			ID:        uuid.New().String(),
			StoreID:   store.ID,
			CompanyID: companyID,
			Name:      draft.Name + " - Main Branch",
			Address:   draft.FullAddress,
			IsDefault: true,
			CreatedAt: now,
		}
		if err := c.branches.Create(ctx, branch); err != nil {
			return nil, &StageError{Stage: StageStore, Message: "create default branch", Err: err}
		}
		ref.BranchID = branch.ID
	}

	c.log.Info().Str("store_id", store.ID).Str("category", store.Category).Msg("store created")
	return ref, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductCreator
// ──────────────────────────────────────────────────────────────────────────────

// ProductCreator persists one product per draft, flattening all attribute
// groups into a single uniform list. Cloud stores skip product creation in
// this stage entirely.
type ProductCreator struct {
	products repository.ProductRepository
	log      *logger.Logger
}

// NewProductCreator builds the executor.
func NewProductCreator(products repository.ProductRepository, log *logger.Logger) *ProductCreator {
	return &ProductCreator{products: products, log: log}
}

// Execute writes the products and returns the created ids.
func (c *ProductCreator) Execute(ctx context.Context, companyID string, store StoreDraft, ref *StoreRef, drafts []ProductDraft) ([]string, error) {
	if ref == nil || ref.StoreID == "" {
		return nil, &StageError{Stage: StageProducts, Message: "no created store for product creation", Err: nil}
	}
	if store.Category == entity.StoreCategoryCloud {
		c.log.Info().Str("store_id", ref.StoreID).Msg("cloud store, skipping product creation")
		return nil, nil
	}

	now := time.Now().UTC()
	ids := make([]string, 0, len(drafts))
	for _, d := range drafts {
		p := &entity.Product{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			StoreID:     ref.StoreID,
			Name:        d.Name,
			Brand:       d.Brand,
			Type:        d.Type,
			Category:    d.Category,
			Description: d.Description,
			BasePrice:   d.BasePrice,
			B2BPrice:    d.B2BPrice,
			B2CPrice:    d.B2CPrice,
			MinOrderQty: d.MinOrderQty,
			Attributes:  flattenAttributes(d),
			ZoneIDs:     d.ZoneIDs,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := c.products.Create(ctx, p); err != nil {
			return nil, &StageError{Stage: StageProducts, Message: fmt.Sprintf("create product %q", d.Name), Err: err}
		}
		ids = append(ids, p.ID)
	}
	c.log.Info().Int("count", len(ids)).Str("store_id", ref.StoreID).Msg("products created")
	return ids, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// GoLiveFinalizer
// ──────────────────────────────────────────────────────────────────────────────

// GoLiveFinalizer performs no remote writes: the approval stage already
// committed everything. It exists so the terminal stage follows the same
// executor shape as the others.
type GoLiveFinalizer struct{}

// Execute is a no-op.
func (GoLiveFinalizer) Execute(context.Context) error { return nil }
