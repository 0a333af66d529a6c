package onboarding

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hrunx/Gasable-sub001/internal/domain"
	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

// EventPublisher publishes workflow events best-effort. A nil publisher
// disables events entirely; publish failures never block the workflow.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body any) error
}

// Session is the state of one onboarding attempt. It is owned exclusively by
// its Wizard; handlers only ever see copies.
type Session struct {
	Stage        Stage          `json:"stage"`
	ProductStep  ProductStep    `json:"product_step"`
	Store        StoreDraft     `json:"store"`
	Products     []ProductDraft `json:"products"`
	Logistics    LogisticsDraft `json:"logistics"`
	CreatedStore *StoreRef      `json:"created_store,omitempty"`
	Submitting   bool           `json:"submitting"`
	LastError    string         `json:"last_error,omitempty"`
	Completed    bool           `json:"completed"`
}

// PrimaryAction returns the action id that advances from the session's
// current position.
func (s Session) PrimaryAction() string {
	return primaryAction(s.Stage, s.ProductStep)
}

// Executors bundles the per-stage side-effect executors.
type Executors struct {
	Store     *StoreCreator
	Products  *ProductCreator
	Logistics *LogisticsSaver
	Approval  *ApprovalSubmitter
	Finalizer GoLiveFinalizer
}

// Wizard is the orchestrating state machine for one company's onboarding.
// On every advance it runs, in fixed order: validator gate, stage executor,
// identifier commit, stage transition, draft snapshot. Only the wizard
// mutates its session.
type Wizard struct {
	mu        sync.Mutex
	companyID string
	userID    string
	session   Session

	drafts *DraftStore
	exec   Executors
	events EventPublisher
	log    *logger.Logger
}

// NewWizard starts a fresh session at the store stage.
func NewWizard(companyID, userID string, drafts *DraftStore, exec Executors, events EventPublisher, log *logger.Logger) *Wizard {
	return &Wizard{
		companyID: companyID,
		userID:    userID,
		session: Session{
			Stage:       StageStore,
			ProductStep: StepGeneral,
			Products:    []ProductDraft{{}},
		},
		drafts: drafts,
		exec:   exec,
		events: events,
		log:    log,
	}
}

// NewWizardFromSnapshot resumes a session from a persisted draft snapshot.
func NewWizardFromSnapshot(companyID, userID string, snap Snapshot, drafts *DraftStore, exec Executors, events EventPublisher, log *logger.Logger) *Wizard {
	w := NewWizard(companyID, userID, drafts, exec, events, log)
	w.session.Stage = snap.Step
	w.session.ProductStep = snap.ProductStep
	if w.session.Stage.index() < 0 {
		w.session.Stage = StageStore
	}
	if w.session.ProductStep.index() < 0 {
		w.session.ProductStep = StepGeneral
	}
	w.session.Store = snap.Store
	if len(snap.Products) > 0 {
		w.session.Products = snap.Products
	}
	w.session.Logistics = snap.Logistics
	w.session.CreatedStore = snap.CreatedStore
	return w
}

// Session returns a copy of the current state for rendering.
func (w *Wizard) Session() Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionLocked()
}

func (w *Wizard) sessionLocked() Session {
	s := w.session
	s.Products = append([]ProductDraft(nil), w.session.Products...)
	if w.session.CreatedStore != nil {
		ref := *w.session.CreatedStore
		s.CreatedStore = &ref
	}
	return s
}

func (w *Wizard) snapshotLocked() Snapshot {
	s := w.sessionLocked()
	return Snapshot{
		Step:         s.Stage,
		ProductStep:  s.ProductStep,
		Store:        s.Store,
		Products:     s.Products,
		Logistics:    s.Logistics,
		CreatedStore: s.CreatedStore,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Draft edits
// ──────────────────────────────────────────────────────────────────────────────

// UpdateStore replaces the store draft. Invariants (cloud never offers
// pickup, working-hour flags clear fixed hours) are enforced here, centrally.
func (w *Wizard) UpdateStore(d StoreDraft) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.Submitting {
		return domain.ErrConflict
	}
	w.session.Store = normalizeStore(d)
	return nil
}

// UpdateProduct replaces the product draft at index i; i == len appends.
func (w *Wizard) UpdateProduct(i int, d ProductDraft) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.Submitting {
		return domain.ErrConflict
	}
	switch {
	case i >= 0 && i < len(w.session.Products):
		w.session.Products[i] = d
	case i == len(w.session.Products):
		w.session.Products = append(w.session.Products, d)
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// UpdateProductAttributes patches the attribute groups of the product draft
// at index i. Unlike UpdateProduct it never appends.
func (w *Wizard) UpdateProductAttributes(i int, a ProductAttributesDraft) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.Submitting {
		return domain.ErrConflict
	}
	if i < 0 || i >= len(w.session.Products) {
		return domain.ErrInvalidInput
	}
	p := &w.session.Products[i]
	p.Mechanical = a.Mechanical
	p.Physical = a.Physical
	p.Chemical = a.Chemical
	p.Electrical = a.Electrical
	p.Fuel = a.Fuel
	p.Certifications = a.Certifications
	p.Standards = a.Standards
	p.SafetyNotes = a.SafetyNotes
	return nil
}

// RemoveProduct drops the product draft at index i, keeping at least one.
func (w *Wizard) RemoveProduct(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.Submitting {
		return domain.ErrConflict
	}
	if i < 0 || i >= len(w.session.Products) || len(w.session.Products) == 1 {
		return domain.ErrInvalidInput
	}
	w.session.Products = append(w.session.Products[:i], w.session.Products[i+1:]...)
	return nil
}

// UpdateLogistics replaces the logistics draft.
func (w *Wizard) UpdateLogistics(d LogisticsDraft) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.Submitting {
		return domain.ErrConflict
	}
	w.session.Logistics = d
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Workflow operations
// ──────────────────────────────────────────────────────────────────────────────

// Advance moves the wizard forward. Only the designated primary action of the
// current position is honored; any other action id is a no-op, which keeps
// nested add-zone/vehicle/driver submissions from advancing the stage.
// Re-entrant calls while a submit is in flight are no-ops as well.
func (w *Wizard) Advance(ctx context.Context, actionID string) (Session, error) {
	w.mu.Lock()

	if w.session.Submitting || w.session.Completed {
		s := w.sessionLocked()
		w.mu.Unlock()
		return s, nil
	}
	if actionID != primaryAction(w.session.Stage, w.session.ProductStep) {
		s := w.sessionLocked()
		w.mu.Unlock()
		return s, nil
	}

	w.session.LastError = ""

	// Approval precondition: a missing store ref is a configuration error,
	// not a user-fixable defect.
	if w.session.Stage == StageApproval && (w.session.CreatedStore == nil || w.session.CreatedStore.StoreID == "") {
		s := w.sessionLocked()
		w.mu.Unlock()
		return s, domain.ErrMissingStoreRef
	}

	if defects := w.validateLocked(); len(defects) > 0 {
		w.session.LastError = strings.Join(defects, "; ")
		s := w.sessionLocked()
		w.mu.Unlock()
		return s, nil
	}

	// Intra-products sub-steps have no executors.
	if w.session.Stage == StageProducts && w.session.ProductStep != StepPricing {
		w.session.ProductStep, _ = w.session.ProductStep.Next()
		s := w.sessionLocked()
		snap := w.snapshotLocked()
		w.mu.Unlock()
		w.persistSnapshot(ctx, snap)
		return s, nil
	}

	// Terminal stage: nothing left to write remotely.
	if w.session.Stage == StageGoLive {
		if err := w.exec.Finalizer.Execute(ctx); err != nil {
			s := w.sessionLocked()
			w.mu.Unlock()
			return s, err
		}
		w.session.Completed = true
		s := w.sessionLocked()
		w.mu.Unlock()
		if err := w.drafts.Clear(w.companyID); err != nil {
			w.log.Warn().Err(err).Str("company_id", w.companyID).Msg("clear local draft")
		}
		w.publish(ctx, "onboarding.completed", map[string]string{"company_id": w.companyID})
		return s, nil
	}

	from := w.session.Stage
	snap := w.snapshotLocked()
	w.session.Submitting = true
	w.mu.Unlock()

	ref, execErr := w.runExecutor(ctx, from, snap)

	w.mu.Lock()
	w.session.Submitting = false
	if execErr != nil {
		w.session.LastError = stageMessage(from, execErr)
		s := w.sessionLocked()
		w.mu.Unlock()
		return s, execErr
	}

	if w.session.CreatedStore == nil && ref != nil {
		w.session.CreatedStore = ref
	}
	w.session.Stage, _ = w.session.Stage.Next()
	if from == StageProducts {
		w.session.ProductStep = StepGeneral
	}
	s := w.sessionLocked()
	newSnap := w.snapshotLocked()
	w.mu.Unlock()

	// Snapshot only after the executor fully settled, never mid-flight.
	w.persistSnapshot(ctx, newSnap)
	w.publish(ctx, "onboarding.stage.advanced", map[string]string{
		"company_id": w.companyID,
		"from":       string(from),
		"to":         string(s.Stage),
	})
	if from == StageApproval {
		w.publish(ctx, "onboarding.submitted", map[string]string{
			"company_id": w.companyID,
			"store_id":   s.CreatedStore.StoreID,
		})
	}
	return s, nil
}

// Back steps one stage (or product sub-step) backwards. Remote writes from
// completed stages are not reverted; re-advancing updates the existing store
// rather than duplicating it.
func (w *Wizard) Back() Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.Submitting {
		return w.sessionLocked()
	}
	w.session.LastError = ""
	if w.session.Stage == StageProducts {
		if prev, ok := w.session.ProductStep.Prev(); ok {
			w.session.ProductStep = prev
			return w.sessionLocked()
		}
	}
	if prev, ok := w.session.Stage.Prev(); ok {
		w.session.Stage = prev
		if prev == StageProducts {
			w.session.ProductStep = StepPricing
		}
	}
	return w.sessionLocked()
}

// SaveDraft snapshots the current state without running validators or
// executors. Callable from any stage; a no-op while a submit is in flight.
func (w *Wizard) SaveDraft(ctx context.Context) error {
	w.mu.Lock()
	if w.session.Submitting {
		w.mu.Unlock()
		return nil
	}
	snap := w.snapshotLocked()
	w.mu.Unlock()
	return w.drafts.Save(ctx, w.companyID, snap)
}

// ──────────────────────────────────────────────────────────────────────────────
// Internals
// ──────────────────────────────────────────────────────────────────────────────

func (w *Wizard) validateLocked() []string {
	switch w.session.Stage {
	case StageStore:
		return ValidateStore(w.session.Store)
	case StageProducts:
		// Cloud stores create no products, so product defects cannot block them.
		if w.session.Store.Category == entity.StoreCategoryCloud {
			return nil
		}
		var defects []string
		for _, p := range w.session.Products {
			switch w.session.ProductStep {
			case StepGeneral:
				defects = append(defects, ValidateProductGeneral(p)...)
			case StepPricing:
				defects = append(defects, ValidateProductPricing(p)...)
			}
		}
		return defects
	case StageLogistics:
		return ValidateLogistics(w.session.Logistics)
	}
	return nil
}

func (w *Wizard) runExecutor(ctx context.Context, stage Stage, snap Snapshot) (*StoreRef, error) {
	switch stage {
	case StageStore:
		return w.exec.Store.Execute(ctx, w.companyID, snap.Store, snap.CreatedStore)
	case StageProducts:
		_, err := w.exec.Products.Execute(ctx, w.companyID, snap.Store, snap.CreatedStore, snap.Products)
		return snap.CreatedStore, err
	case StageLogistics:
		_, err := w.exec.Logistics.Execute(ctx, w.companyID, snap.CreatedStore, snap.Logistics)
		return snap.CreatedStore, err
	case StageApproval:
		err := w.exec.Approval.Execute(ctx, w.companyID, w.userID, snap.CreatedStore, snap)
		return snap.CreatedStore, err
	}
	return nil, nil
}

func (w *Wizard) persistSnapshot(ctx context.Context, snap Snapshot) {
	if err := w.drafts.Save(ctx, w.companyID, snap); err != nil {
		w.log.Warn().Err(err).Str("company_id", w.companyID).Msg("draft snapshot after advance failed")
	}
}

func (w *Wizard) publish(ctx context.Context, key string, body any) {
	if w.events == nil {
		return
	}
	if err := w.events.Publish(ctx, key, body); err != nil {
		w.log.Warn().Err(err).Str("event", key).Msg("event publish failed")
	}
}

// stageMessage maps an executor failure to the single user-facing message
// surfaced in lastError.
func stageMessage(stage Stage, err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return "could not complete " + string(stage) + " stage: " + se.Message
	}
	return "could not complete " + string(stage) + " stage"
}
