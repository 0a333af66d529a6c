package onboarding_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrunx/Gasable-sub001/internal/application/onboarding"
	"github.com/hrunx/Gasable-sub001/internal/domain"
	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

const (
	testCompany = "company-1"
	testUser    = "user-1"
)

// fixture wires a wizard to in-memory fakes so every side effect of an
// advance can be observed.
type fixture struct {
	stores    *fakeStoreRepo
	branches  *fakeBranchRepo
	products  *fakeProductRepo
	zones     *fakeZoneRepo
	vehicles  *fakeVehicleRepo
	drivers   *fakeDriverRepo
	approvals *fakeApprovalRepo
	cache     *memCache
	drafts    *onboarding.DraftStore
	exec      onboarding.Executors
	wizard    *onboarding.Wizard
}

func newFixture() *fixture {
	log := logger.Nop()
	f := &fixture{
		stores:    newFakeStoreRepo(),
		branches:  &fakeBranchRepo{},
		products:  &fakeProductRepo{},
		zones:     &fakeZoneRepo{},
		vehicles:  &fakeVehicleRepo{},
		drivers:   &fakeDriverRepo{},
		approvals: &fakeApprovalRepo{},
		cache:     newMemCache(),
	}
	f.drafts = onboarding.NewDraftStore(f.cache, f.stores, log)
	f.exec = onboarding.Executors{
		Store:     onboarding.NewStoreCreator(f.stores, f.branches, log),
		Products:  onboarding.NewProductCreator(f.products, log),
		Logistics: onboarding.NewLogisticsSaver(f.zones, f.vehicles, f.drivers, log),
		Approval:  onboarding.NewApprovalSubmitter(f.stores, f.approvals, log),
		Finalizer: onboarding.GoLiveFinalizer{},
	}
	f.wizard = onboarding.NewWizard(testCompany, testUser, f.drafts, f.exec, nil, log)
	return f
}

// advanceTo walks the wizard through completed stages with valid drafts.
func (f *fixture) advanceTo(t *testing.T, target onboarding.Stage) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.wizard.UpdateStore(validStoreDraft()))
	s, err := f.wizard.Advance(ctx, onboarding.ActionSaveStore)
	require.NoError(t, err)
	require.Equal(t, onboarding.StageProducts, s.Stage)
	if target == onboarding.StageProducts {
		return
	}

	require.NoError(t, f.wizard.UpdateProduct(0, validProductDraft()))
	for i := 0; i < 3; i++ {
		s, err = f.wizard.Advance(ctx, onboarding.ActionProductsNext)
		require.NoError(t, err)
	}
	require.Equal(t, onboarding.StepPricing, s.ProductStep)
	s, err = f.wizard.Advance(ctx, onboarding.ActionSaveProducts)
	require.NoError(t, err)
	require.Equal(t, onboarding.StageLogistics, s.Stage)
	if target == onboarding.StageLogistics {
		return
	}

	s, err = f.wizard.Advance(ctx, onboarding.ActionSaveLogistics)
	require.NoError(t, err)
	require.Equal(t, onboarding.StageApproval, s.Stage)
	if target == onboarding.StageApproval {
		return
	}

	s, err = f.wizard.Advance(ctx, onboarding.ActionSubmitApproval)
	require.NoError(t, err)
	require.Equal(t, onboarding.StageGoLive, s.Stage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stage gating
// ──────────────────────────────────────────────────────────────────────────────

func TestWizard_StartsAtStoreStage(t *testing.T) {
	f := newFixture()
	s := f.wizard.Session()

	assert.Equal(t, onboarding.StageStore, s.Stage)
	assert.Equal(t, onboarding.StepGeneral, s.ProductStep)
	assert.Equal(t, onboarding.ActionSaveStore, s.PrimaryAction())
	assert.Len(t, s.Products, 1, "a session starts with one empty product draft")
}

func TestWizard_DefectsBlockAdvanceAndExecutor(t *testing.T) {
	f := newFixture()
	// Store draft left empty on purpose.
	s, err := f.wizard.Advance(context.Background(), onboarding.ActionSaveStore)

	require.NoError(t, err, "validation defects are state, not errors")
	assert.Equal(t, onboarding.StageStore, s.Stage, "stage must not advance")
	assert.NotEmpty(t, s.LastError)
	assert.Empty(t, f.stores.stores, "executor must not run when validation fails")
}

func TestWizard_WrongActionIDIsNoOp(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.wizard.UpdateStore(validStoreDraft()))

	// A nested control (e.g. an add-zone button) submits a different action id.
	s, err := f.wizard.Advance(context.Background(), onboarding.ActionSaveLogistics)

	require.NoError(t, err)
	assert.Equal(t, onboarding.StageStore, s.Stage)
	assert.Empty(t, s.LastError)
	assert.Empty(t, f.stores.stores)
}

func TestWizard_StoreStageCreatesStoreAndDefaultBranch(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.wizard.UpdateStore(validStoreDraft()))

	s, err := f.wizard.Advance(context.Background(), onboarding.ActionSaveStore)

	require.NoError(t, err)
	assert.Equal(t, onboarding.StageProducts, s.Stage)
	require.NotNil(t, s.CreatedStore)
	assert.NotEmpty(t, s.CreatedStore.StoreID)
	assert.NotEmpty(t, s.CreatedStore.BranchID, "physical stores get a default branch")
	assert.Len(t, f.stores.stores, 1)
	assert.Len(t, f.branches.branches, 1)

	// The snapshot written after the advance carries the created reference.
	store, err := f.stores.GetByID(context.Background(), s.CreatedStore.StoreID)
	require.NoError(t, err)
	assert.NotEmpty(t, store.DraftData, "draft must mirror remotely once the store exists")
}

func TestWizard_FullHappyPath(t *testing.T) {
	f := newFixture()
	f.advanceTo(t, onboarding.StageGoLive)

	s, err := f.wizard.Advance(context.Background(), onboarding.ActionGoLive)
	require.NoError(t, err)
	assert.True(t, s.Completed)

	// Remote effects of the walk.
	assert.Len(t, f.products.products, 1)
	store, err := f.stores.GetByCompany(context.Background(), testCompany)
	require.NoError(t, err)
	assert.Equal(t, entity.StoreStatusPendingApproval, store.Status)
	require.NotNil(t, store.ApprovalSubmittedAt)
	assert.Len(t, f.approvals.approvals, 1, "approval submission leaves an audit row")

	// Local draft is gone after completion.
	_, ok, err := f.cache.Get(onboarding.DraftKey + ":" + testCompany)
	require.NoError(t, err)
	assert.False(t, ok)

	// Further advances change nothing.
	again, err := f.wizard.Advance(context.Background(), onboarding.ActionGoLive)
	require.NoError(t, err)
	assert.True(t, again.Completed)
}

func TestWizard_CloudStoreSkipsProducts(t *testing.T) {
	f := newFixture()
	d := validStoreDraft()
	d.Category = entity.StoreCategoryCloud
	require.NoError(t, f.wizard.UpdateStore(d))

	ctx := context.Background()
	s, err := f.wizard.Advance(ctx, onboarding.ActionSaveStore)
	require.NoError(t, err)
	require.Equal(t, onboarding.StageProducts, s.Stage)
	assert.Empty(t, s.CreatedStore.BranchID, "cloud stores get no default branch")

	// Product drafts stay empty; a cloud store sails through the stage.
	for i := 0; i < 3; i++ {
		s, err = f.wizard.Advance(ctx, onboarding.ActionProductsNext)
		require.NoError(t, err)
		assert.Empty(t, s.LastError)
	}
	s, err = f.wizard.Advance(ctx, onboarding.ActionSaveProducts)
	require.NoError(t, err)
	assert.Equal(t, onboarding.StageLogistics, s.Stage)
	assert.Empty(t, f.products.products, "no products are created for cloud stores")
}

func TestWizard_CloudStoreNeverKeepsPickup(t *testing.T) {
	f := newFixture()
	d := validStoreDraft()
	d.PickupEnabled = true
	d.Category = entity.StoreCategoryCloud
	require.NoError(t, f.wizard.UpdateStore(d))

	s := f.wizard.Session()
	assert.False(t, s.Store.PickupEnabled, "pickup is cleared on edit, not on submit")
}

func TestWizard_WorkingHourFlagsClearFixedHours(t *testing.T) {
	f := newFixture()
	d := validStoreDraft()
	d.WorkingHours = map[string]onboarding.WorkingDay{
		"monday":  {Open: "08:00", Close: "18:00", AllDay: true},
		"tuesday": {Open: "08:00", Close: "18:00", Closed: true},
	}
	require.NoError(t, f.wizard.UpdateStore(d))

	s := f.wizard.Session()
	mon := s.Store.WorkingHours["monday"]
	assert.True(t, mon.AllDay)
	assert.Empty(t, mon.Open)
	assert.Empty(t, mon.Close)
	tue := s.Store.WorkingHours["tuesday"]
	assert.True(t, tue.Closed)
	assert.False(t, tue.AllDay, "closed wins over all-day")
	assert.Empty(t, tue.Open)
}

// ──────────────────────────────────────────────────────────────────────────────
// Back navigation
// ──────────────────────────────────────────────────────────────────────────────

func TestWizard_BackThenReadvanceUpdatesExistingStore(t *testing.T) {
	f := newFixture()
	f.advanceTo(t, onboarding.StageProducts)
	created := f.wizard.Session().CreatedStore.StoreID

	s := f.wizard.Back()
	require.Equal(t, onboarding.StageStore, s.Stage)

	d := validStoreDraft()
	d.Name = "Gas Station Central Renamed"
	require.NoError(t, f.wizard.UpdateStore(d))
	s, err := f.wizard.Advance(context.Background(), onboarding.ActionSaveStore)
	require.NoError(t, err)

	assert.Len(t, f.stores.stores, 1, "re-advance must not duplicate the store")
	assert.Equal(t, created, s.CreatedStore.StoreID)
	store, err := f.stores.GetByID(context.Background(), created)
	require.NoError(t, err)
	assert.Equal(t, "Gas Station Central Renamed", store.Name)
}

func TestWizard_BackFromLogisticsLandsOnPricing(t *testing.T) {
	f := newFixture()
	f.advanceTo(t, onboarding.StageLogistics)

	s := f.wizard.Back()
	assert.Equal(t, onboarding.StageProducts, s.Stage)
	assert.Equal(t, onboarding.StepPricing, s.ProductStep)
}

func TestWizard_BackAtFirstStageStays(t *testing.T) {
	f := newFixture()
	s := f.wizard.Back()
	assert.Equal(t, onboarding.StageStore, s.Stage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Failure handling
// ──────────────────────────────────────────────────────────────────────────────

func TestWizard_ExecutorFailureKeepsStageAndDraft(t *testing.T) {
	f := newFixture()
	f.stores.failCreate = errors.New("connection refused")
	require.NoError(t, f.wizard.UpdateStore(validStoreDraft()))

	s, err := f.wizard.Advance(context.Background(), onboarding.ActionSaveStore)

	require.Error(t, err)
	assert.Equal(t, onboarding.StageStore, s.Stage)
	assert.Contains(t, s.LastError, "store", "lastError names the failed stage")
	assert.Equal(t, validStoreDraft().Name, s.Store.Name, "draft survives the failure")
	assert.Nil(t, s.CreatedStore)
	assert.False(t, s.Submitting)

	// The failed attempt is fully retryable.
	f.stores.failCreate = nil
	s, err = f.wizard.Advance(context.Background(), onboarding.ActionSaveStore)
	require.NoError(t, err)
	assert.Equal(t, onboarding.StageProducts, s.Stage)
	assert.Empty(t, s.LastError)
}

func TestWizard_OptionalApprovalEffectFailureStillAdvances(t *testing.T) {
	f := newFixture()
	f.approvals.failCreate = errors.New("audit table locked")
	f.advanceTo(t, onboarding.StageApproval)

	s, err := f.wizard.Advance(context.Background(), onboarding.ActionSubmitApproval)

	require.NoError(t, err, "the audit row is best-effort")
	assert.Equal(t, onboarding.StageGoLive, s.Stage)
	store, _ := f.stores.GetByCompany(context.Background(), testCompany)
	assert.Equal(t, entity.StoreStatusPendingApproval, store.Status, "the required status flip still committed")
	assert.Empty(t, f.approvals.approvals)
}

func TestWizard_RequiredApprovalEffectFailureKeepsStage(t *testing.T) {
	f := newFixture()
	f.stores.failSetPending = errors.New("deadlock")
	f.advanceTo(t, onboarding.StageApproval)

	s, err := f.wizard.Advance(context.Background(), onboarding.ActionSubmitApproval)

	require.Error(t, err)
	assert.Equal(t, onboarding.StageApproval, s.Stage)
	assert.NotEmpty(t, s.LastError)
}

func TestWizard_ApprovalWithoutStoreRefIsConfigError(t *testing.T) {
	f := newFixture()
	log := logger.Nop()
	// A snapshot at the approval stage with no created store is corrupt state.
	snap := onboarding.Snapshot{Step: onboarding.StageApproval, Store: validStoreDraft()}
	w := onboarding.NewWizardFromSnapshot(testCompany, testUser, snap, f.drafts, f.exec, nil, log)

	_, err := w.Advance(context.Background(), onboarding.ActionSubmitApproval)
	assert.ErrorIs(t, err, domain.ErrMissingStoreRef)
}

// ──────────────────────────────────────────────────────────────────────────────
// Product list edits
// ──────────────────────────────────────────────────────────────────────────────

func TestWizard_ProductListEdits(t *testing.T) {
	f := newFixture()

	second := validProductDraft()
	second.Name = "Diesel Drum 200L"
	require.NoError(t, f.wizard.UpdateProduct(0, validProductDraft()))
	require.NoError(t, f.wizard.UpdateProduct(1, second), "index == len appends")
	assert.Len(t, f.wizard.Session().Products, 2)

	assert.ErrorIs(t, f.wizard.UpdateProduct(5, second), domain.ErrInvalidInput)

	require.NoError(t, f.wizard.RemoveProduct(1))
	assert.Len(t, f.wizard.Session().Products, 1)
	assert.ErrorIs(t, f.wizard.RemoveProduct(0), domain.ErrInvalidInput, "the last draft cannot be removed")
}

func TestWizard_AttributePatchKeepsIdentityAndPricing(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.wizard.UpdateProduct(0, validProductDraft()))

	patch := onboarding.ProductAttributesDraft{
		Physical:       []onboarding.AttributeItem{{Name: "weight", Value: "12", Unit: "kg"}},
		Certifications: []string{"SASO"},
		SafetyNotes:    "keep upright",
	}
	require.NoError(t, f.wizard.UpdateProductAttributes(0, patch))

	p := f.wizard.Session().Products[0]
	assert.Equal(t, "LPG Cylinder 12kg", p.Name)
	assert.True(t, p.B2BPrice.IsPositive())
	assert.Equal(t, patch.Physical, p.Physical)
	assert.Equal(t, []string{"SASO"}, p.Certifications)
	assert.Equal(t, "keep upright", p.SafetyNotes)

	assert.ErrorIs(t, f.wizard.UpdateProductAttributes(3, patch), domain.ErrInvalidInput, "patch never appends")
}

// ──────────────────────────────────────────────────────────────────────────────
// Resume
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_ResumesFromSavedDraft(t *testing.T) {
	f := newFixture()
	log := logger.Nop()
	ctx := context.Background()

	mgr := onboarding.NewManager(f.drafts, f.exec, nil, log)
	w, err := mgr.Get(ctx, testCompany, testUser)
	require.NoError(t, err)
	require.NoError(t, w.UpdateStore(validStoreDraft()))
	require.NoError(t, w.SaveDraft(ctx))

	// A new manager simulates a process restart sharing the same draft store.
	mgr2 := onboarding.NewManager(f.drafts, f.exec, nil, log)
	w2, err := mgr2.Get(ctx, testCompany, testUser)
	require.NoError(t, err)

	s := w2.Session()
	assert.Equal(t, onboarding.StageStore, s.Stage)
	assert.Equal(t, validStoreDraft().Name, s.Store.Name)
}

func TestManager_ResetDropsSessionAndDraft(t *testing.T) {
	f := newFixture()
	log := logger.Nop()
	ctx := context.Background()

	mgr := onboarding.NewManager(f.drafts, f.exec, nil, log)
	w, err := mgr.Get(ctx, testCompany, testUser)
	require.NoError(t, err)
	require.NoError(t, w.UpdateStore(validStoreDraft()))
	require.NoError(t, w.SaveDraft(ctx))

	require.NoError(t, mgr.Reset(testCompany))

	w2, err := mgr.Get(ctx, testCompany, testUser)
	require.NoError(t, err)
	assert.Empty(t, w2.Session().Store.Name, "reset starts a blank session")
}
