package onboarding_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes. Every fake is safe for concurrent use because the logistics
// saver fans writes out across goroutines. failWith, when set, makes every
// write fail with that error.
// ──────────────────────────────────────────────────────────────────────────────

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Put(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = append([]byte(nil), data...)
	return nil
}

func (c *memCache) Get(key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	return data, ok, nil
}

func (c *memCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[string]*entity.Store

	failCreate     error
	failSetPending error
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: map[string]*entity.Store{}}
}

func (r *fakeStoreRepo) Create(_ context.Context, s *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *fakeStoreRepo) Update(_ context.Context, s *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.stores[s.ID]
	if !ok {
		cp := *s
		r.stores[s.ID] = &cp
		return nil
	}
	draft := existing.DraftData
	cp := *s
	cp.DraftData = draft
	r.stores[s.ID] = &cp
	return nil
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoreRepo) GetByCompany(_ context.Context, companyID string) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stores {
		if s.CompanyID == companyID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStoreRepo) SetPendingApproval(_ context.Context, storeID string, submittedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSetPending != nil {
		return r.failSetPending
	}
	s, ok := r.stores[storeID]
	if !ok {
		return nil
	}
	s.Status = entity.StoreStatusPendingApproval
	at := submittedAt
	s.ApprovalSubmittedAt = &at
	return nil
}

func (r *fakeStoreRepo) UpdateDraftData(_ context.Context, storeID string, draft json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[storeID]
	if !ok {
		return nil
	}
	s.DraftData = append(json.RawMessage(nil), draft...)
	return nil
}

func (r *fakeStoreRepo) GetDraftData(_ context.Context, storeID string) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[storeID]
	if !ok {
		return nil, nil
	}
	return s.DraftData, nil
}

type fakeBranchRepo struct {
	mu       sync.Mutex
	branches []*entity.Branch
}

func (r *fakeBranchRepo) Create(_ context.Context, b *entity.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.branches = append(r.branches, &cp)
	return nil
}

func (r *fakeBranchRepo) ListByStore(_ context.Context, storeID string) ([]*entity.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Branch
	for _, b := range r.branches {
		if b.StoreID == storeID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products []*entity.Product

	failCreate error
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *p
	r.products = append(r.products, &cp)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) ListByStore(_ context.Context, storeID string, _, _ int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, old := range r.products {
		if old.ID == p.ID {
			cp := *p
			r.products[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeZoneRepo struct {
	mu    sync.Mutex
	zones []*entity.DeliveryZone

	failCreate error
	created    int // total Create attempts, including failed ones
}

func (r *fakeZoneRepo) Create(_ context.Context, z *entity.DeliveryZone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *z
	r.zones = append(r.zones, &cp)
	return nil
}

func (r *fakeZoneRepo) Update(_ context.Context, z *entity.DeliveryZone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, old := range r.zones {
		if old.ID == z.ID {
			cp := *z
			r.zones[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *fakeZoneRepo) GetByID(_ context.Context, id string) (*entity.DeliveryZone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, z := range r.zones {
		if z.ID == id {
			cp := *z
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeZoneRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.DeliveryZone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.DeliveryZone
	for _, z := range r.zones {
		if z.CompanyID == companyID {
			out = append(out, z)
		}
	}
	return out, nil
}

func (r *fakeZoneRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, z := range r.zones {
		if z.ID == id {
			r.zones = append(r.zones[:i], r.zones[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles []*entity.Vehicle

	failCreate error
}

func (r *fakeVehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *v
	r.vehicles = append(r.vehicles, &cp)
	return nil
}

func (r *fakeVehicleRepo) ListByStore(_ context.Context, storeID string) ([]*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Vehicle
	for _, v := range r.vehicles {
		if v.StoreID == storeID {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeDriverRepo struct {
	mu      sync.Mutex
	drivers []*entity.Driver
}

func (r *fakeDriverRepo) Create(_ context.Context, d *entity.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.drivers = append(r.drivers, &cp)
	return nil
}

func (r *fakeDriverRepo) ListByStore(_ context.Context, storeID string) ([]*entity.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Driver
	for _, d := range r.drivers {
		if d.StoreID == storeID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeApprovalRepo struct {
	mu        sync.Mutex
	approvals []*entity.StoreApproval

	failCreate error
}

func (r *fakeApprovalRepo) Create(_ context.Context, a *entity.StoreApproval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *a
	r.approvals = append(r.approvals, &cp)
	return nil
}

func (r *fakeApprovalRepo) ListByStore(_ context.Context, storeID string) ([]*entity.StoreApproval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StoreApproval
	for _, a := range r.approvals {
		if a.StoreID == storeID {
			out = append(out, a)
		}
	}
	return out, nil
}
