package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hrunx/Gasable-sub001/internal/domain/repository"
	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

// LocalCache is the ephemeral, single-device draft store (file-backed in
// production, in-memory in tests).
type LocalCache interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, bool, error)
	Delete(key string) error
}

// DraftStore persists session snapshots to two locations: the local cache
// always, and the store row's draft_data column once the store exists. The
// local copy is the durability floor; the remote write is best-effort.
type DraftStore struct {
	local  LocalCache
	stores repository.StoreRepository
	log    *logger.Logger
}

// NewDraftStore builds the draft store.
func NewDraftStore(local LocalCache, stores repository.StoreRepository, log *logger.Logger) *DraftStore {
	return &DraftStore{local: local, stores: stores, log: log}
}

func draftCacheKey(companyID string) string {
	return DraftKey + ":" + companyID
}

// Save writes the snapshot locally, unconditionally; if the store has been
// created it also mirrors the snapshot remotely. A remote failure is logged
// and does not fail the save.
func (d *DraftStore) Save(ctx context.Context, companyID string, snap Snapshot) error {
	snap.SavedAt = time.Now().UTC()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal draft snapshot: %w", err)
	}
	if err := d.local.Put(draftCacheKey(companyID), data); err != nil {
		return fmt.Errorf("write local draft: %w", err)
	}
	if snap.CreatedStore != nil && snap.CreatedStore.StoreID != "" {
		if err := d.stores.UpdateDraftData(ctx, snap.CreatedStore.StoreID, data); err != nil {
			d.log.Warn().Err(err).
				Str("store_id", snap.CreatedStore.StoreID).
				Msg("remote draft sync failed, local draft kept")
		}
	}
	return nil
}

// Load rebuilds the latest snapshot for a company, preferring the remote copy
// when both exist and the remote one is newer. Returns nil when no draft has
// ever been saved.
func (d *DraftStore) Load(ctx context.Context, companyID string) (*Snapshot, error) {
	var local *Snapshot
	if data, ok, err := d.local.Get(draftCacheKey(companyID)); err != nil {
		return nil, fmt.Errorf("read local draft: %w", err)
	} else if ok {
		var s Snapshot
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode local draft: %w", err)
		}
		local = &s
	}

	remote, err := d.loadRemote(ctx, companyID, local)
	if err != nil {
		// Remote being unreachable must not block resuming from local.
		d.log.Warn().Err(err).Str("company_id", companyID).Msg("remote draft load failed")
	}

	switch {
	case local == nil:
		return remote, nil
	case remote == nil:
		return local, nil
	case remote.SavedAt.After(local.SavedAt):
		return remote, nil
	default:
		return local, nil
	}
}

func (d *DraftStore) loadRemote(ctx context.Context, companyID string, local *Snapshot) (*Snapshot, error) {
	storeID := ""
	if local != nil && local.CreatedStore != nil {
		storeID = local.CreatedStore.StoreID
	}
	if storeID == "" {
		// Device loss: no local copy, find the company's in-progress store.
		store, err := d.stores.GetByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, nil
		}
		storeID = store.ID
	}
	data, err := d.stores.GetDraftData(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode remote draft: %w", err)
	}
	return &s, nil
}

// Clear drops the local draft after onboarding completes.
func (d *DraftStore) Clear(companyID string) error {
	return d.local.Delete(draftCacheKey(companyID))
}
