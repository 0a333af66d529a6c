package onboarding

import "time"

// DraftKey is the fixed key under which the local draft cache stores the
// in-progress snapshot.
const DraftKey = "gasable_store_draft"

// StoreRef identifies the remotely created store once the first stage has
// committed. Immutable after it is set; required input to all later executors.
type StoreRef struct {
	StoreID  string `json:"store_id"`
	BranchID string `json:"branch_id,omitempty"`
}

// Snapshot is the serializable picture of an onboarding session, written to
// the local cache on every save and mirrored into the store's draft_data
// column once the store exists.
type Snapshot struct {
	Step         Stage          `json:"step"`
	ProductStep  ProductStep    `json:"product_step"`
	Store        StoreDraft     `json:"store"`
	Products     []ProductDraft `json:"products"`
	Logistics    LogisticsDraft `json:"logistics"`
	CreatedStore *StoreRef      `json:"created_store,omitempty"`
	SavedAt      time.Time      `json:"saved_at"`
}
