package entity

import (
	"encoding/json"
	"time"
)

// StoreApproval is the audit record written when a merchant submits a store
// for review. It carries the full draft snapshot at submission time and is
// best-effort: approval proceeds even if this row cannot be written.
type StoreApproval struct {
	ID             string
	StoreID        string
	CompanyID      string
	Status         string // pending | approved | rejected
	SubmissionData json.RawMessage
	SubmittedAt    time.Time
	SubmittedBy    string
}
