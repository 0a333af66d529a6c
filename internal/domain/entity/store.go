package entity

import (
	"encoding/json"
	"time"
)

// Store categories.
const (
	StoreCategoryPhysical = "physical"
	StoreCategoryCloud    = "cloud"
)

// Store lifecycle statuses. A store is created active and moves to
// pending_approval when the merchant submits it for review.
const (
	StoreStatusActive          = "active"
	StoreStatusPendingApproval = "pending_approval"
	StoreStatusLive            = "live"
)

// Invoicing methods.
const (
	InvoicingMerchant = "merchant"
	InvoicingPlatform = "platform"
)

// Store represents a merchant's selling location on the marketplace.
// WorkingHours holds the serialized weekly schedule; DraftData holds the
// onboarding draft snapshot while the store is still being set up.
type Store struct {
	ID                  string
	CompanyID           string
	Name                string
	Category            string // physical | cloud
	CRNumber            string
	VATNumber           string
	Phone               string
	Email               string
	Description         string
	City                string
	District            string
	FullAddress         string
	WorkingHours        json.RawMessage
	PickupEnabled       bool // must be false for cloud stores
	DeliveryEnabled     bool
	InvoicingMethod     string // merchant | platform
	Status              string
	ApprovalSubmittedAt *time.Time
	DraftData           json.RawMessage
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Branch is a physical outlet of a store. A physical store gets a default
// branch provisioned together with the store itself.
type Branch struct {
	ID        string
	StoreID   string
	CompanyID string
	Name      string
	Address   string
	IsDefault bool
	CreatedAt time.Time
}
