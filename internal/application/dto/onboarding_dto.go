package dto

import "github.com/hrunx/Gasable-sub001/internal/application/onboarding"

// AdvanceRequest carries the explicit action identifier of the control that
// triggered the advance. Only the current stage's primary action advances.
type AdvanceRequest struct {
	Action string `json:"action" validate:"required"`
}

// UpdateProductRequest wraps a product draft with its list position.
// Index == len(products) appends a new draft.
type UpdateProductRequest struct {
	Index   int                     `json:"index"`
	Product onboarding.ProductDraft `json:"product"`
}

// UpdateProductAttributesRequest patches the attribute sub-tab of the draft
// at Index without touching identity or pricing fields.
type UpdateProductAttributesRequest struct {
	Index      int                               `json:"index"`
	Attributes onboarding.ProductAttributesDraft `json:"attributes"`
}

// SessionResponse is the wizard state rendered to the client.
type SessionResponse struct {
	Stage         onboarding.Stage          `json:"stage"`
	ProductStep   onboarding.ProductStep    `json:"product_step"`
	Store         onboarding.StoreDraft     `json:"store"`
	Products      []onboarding.ProductDraft `json:"products"`
	Logistics     onboarding.LogisticsDraft `json:"logistics"`
	CreatedStore  *onboarding.StoreRef      `json:"created_store,omitempty"`
	Submitting    bool                      `json:"submitting"`
	LastError     string                    `json:"last_error,omitempty"`
	Completed     bool                      `json:"completed"`
	PrimaryAction string                    `json:"primary_action"`
}

// NewSessionResponse maps a session copy to its response shape.
func NewSessionResponse(s onboarding.Session) SessionResponse {
	return SessionResponse{
		Stage:         s.Stage,
		ProductStep:   s.ProductStep,
		Store:         s.Store,
		Products:      s.Products,
		Logistics:     s.Logistics,
		CreatedStore:  s.CreatedStore,
		Submitting:    s.Submitting,
		LastError:     s.LastError,
		Completed:     s.Completed,
		PrimaryAction: s.PrimaryAction(),
	}
}
