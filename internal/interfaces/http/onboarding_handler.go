package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hrunx/Gasable-sub001/internal/application/dto"
	"github.com/hrunx/Gasable-sub001/internal/application/onboarding"
	"github.com/hrunx/Gasable-sub001/internal/domain"
)

// OnboardingHandler exposes the onboarding wizard: stage drafts, advance,
// back and draft persistence (protected).
type OnboardingHandler struct {
	manager *onboarding.Manager
}

// NewOnboardingHandler builds the handler.
func NewOnboardingHandler(manager *onboarding.Manager) *OnboardingHandler {
	return &OnboardingHandler{manager: manager}
}

func (h *OnboardingHandler) wizard(c *fiber.Ctx) (*onboarding.Wizard, error) {
	return h.manager.Get(c.Context(), GetCompanyID(c), GetUserID(c))
}

// GetSession godoc
// @Summary      Current onboarding session
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/onboarding [get]
func (h *OnboardingHandler) GetSession(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewSessionResponse(w.Session()))
}

// Advance godoc
// @Summary      Advance the wizard with an explicit action id
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdvanceRequest  true  "action id"
// @Success      200   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/advance [post]
func (h *OnboardingHandler) Advance(c *fiber.Ctx) error {
	var in dto.AdvanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "action is required"})
	}
	w, err := h.wizard(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	session, err := w.Advance(c.Context(), in.Action)
	if err == domain.ErrMissingStoreRef {
		// Session corruption, not a user defect: the client should reset.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "MISSING_STORE_REF", Message: "no store reference; reset onboarding and start over"})
	}
	// Executor failures keep the stage and surface through last_error.
	return c.JSON(dto.NewSessionResponse(session))
}

// Back godoc
// @Summary      Step one stage back
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/onboarding/back [post]
func (h *OnboardingHandler) Back(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewSessionResponse(w.Back()))
}

// SaveDraft godoc
// @Summary      Persist the current drafts without validating
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/onboarding/draft [post]
func (h *OnboardingHandler) SaveDraft(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if err := w.SaveDraft(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewSessionResponse(w.Session()))
}

// Reset godoc
// @Summary      Drop the session and its drafts
// @Tags         onboarding
// @Security     Bearer
// @Success      204
// @Router       /api/onboarding [delete]
func (h *OnboardingHandler) Reset(c *fiber.Ctx) error {
	if err := h.manager.Reset(GetCompanyID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStore godoc
// @Summary      Replace the store stage draft
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  onboarding.StoreDraft  true  "store draft"
// @Success      200   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/store [put]
func (h *OnboardingHandler) UpdateStore(c *fiber.Ctx) error {
	var in onboarding.StoreDraft
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	w, err := h.wizard(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if err := w.UpdateStore(in); err != nil {
		return busyOrInvalid(c, err)
	}
	return c.JSON(dto.NewSessionResponse(w.Session()))
}

// UpdateProduct godoc
// @Summary      Replace (or append) a product draft
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProductRequest  true  "index + product draft"
// @Success      200   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/product [put]
func (h *OnboardingHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	w, err := h.wizard(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if err := w.UpdateProduct(in.Index, in.Product); err != nil {
		return busyOrInvalid(c, err)
	}
	return c.JSON(dto.NewSessionResponse(w.Session()))
}

// UpdateProductAttributes godoc
// @Summary      Patch the attribute groups of a product draft
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProductAttributesRequest  true  "index + attribute groups"
// @Success      200   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/product/attributes [put]
func (h *OnboardingHandler) UpdateProductAttributes(c *fiber.Ctx) error {
	var in dto.UpdateProductAttributesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	w, err := h.wizard(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if err := w.UpdateProductAttributes(in.Index, in.Attributes); err != nil {
		return busyOrInvalid(c, err)
	}
	return c.JSON(dto.NewSessionResponse(w.Session()))
}

// RemoveProduct godoc
// @Summary      Remove a product draft by index
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Param        index  path  int  true  "list position"
// @Success      200    {object}  dto.SessionResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/onboarding/product/{index} [delete]
func (h *OnboardingHandler) RemoveProduct(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index must be an integer"})
	}
	w, err := h.wizard(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if err := w.RemoveProduct(index); err != nil {
		return busyOrInvalid(c, err)
	}
	return c.JSON(dto.NewSessionResponse(w.Session()))
}

// UpdateLogistics godoc
// @Summary      Replace the logistics stage draft
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  onboarding.LogisticsDraft  true  "logistics draft"
// @Success      200   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/logistics [put]
func (h *OnboardingHandler) UpdateLogistics(c *fiber.Ctx) error {
	var in onboarding.LogisticsDraft
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	w, err := h.wizard(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if err := w.UpdateLogistics(in); err != nil {
		return busyOrInvalid(c, err)
	}
	return c.JSON(dto.NewSessionResponse(w.Session()))
}

func busyOrInvalid(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BUSY", Message: "a submit is in flight; retry shortly"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid index"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
