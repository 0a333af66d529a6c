package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hrunx/Gasable-sub001/internal/application/dto"
	"github.com/hrunx/Gasable-sub001/internal/application/pricing"
	"github.com/hrunx/Gasable-sub001/internal/domain"
)

// ZoneHandler handles delivery zones, product assignments and price
// resolution (protected).
type ZoneHandler struct {
	svc *pricing.Service
}

// NewZoneHandler builds the handler.
func NewZoneHandler(svc *pricing.Service) *ZoneHandler {
	return &ZoneHandler{svc: svc}
}

// Create godoc
// @Summary      Create delivery zone
// @Tags         zones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ZoneRequest  true  "Zone data"
// @Success      201   {object}  dto.ZoneResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/zones [post]
func (h *ZoneHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.ZoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	zone, err := h.svc.CreateZone(c.Context(), companyID, zoneInput(in))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, a valid zone_type and a non-negative delivery_fee are required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewZoneResponse(zone))
}

// List godoc
// @Summary      List delivery zones
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ZoneResponse
// @Router       /api/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	zones, err := h.svc.ListZones(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		items = append(items, dto.NewZoneResponse(z))
	}
	return c.JSON(items)
}

// Stats godoc
// @Summary      Zone counters for the company
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ZoneStatsResponse
// @Router       /api/zones/stats [get]
func (h *ZoneHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ZoneStatsResponse{
		TotalZones:       stats.TotalZones,
		ActiveZones:      stats.ActiveZones,
		TotalAssignments: stats.TotalAssignments,
		AvgDeliveryFee:   stats.AvgDeliveryFee,
	})
}

// GetByID godoc
// @Summary      Get zone by ID
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Zone ID"
// @Success      200  {object}  dto.ZoneResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zones/{id} [get]
func (h *ZoneHandler) GetByID(c *fiber.Ctx) error {
	zone, err := h.svc.GetZone(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "zone not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewZoneResponse(zone))
}

// Update godoc
// @Summary      Update zone
// @Tags         zones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Zone ID"
// @Param        body  body  dto.ZoneRequest  true  "Zone data"
// @Success      200   {object}  dto.ZoneResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/zones/{id} [put]
func (h *ZoneHandler) Update(c *fiber.Ctx) error {
	var in dto.ZoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	zone, err := h.svc.UpdateZone(c.Context(), c.Params("id"), zoneInput(in))
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, a valid zone_type and a non-negative delivery_fee are required"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "zone not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewZoneResponse(zone))
}

// Delete godoc
// @Summary      Delete zone (removes its assignments too)
// @Tags         zones
// @Security     Bearer
// @Param        id  path  string  true  "Zone ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zones/{id} [delete]
func (h *ZoneHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.DeleteZone(c.Context(), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "zone not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignProducts godoc
// @Summary      Bulk-assign products to a zone
// @Tags         zones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Zone ID"
// @Param        body  body  dto.AssignProductsRequest  true  "product ids + overrides"
// @Success      200   {array}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/zones/{id}/assignments [post]
func (h *ZoneHandler) AssignProducts(c *fiber.Ctx) error {
	zoneID := c.Params("id")
	var in dto.AssignProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if len(in.ProductIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_ids is required"})
	}
	ov := pricing.Overrides{
		BasePrice:   in.BasePrice,
		B2BPrice:    in.B2BPrice,
		B2CPrice:    in.B2CPrice,
		MinOrderQty: in.MinOrderQty,
		Priority:    in.Priority,
		Active:      in.Active,
	}
	if err := h.svc.AssignProductsToZone(c.Context(), in.ProductIDs, zoneID, ov); err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "priority must be between 1 and 10"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "zone not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return h.ListAssignments(c)
}

// ListAssignments godoc
// @Summary      List a zone's assignments
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Zone ID"
// @Success      200  {array}  dto.AssignmentResponse
// @Router       /api/zones/{id}/assignments [get]
func (h *ZoneHandler) ListAssignments(c *fiber.Ctx) error {
	list, err := h.svc.ListAssignments(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.NewAssignmentResponse(a))
	}
	return c.JSON(items)
}

// UpdateAssignment godoc
// @Summary      Update one product's assignment in a zone
// @Tags         zones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string  true  "Zone ID"
// @Param        productId  path  string  true  "Product ID"
// @Param        body       body  dto.AssignProductsRequest  true  "overrides"
// @Success      200        {object}  dto.AssignmentResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/zones/{id}/assignments/{productId} [put]
func (h *ZoneHandler) UpdateAssignment(c *fiber.Ctx) error {
	var in dto.AssignProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	ov := pricing.Overrides{
		BasePrice:   in.BasePrice,
		B2BPrice:    in.B2BPrice,
		B2CPrice:    in.B2CPrice,
		MinOrderQty: in.MinOrderQty,
		Priority:    in.Priority,
		Active:      in.Active,
	}
	a, err := h.svc.UpdateAssignment(c.Context(), c.Params("productId"), c.Params("id"), ov)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "priority must be between 1 and 10"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "assignment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewAssignmentResponse(a))
}

// RemoveAssignment godoc
// @Summary      Remove one product's assignment from a zone
// @Tags         zones
// @Security     Bearer
// @Param        id         path  string  true  "Zone ID"
// @Param        productId  path  string  true  "Product ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zones/{id}/assignments/{productId} [delete]
func (h *ZoneHandler) RemoveAssignment(c *fiber.Ctx) error {
	if err := h.svc.RemoveAssignment(c.Context(), c.Params("productId"), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "assignment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EffectivePrice godoc
// @Summary      Effective product price in a zone
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        id             path   string  true  "Zone ID"
// @Param        product_id     query  string  true  "Product ID"
// @Param        customer_type  query  string  true  "b2b | b2c (case-insensitive)"
// @Success      200  {object}  dto.EffectivePriceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zones/{id}/effective-price [get]
func (h *ZoneHandler) EffectivePrice(c *fiber.Ctx) error {
	zoneID := c.Params("id")
	productID := c.Query("product_id")
	customerType := strings.ToUpper(c.Query("customer_type"))
	if productID == "" || customerType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id and customer_type are required"})
	}
	price, err := h.svc.EffectivePrice(c.Context(), productID, zoneID, customerType)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_type must be b2b or b2c"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product or zone not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.EffectivePriceResponse{
		ProductID:    productID,
		ZoneID:       zoneID,
		CustomerType: customerType,
		Price:        price,
	})
}

// ResolveZone godoc
// @Summary      Pick the winning zone assignment for a product
// @Tags         zones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolveZoneRequest  true  "product id + candidate zone ids"
// @Success      200   {object}  dto.AssignmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/zones/resolve [post]
func (h *ZoneHandler) ResolveZone(c *fiber.Ctx) error {
	var in dto.ResolveZoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.ProductID == "" || len(in.ZoneIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id and zone_ids are required"})
	}
	a, err := h.svc.ResolveZone(c.Context(), in.ProductID, in.ZoneIDs)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no active assignment among the candidate zones"})
		case domain.ErrPriorityTie:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRIORITY_TIE", Message: "two assignments share the highest priority; fix the priorities"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewAssignmentResponse(a))
}

func zoneInput(in dto.ZoneRequest) pricing.ZoneInput {
	return pricing.ZoneInput{
		Name:               in.Name,
		ZoneType:           in.ZoneType,
		DeliveryFee:        in.DeliveryFee,
		DefaultB2BPrice:    in.DefaultB2BPrice,
		DefaultB2CPrice:    in.DefaultB2CPrice,
		DiscountPercentage: in.DiscountPercentage,
		CoverageAreas:      in.CoverageAreas,
		Active:             in.Active,
	}
}
