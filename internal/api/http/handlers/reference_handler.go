package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hbhotel/facilities-service/internal/api/dto"
	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/domain"
	"github.com/hbhotel/facilities-service/internal/service"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// ReferenceHandler manages the areas, types and equipment catalog endpoints.
type ReferenceHandler struct {
	service *service.ReferenceService
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(referenceService *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: referenceService}
}

// ListAreas GET /areas.
func (h *ReferenceHandler) ListAreas(c *fiber.Ctx) error {
	areas, err := h.service.ListAreas(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAreaResponses(areas)})
}

// CreateArea POST /areas.
func (h *ReferenceHandler) CreateArea(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.AreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	area, err := h.service.CreateArea(c.Context(), worker, &domain.Area{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewAreaResponse(area)})
}

// UpdateArea PUT /areas/:id.
func (h *ReferenceHandler) UpdateArea(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.AreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	area, err := h.service.UpdateArea(c.Context(), worker, &domain.Area{
		ID:          c.Params("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAreaResponse(area)})
}

// DeleteArea DELETE /areas/:id.
func (h *ReferenceHandler) DeleteArea(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	if err := h.service.DeleteArea(c.Context(), worker, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTypes GET /types.
func (h *ReferenceHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.service.ListTypes(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTypeResponses(types)})
}

// CreateType POST /types.
func (h *ReferenceHandler) CreateType(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.TypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	t, err := h.service.CreateType(c.Context(), worker, &domain.EquipmentType{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTypeResponse(t)})
}

// UpdateType PUT /types/:id.
func (h *ReferenceHandler) UpdateType(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.TypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	t, err := h.service.UpdateType(c.Context(), worker, &domain.EquipmentType{
		ID:          c.Params("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTypeResponse(t)})
}

// DeleteType DELETE /types/:id.
func (h *ReferenceHandler) DeleteType(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	if err := h.service.DeleteType(c.Context(), worker, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListEquipment GET /equipment. An optional area query narrows the catalog.
func (h *ReferenceHandler) ListEquipment(c *fiber.Ctx) error {
	if areaID := c.Query("id_area"); areaID != "" {
		equipment, err := h.service.ListEquipmentByArea(c.Context(), areaID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": dto.NewEquipmentResponses(equipment)})
	}
	equipment, err := h.service.ListEquipment(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEquipmentResponses(equipment)})
}

// CreateEquipment POST /equipment.
func (h *ReferenceHandler) CreateEquipment(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.EquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	eq, err := h.service.CreateEquipment(c.Context(), worker, &domain.Equipment{
		Name:         req.Name,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		AreaID:       req.AreaID,
		TypeID:       req.TypeID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewEquipmentResponse(eq)})
}

// UpdateEquipment PUT /equipment/:id.
func (h *ReferenceHandler) UpdateEquipment(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.EquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	eq, err := h.service.UpdateEquipment(c.Context(), worker, &domain.Equipment{
		ID:           c.Params("id"),
		Name:         req.Name,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		AreaID:       req.AreaID,
		TypeID:       req.TypeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEquipmentResponse(eq)})
}

// DeleteEquipment DELETE /equipment/:id.
func (h *ReferenceHandler) DeleteEquipment(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	if err := h.service.DeleteEquipment(c.Context(), worker, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
