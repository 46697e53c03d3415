package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hbhotel/facilities-service/internal/api/dto"
	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/service"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// MaintenanceHandler manages maintenance ticket endpoints.
type MaintenanceHandler struct {
	service *service.MaintenanceService
}

// NewMaintenanceHandler constructs handler.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: maintenanceService}
}

// Create POST /maintenance.
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Create(c.Context(), worker, service.CreateTicketInput{
		AreaID:       req.AreaID,
		TypeID:       req.TypeID,
		EquipmentID:  req.EquipmentID,
		Description:  req.Description,
		Priority:     req.Priority,
		ScheduledFor: req.ScheduledFor,
		AssigneeID:   req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// List GET /maintenance.
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	tickets, err := h.service.List(c.Context(), worker)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// Get GET /maintenance/:id.
func (h *MaintenanceHandler) Get(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	ticket, err := h.service.Get(c.Context(), worker, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// GenerateWorkOrder POST /maintenance/:id/work-order.
func (h *MaintenanceHandler) GenerateWorkOrder(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	ticket, err := h.service.GenerateWorkOrder(c.Context(), worker, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Start POST /maintenance/:id/start.
func (h *MaintenanceHandler) Start(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	ticket, err := h.service.Start(c.Context(), worker, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Finish POST /maintenance/:id/finish.
func (h *MaintenanceHandler) Finish(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.FinishTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Finish(c.Context(), worker, c.Params("id"), req.WorkPerformed, req.Observation)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Delete DELETE /maintenance/:id.
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	if err := h.service.Delete(c.Context(), worker, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddPart POST /maintenance/:id/parts.
func (h *MaintenanceHandler) AddPart(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.AddPartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	part, err := h.service.AddPart(c.Context(), worker, c.Params("id"), service.AddPartInput{
		Name:      req.Name,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Supplier:  req.Supplier,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPartResponse(part)})
}

// ListParts GET /maintenance/:id/parts.
func (h *MaintenanceHandler) ListParts(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	summary, err := h.service.ListParts(c.Context(), worker, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.PartResponse, 0, len(summary.Parts))
	for i := range summary.Parts {
		items = append(items, dto.NewPartResponse(&summary.Parts[i]))
	}
	return c.JSON(fiber.Map{"data": dto.PartsSummaryResponse{
		Parts:     items,
		TotalCost: summary.TotalCost,
	}})
}

// RemovePart DELETE /maintenance/:id/parts/:partId.
func (h *MaintenanceHandler) RemovePart(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	if err := h.service.RemovePart(c.Context(), worker, c.Params("id"), c.Params("partId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Suppliers GET /maintenance/suppliers.
func (h *MaintenanceHandler) Suppliers(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	suppliers, err := h.service.Suppliers(c.Context(), worker)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": suppliers})
}
