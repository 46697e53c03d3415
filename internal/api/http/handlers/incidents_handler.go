package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hbhotel/facilities-service/internal/api/dto"
	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/service"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// IncidentsHandler manages incident endpoints.
type IncidentsHandler struct {
	incidents  *service.IncidentService
	assignment *service.AssignmentService
}

// NewIncidentsHandler constructs handler.
func NewIncidentsHandler(incidents *service.IncidentService, assignment *service.AssignmentService) *IncidentsHandler {
	return &IncidentsHandler{incidents: incidents, assignment: assignment}
}

// Create POST /incidents.
func (h *IncidentsHandler) Create(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	incident, err := h.incidents.Create(c.Context(), worker, service.CreateIncidentInput{
		Area:        req.Area,
		Location:    req.Location,
		IsRoom:      req.IsRoom,
		RoomNumber:  req.RoomNumber,
		Floor:       req.Floor,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewIncidentResponse(incident)})
}

// List GET /incidents.
func (h *IncidentsHandler) List(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	incidents, err := h.incidents.List(c.Context(), worker)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponses(incidents)})
}

// Get GET /incidents/:id.
func (h *IncidentsHandler) Get(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	incident, err := h.incidents.Get(c.Context(), worker, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponse(incident)})
}

// Update PATCH /incidents/:id.
func (h *IncidentsHandler) Update(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.UpdateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	incident, err := h.incidents.Update(c.Context(), worker, c.Params("id"), service.UpdateIncidentInput{
		Area:        req.Area,
		Location:    req.Location,
		RoomNumber:  req.RoomNumber,
		Floor:       req.Floor,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponse(incident)})
}

// Delete DELETE /incidents/:id.
func (h *IncidentsHandler) Delete(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	if err := h.incidents.Delete(c.Context(), worker, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Claim POST /incidents/:id/claim.
func (h *IncidentsHandler) Claim(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	incident, err := h.assignment.SelfClaim(c.Context(), worker, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponse(incident)})
}

// Assign POST /incidents/:id/assign.
func (h *IncidentsHandler) Assign(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.AssignIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.WorkerID == "" {
		return apperrors.NewValidationError("id_usuario required", nil)
	}
	incident, err := h.assignment.AssignToWorker(c.Context(), worker, c.Params("id"), req.WorkerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponse(incident)})
}

// AutoAssign POST /incidents/:id/auto-assign.
func (h *IncidentsHandler) AutoAssign(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	incident, err := h.assignment.AutoAssign(c.Context(), worker, c.Params("id"))
	if err != nil {
		return err
	}
	if incident == nil {
		// no eligible maintenance worker; the incident stays in the pool
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponse(incident)})
}

// Start POST /incidents/:id/start.
func (h *IncidentsHandler) Start(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	incident, err := h.incidents.AdminStart(c.Context(), worker, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponse(incident)})
}

// Complete POST /incidents/:id/complete.
func (h *IncidentsHandler) Complete(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.CompleteIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	incident, err := h.incidents.Complete(c.Context(), worker, c.Params("id"), req.WorkPerformed)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponse(incident)})
}

// Observe POST /incidents/:id/observation.
func (h *IncidentsHandler) Observe(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	var req dto.ObservationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	incident, err := h.incidents.AddObservation(c.Context(), worker, c.Params("id"), req.Observation)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponse(incident)})
}

// Reopen POST /incidents/:id/reopen.
func (h *IncidentsHandler) Reopen(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	incident, err := h.incidents.Reopen(c.Context(), worker, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIncidentResponse(incident)})
}
