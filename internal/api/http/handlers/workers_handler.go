package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hbhotel/facilities-service/internal/api/dto"
	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/service"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// WorkersHandler exposes read-only staff listings.
type WorkersHandler struct {
	service *service.WorkerService
}

// NewWorkersHandler constructs handler.
func NewWorkersHandler(workerService *service.WorkerService) *WorkersHandler {
	return &WorkersHandler{service: workerService}
}

// List GET /workers.
func (h *WorkersHandler) List(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	workers, err := h.service.List(c.Context(), worker)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkerResponses(workers)})
}

// ListMaintenance GET /workers/maintenance.
func (h *WorkersHandler) ListMaintenance(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	workers, err := h.service.ListMaintenanceWorkers(c.Context(), worker)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkerResponses(workers)})
}
