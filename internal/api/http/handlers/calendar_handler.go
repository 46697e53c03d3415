package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hbhotel/facilities-service/internal/api/dto"
	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/service"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// CalendarHandler manages calendar endpoints.
type CalendarHandler struct {
	service *service.CalendarService
}

// NewCalendarHandler constructs handler.
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: calendarService}
}

// List GET /calendar.
func (h *CalendarHandler) List(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	events, err := h.service.ListEvents(c.Context(), worker)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCalendarEventResponses(events)})
}

// Cleanup POST /calendar/cleanup.
func (h *CalendarHandler) Cleanup(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	deleted, err := h.service.CleanupOrphans(c.Context(), worker)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CleanupResponse{EventsDeleted: deleted}})
}
