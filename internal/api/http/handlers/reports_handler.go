package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hbhotel/facilities-service/internal/api/dto"
	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/service"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// ReportsHandler serves day views, history and dashboard figures.
type ReportsHandler struct {
	history *service.HistoryService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(historyService *service.HistoryService) *ReportsHandler {
	return &ReportsHandler{history: historyService}
}

// dayViewResponse packages one day of work.
type dayViewResponse struct {
	Day       string                 `json:"fecha"`
	Incidents []dto.IncidentResponse `json:"incidentes"`
	Tickets   []dto.TicketResponse   `json:"mantenimientos"`
}

// Today GET /reports/today.
func (h *ReportsHandler) Today(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	view, err := h.history.Today(c.Context(), worker)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newDayView(view)})
}

// Day GET /reports/day/:date with date formatted YYYY-MM-DD.
func (h *ReportsHandler) Day(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	day, err := time.ParseInLocation("2006-01-02", c.Params("date"), time.Local)
	if err != nil {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": c.Params("date")})
	}
	view, err := h.history.Day(c.Context(), worker, day)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newDayView(view)})
}

// Stats GET /reports/stats.
func (h *ReportsHandler) Stats(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	stats, err := h.history.Stats(c.Context(), worker)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

func newDayView(view *service.DayView) dayViewResponse {
	return dayViewResponse{
		Day:       view.Day.Format("2006-01-02"),
		Incidents: dto.NewIncidentResponses(view.Incidents),
		Tickets:   dto.NewTicketResponses(view.Tickets),
	}
}
