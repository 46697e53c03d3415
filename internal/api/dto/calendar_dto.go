package dto

import (
	"time"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// CalendarEventResponse mirrors a stored calendar entry.
type CalendarEventResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"titulo"`
	Description string             `json:"descripcion,omitempty"`
	EquipmentID string             `json:"id_equipo,omitempty"`
	AreaID      string             `json:"id_area,omitempty"`
	TypeID      string             `json:"id_tipo,omitempty"`
	TicketID    string             `json:"id_mantenimiento,omitempty"`
	Date        time.Time          `json:"fecha"`
	Time        string             `json:"hora,omitempty"`
	State       domain.TicketState `json:"estado"`
	Priority    domain.Priority    `json:"prioridad"`
	Recurring   bool               `json:"recurrente"`
}

// NewCalendarEventResponse maps a domain event onto the wire shape.
func NewCalendarEventResponse(event *domain.CalendarEvent) CalendarEventResponse {
	return CalendarEventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		EquipmentID: event.EquipmentID,
		AreaID:      event.AreaID,
		TypeID:      event.TypeID,
		TicketID:    event.TicketID,
		Date:        event.Date,
		Time:        event.Time,
		State:       event.State,
		Priority:    event.Priority,
		Recurring:   event.Recurring,
	}
}

// NewCalendarEventResponses maps a slice of events.
func NewCalendarEventResponses(events []domain.CalendarEvent) []CalendarEventResponse {
	items := make([]CalendarEventResponse, 0, len(events))
	for i := range events {
		items = append(items, NewCalendarEventResponse(&events[i]))
	}
	return items
}

// CleanupResponse reports the outcome of an orphan sweep.
type CleanupResponse struct {
	EventsDeleted int `json:"events_deleted"`
}
