package events

import (
	"time"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIncidentCreated       EventType = "incident_created"
	EventIncidentClaimed       EventType = "incident_claimed"
	EventIncidentAssigned      EventType = "incident_assigned"
	EventIncidentStatusChanged EventType = "incident_status_changed"
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketDeleted         EventType = "ticket_deleted"
	EventCalendarCleanupRun    EventType = "calendar_cleanup_run"
)

// Actor identifies the worker that triggered an event.
type Actor struct {
	WorkerID string      `json:"worker_id"`
	Role     domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IncidentCreatedPayload payload.
type IncidentCreatedPayload struct {
	Area     string          `json:"area"`
	Priority domain.Priority `json:"priority"`
}

// IncidentClaimedPayload payload.
type IncidentClaimedPayload struct {
	AssigneeID   string `json:"assignee_id"`
	AssigneeName string `json:"assignee_name"`
}

// IncidentAssignedPayload payload.
type IncidentAssignedPayload struct {
	AssigneeID   string `json:"assignee_id"`
	AssigneeName string `json:"assignee_name"`
	AutoBalanced bool   `json:"auto_balanced"`
}

// IncidentStatusChangedPayload payload.
type IncidentStatusChangedPayload struct {
	OldState domain.IncidentState `json:"old_state"`
	NewState domain.IncidentState `json:"new_state"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	EquipmentID string          `json:"equipment_id"`
	Priority    domain.Priority `json:"priority"`
	Scheduled   bool            `json:"scheduled"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldState domain.TicketState `json:"old_state"`
	NewState domain.TicketState `json:"new_state"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	CalendarEventsDeleted int `json:"calendar_events_deleted"`
}

// CalendarCleanupPayload payload.
type CalendarCleanupPayload struct {
	EventsDeleted int `json:"events_deleted"`
}
