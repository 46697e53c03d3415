package service

import (
	"github.com/hbhotel/facilities-service/internal/domain"
)

// IncidentVisible reports whether a worker's dashboard includes the incident.
//
// Admin and the housekeeping supervisor see everything. Housekeeping sees only
// what it reported. Maintenance sees every unclaimed pending item (to
// self-serve), every in-progress item regardless of assignee (to avoid
// duplicate effort), and only its own completed history.
func IncidentVisible(w *domain.Worker, inc *domain.Incident) bool {
	if w == nil {
		return false
	}
	switch w.Role {
	case domain.RoleAdmin, domain.RoleHousekeepingSupervisor:
		return true
	case domain.RoleHousekeeping:
		return inc.ReporterID == w.ID
	case domain.RoleMaintenance:
		if inc.State == domain.IncidentStatePending && !inc.Assigned() {
			return true
		}
		if inc.State == domain.IncidentStateInProgress {
			return true
		}
		return inc.State == domain.IncidentStateCompleted && inc.AssigneeID == w.ID
	default:
		return false
	}
}

// TicketVisible reports whether a worker's dashboard includes the ticket.
// Housekeeping never sees maintenance tickets; maintenance sees only its own.
func TicketVisible(w *domain.Worker, t *domain.MaintenanceTicket) bool {
	if w == nil {
		return false
	}
	switch w.Role {
	case domain.RoleAdmin, domain.RoleHousekeepingSupervisor:
		return true
	case domain.RoleMaintenance:
		return t.AssigneeID == w.ID
	default:
		return false
	}
}

// VisibleIncidents narrows a set of incidents to those the worker may see.
func VisibleIncidents(w *domain.Worker, incidents []domain.Incident) []domain.Incident {
	result := make([]domain.Incident, 0, len(incidents))
	for i := range incidents {
		if IncidentVisible(w, &incidents[i]) {
			result = append(result, incidents[i])
		}
	}
	return result
}

// VisibleTickets narrows a set of tickets to those the worker may see.
func VisibleTickets(w *domain.Worker, tickets []domain.MaintenanceTicket) []domain.MaintenanceTicket {
	result := make([]domain.MaintenanceTicket, 0, len(tickets))
	for i := range tickets {
		if TicketVisible(w, &tickets[i]) {
			result = append(result, tickets[i])
		}
	}
	return result
}
