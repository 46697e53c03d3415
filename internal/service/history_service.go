package service

import (
	"context"
	"time"

	"github.com/hbhotel/facilities-service/internal/domain"
	"github.com/hbhotel/facilities-service/internal/repository"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// HistoryService answers day-granularity questions about past work and
// packages dashboard figures.
type HistoryService struct {
	incidents repository.IncidentRepository
	tickets   repository.MaintenanceRepository
	now       func() time.Time
}

// HistoryDependencies bundles repositories.
type HistoryDependencies struct {
	IncidentRepo repository.IncidentRepository
	TicketRepo   repository.MaintenanceRepository
	Now          func() time.Time
}

// NewHistoryService creates the service.
func NewHistoryService(deps HistoryDependencies) *HistoryService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &HistoryService{
		incidents: deps.IncidentRepo,
		tickets:   deps.TicketRepo,
		now:       now,
	}
}

// sameDay compares two instants at day granularity in the given location.
func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// IncidentsOn returns the caller-visible incidents reported on the given day.
// The report timestamp governs membership; lifecycle timestamps do not.
func (s *HistoryService) IncidentsOn(ctx context.Context, worker *domain.Worker, day time.Time) ([]domain.Incident, error) {
	if worker == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	all, err := s.incidents.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	visible := VisibleIncidents(worker, all)
	result := make([]domain.Incident, 0, len(visible))
	for i := range visible {
		if sameDay(visible[i].ReportedAt, day, day.Location()) {
			result = append(result, visible[i])
		}
	}
	return result, nil
}

// TicketsOn returns the caller-visible tickets whose governing date falls on
// the given day: completion date when completed, start date otherwise.
// Tickets that never started are excluded from every day.
func (s *HistoryService) TicketsOn(ctx context.Context, worker *domain.Worker, day time.Time) ([]domain.MaintenanceTicket, error) {
	if worker == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	all, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	visible := VisibleTickets(worker, all)
	result := make([]domain.MaintenanceTicket, 0, len(visible))
	for i := range visible {
		governing, ok := visible[i].GoverningDate()
		if !ok {
			continue
		}
		if sameDay(governing, day, day.Location()) {
			result = append(result, visible[i])
		}
	}
	return result, nil
}

// DayView packages the incidents and tickets for one day.
type DayView struct {
	Day       time.Time
	Incidents []domain.Incident
	Tickets   []domain.MaintenanceTicket
}

// Today returns the caller's open work for the current day: not-completed
// incidents reported today plus not-completed tickets scheduled for today.
// Unlike Day, finished items drop off the list.
func (s *HistoryService) Today(ctx context.Context, worker *domain.Worker) (*DayView, error) {
	if worker == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	now := s.now()

	allIncidents, err := s.incidents.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	incidents := make([]domain.Incident, 0)
	for _, inc := range VisibleIncidents(worker, allIncidents) {
		if inc.Open() && sameDay(inc.ReportedAt, now, now.Location()) {
			incidents = append(incidents, inc)
		}
	}

	allTickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	tickets := make([]domain.MaintenanceTicket, 0)
	for _, t := range VisibleTickets(worker, allTickets) {
		if t.State == domain.TicketStateCompleted || t.ScheduledFor == nil {
			continue
		}
		if sameDay(*t.ScheduledFor, now, now.Location()) {
			tickets = append(tickets, t)
		}
	}

	return &DayView{Day: now, Incidents: incidents, Tickets: tickets}, nil
}

// Day returns the caller's view of a single day's work.
func (s *HistoryService) Day(ctx context.Context, worker *domain.Worker, day time.Time) (*DayView, error) {
	incidents, err := s.IncidentsOn(ctx, worker, day)
	if err != nil {
		return nil, err
	}
	tickets, err := s.TicketsOn(ctx, worker, day)
	if err != nil {
		return nil, err
	}
	return &DayView{Day: day, Incidents: incidents, Tickets: tickets}, nil
}

// DashboardStats summarizes current workload by state.
type DashboardStats struct {
	IncidentsPending    int `json:"incidents_pending"`
	IncidentsInProgress int `json:"incidents_in_progress"`
	IncidentsCompleted  int `json:"incidents_completed"`
	IncidentsUnassigned int `json:"incidents_unassigned"`
	TicketsScheduled    int `json:"tickets_scheduled"`
	TicketsActive       int `json:"tickets_active"`
	TicketsCompleted    int `json:"tickets_completed"`
}

// Stats counts caller-visible work items per state for the dashboard.
func (s *HistoryService) Stats(ctx context.Context, worker *domain.Worker) (*DashboardStats, error) {
	if worker == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	allIncidents, err := s.incidents.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	allTickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &DashboardStats{}
	for _, inc := range VisibleIncidents(worker, allIncidents) {
		switch inc.State {
		case domain.IncidentStatePending:
			stats.IncidentsPending++
			if !inc.Assigned() {
				stats.IncidentsUnassigned++
			}
		case domain.IncidentStateInProgress:
			stats.IncidentsInProgress++
		case domain.IncidentStateCompleted:
			stats.IncidentsCompleted++
		}
	}
	for _, t := range VisibleTickets(worker, allTickets) {
		switch t.State {
		case domain.TicketStateScheduled, domain.TicketStateOrderGenerated:
			stats.TicketsScheduled++
		case domain.TicketStateActive:
			stats.TicketsActive++
		case domain.TicketStateCompleted:
			stats.TicketsCompleted++
		}
	}
	return stats, nil
}
