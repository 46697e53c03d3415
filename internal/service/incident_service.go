package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hbhotel/facilities-service/internal/domain"
	"github.com/hbhotel/facilities-service/internal/events"
	"github.com/hbhotel/facilities-service/internal/repository"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// IncidentService handles incident creation and lifecycle transitions.
type IncidentService struct {
	incidents  repository.IncidentRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// IncidentDependencies bundles repositories.
type IncidentDependencies struct {
	IncidentRepo repository.IncidentRepository
	Dispatcher   events.Dispatcher
	Now          func() time.Time
}

// NewIncidentService creates the service.
func NewIncidentService(deps IncidentDependencies) *IncidentService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &IncidentService{
		incidents:  deps.IncidentRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// CreateIncidentInput carries caller-supplied incident fields.
type CreateIncidentInput struct {
	Area        string
	Location    string
	IsRoom      bool
	RoomNumber  string
	Floor       string
	Description string
	Priority    domain.Priority
}

// Create records a new incident. Only housekeeping and admins report
// incidents. The incident always starts pending and unassigned regardless of
// input; dispatch happens separately.
func (s *IncidentService) Create(ctx context.Context, reporter *domain.Worker, input CreateIncidentInput) (*domain.Incident, error) {
	if reporter == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if reporter.Role != domain.RoleHousekeeping && reporter.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only housekeeping may report incidents")
	}
	if strings.TrimSpace(input.Area) == "" {
		return nil, apperrors.NewValidationError("area is required", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description is required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !validPriority(priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": string(priority)})
	}

	incident := &domain.Incident{
		Area:         input.Area,
		Location:     input.Location,
		IsRoom:       input.IsRoom,
		RoomNumber:   input.RoomNumber,
		Floor:        input.Floor,
		Description:  input.Description,
		Priority:     priority,
		State:        domain.IncidentStatePending,
		ReporterID:   reporter.ID,
		ReporterName: reporter.Name,
		ReportedAt:   s.now(),
	}
	if err := s.incidents.Create(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventIncidentCreated, reporter, incident.ID, events.IncidentCreatedPayload{
		Area:     incident.Area,
		Priority: incident.Priority,
	})
	return incident, nil
}

// Get fetches a single incident, enforcing visibility for the caller.
func (s *IncidentService) Get(ctx context.Context, worker *domain.Worker, id string) (*domain.Incident, error) {
	incident, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IncidentVisible(worker, incident) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return incident, nil
}

// List returns the incidents the caller is allowed to see.
func (s *IncidentService) List(ctx context.Context, worker *domain.Worker) ([]domain.Incident, error) {
	if worker == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	all, err := s.incidents.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return VisibleIncidents(worker, all), nil
}

// AdminStart moves a pending incident to in_progress without touching its
// assignment. Only admins may start work on someone else's behalf.
func (s *IncidentService) AdminStart(ctx context.Context, actor *domain.Worker, id string) (*domain.Incident, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only admins may start incidents directly")
	}
	incident, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident.State != domain.IncidentStatePending {
		return nil, apperrors.NewIllegalTransition("incident is not pending", map[string]any{
			"incident_id": id,
			"state":       string(incident.State),
		})
	}
	old := incident.State
	startedAt := s.now()
	incident.State = domain.IncidentStateInProgress
	incident.StartedAt = &startedAt
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStatusChange(ctx, actor, incident, old)
	return incident, nil
}

// Complete closes an in-progress incident with a description of the work
// performed. The assignee or an admin may complete; a note is mandatory.
func (s *IncidentService) Complete(ctx context.Context, actor *domain.Worker, id, workPerformed string) (*domain.Incident, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if strings.TrimSpace(workPerformed) == "" {
		return nil, apperrors.NewValidationError("work performed note is required", nil)
	}
	incident, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident.State != domain.IncidentStateInProgress {
		return nil, apperrors.NewIllegalTransition("incident is not in progress", map[string]any{
			"incident_id": id,
			"state":       string(incident.State),
		})
	}
	if actor.Role != domain.RoleAdmin && incident.AssigneeID != actor.ID {
		return nil, apperrors.NewForbidden("only the assignee or an admin may complete the incident")
	}
	old := incident.State
	completedAt := s.now()
	incident.State = domain.IncidentStateCompleted
	incident.CompletedAt = &completedAt
	incident.WorkPerformed = workPerformed
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStatusChange(ctx, actor, incident, old)
	return incident, nil
}

// AddObservation attaches a follow-up note to a completed incident.
func (s *IncidentService) AddObservation(ctx context.Context, actor *domain.Worker, id, observation string) (*domain.Incident, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if strings.TrimSpace(observation) == "" {
		return nil, apperrors.NewValidationError("observation is required", nil)
	}
	incident, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident.State != domain.IncidentStateCompleted {
		return nil, apperrors.NewIllegalTransition("observations apply to completed incidents only", map[string]any{
			"incident_id": id,
			"state":       string(incident.State),
		})
	}
	if !IncidentVisible(actor, incident) {
		return nil, apperrors.NewForbidden("access denied")
	}
	incident.Observation = observation
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}
	return incident, nil
}

// Reopen resets an incident to a fresh pending state: assignment, both
// timestamps and both notes are cleared. The original report fields survive.
// Admin only, and a pending incident cannot be reopened.
func (s *IncidentService) Reopen(ctx context.Context, actor *domain.Worker, id string) (*domain.Incident, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only admins may reopen incidents")
	}
	incident, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident.State == domain.IncidentStatePending {
		return nil, apperrors.NewIllegalTransition("incident is already pending", map[string]any{"incident_id": id})
	}
	old := incident.State
	incident.State = domain.IncidentStatePending
	incident.AssigneeID = ""
	incident.AssigneeName = ""
	incident.StartedAt = nil
	incident.CompletedAt = nil
	incident.Observation = ""
	incident.WorkPerformed = ""
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStatusChange(ctx, actor, incident, old)
	return incident, nil
}

// UpdateIncidentInput carries the editable report fields.
type UpdateIncidentInput struct {
	Area        *string
	Location    *string
	RoomNumber  *string
	Floor       *string
	Description *string
	Priority    *domain.Priority
}

// Update edits the descriptive fields of an incident. Requires the editor
// permission (or admin); lifecycle fields are never touched here.
func (s *IncidentService) Update(ctx context.Context, actor *domain.Worker, id string, input UpdateIncidentInput) (*domain.Incident, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if !actor.CanEditIncidents() {
		return nil, apperrors.NewForbidden("editor permission required")
	}
	incident, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Area != nil {
		if strings.TrimSpace(*input.Area) == "" {
			return nil, apperrors.NewValidationError("area cannot be empty", nil)
		}
		incident.Area = *input.Area
	}
	if input.Location != nil {
		incident.Location = *input.Location
	}
	if input.RoomNumber != nil {
		incident.RoomNumber = *input.RoomNumber
	}
	if input.Floor != nil {
		incident.Floor = *input.Floor
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, apperrors.NewValidationError("description cannot be empty", nil)
		}
		incident.Description = *input.Description
	}
	if input.Priority != nil {
		if !validPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": string(*input.Priority)})
		}
		incident.Priority = *input.Priority
	}
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}
	return incident, nil
}

// Delete removes an incident record. Requires the editor permission.
func (s *IncidentService) Delete(ctx context.Context, actor *domain.Worker, id string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("worker required")
	}
	if !actor.CanEditIncidents() {
		return apperrors.NewForbidden("editor permission required")
	}
	if _, err := s.fetch(ctx, id); err != nil {
		return err
	}
	if err := s.incidents.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *IncidentService) fetch(ctx context.Context, id string) (*domain.Incident, error) {
	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("incident", map[string]any{"incident_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return incident, nil
}

func (s *IncidentService) publishStatusChange(ctx context.Context, actor *domain.Worker, incident *domain.Incident, old domain.IncidentState) {
	s.publish(ctx, events.EventIncidentStatusChanged, actor, incident.ID, events.IncidentStatusChangedPayload{
		OldState: old,
		NewState: incident.State,
	})
}

func (s *IncidentService) publish(ctx context.Context, eventType events.EventType, actor *domain.Worker, subjectID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     events.Actor{WorkerID: actor.ID, Role: actor.Role},
		Timestamp: s.now(),
		Payload:   payload,
	})
}

func validPriority(p domain.Priority) bool {
	switch p {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityUrgent:
		return true
	}
	return false
}
