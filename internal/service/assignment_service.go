package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hbhotel/facilities-service/internal/domain"
	"github.com/hbhotel/facilities-service/internal/events"
	"github.com/hbhotel/facilities-service/internal/repository"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// AssignmentService handles incident claiming and load-balanced dispatch.
type AssignmentService struct {
	incidents  repository.IncidentRepository
	workers    repository.WorkerRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	IncidentRepo repository.IncidentRepository
	WorkerRepo   repository.WorkerRepository
	Dispatcher   events.Dispatcher
	Now          func() time.Time
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &AssignmentService{
		incidents:  deps.IncidentRepo,
		workers:    deps.WorkerRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// SelfClaim lets a maintenance worker take an unclaimed pending incident.
// The claim is a single conditional update; when two workers race, exactly
// one wins and the loser gets a conflict.
func (s *AssignmentService) SelfClaim(ctx context.Context, worker *domain.Worker, incidentID string) (*domain.Incident, error) {
	if worker == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if worker.Role != domain.RoleMaintenance {
		return nil, apperrors.NewForbidden("only maintenance staff may claim incidents")
	}

	claimed, err := s.incidents.Claim(ctx, incidentID, worker.ID, worker.Name, s.now())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !claimed {
		// Distinguish a lost race from a missing incident.
		if _, err := s.incidents.GetByID(ctx, incidentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("incident", map[string]any{"incident_id": incidentID})
			}
			return nil, apperrors.MapError(err)
		}
		return nil, apperrors.NewConflict("incident already claimed or not pending", map[string]any{"incident_id": incidentID})
	}

	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventIncidentClaimed, worker, incident.ID, events.IncidentClaimedPayload{
		AssigneeID:   worker.ID,
		AssigneeName: worker.Name,
	})
	return incident, nil
}

// AssignToWorker assigns a pending unassigned incident to a named maintenance
// worker. Admin only. The incident stays pending; the assignee starts it.
func (s *AssignmentService) AssignToWorker(ctx context.Context, actor *domain.Worker, incidentID, workerID string) (*domain.Incident, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only admins may assign incidents")
	}

	target, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return nil, apperrors.MapError(err)
	}
	if target.Role != domain.RoleMaintenance || !target.Active {
		return nil, apperrors.NewValidationError("assignee must be an active maintenance worker", map[string]any{"worker_id": workerID})
	}

	return s.assign(ctx, actor, incidentID, target, false)
}

// AutoAssign picks the active maintenance worker with the fewest open
// incidents and assigns the incident to them. Ties go to the worker listed
// first. Returns (nil, nil) when no active maintenance worker exists; the
// incident simply stays in the unclaimed pool.
func (s *AssignmentService) AutoAssign(ctx context.Context, actor *domain.Worker, incidentID string) (*domain.Incident, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only admins may auto-assign incidents")
	}

	candidates, err := s.workers.ListActiveByRole(ctx, domain.RoleMaintenance)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	loads, err := s.openLoads(ctx)
	if err != nil {
		return nil, err
	}

	best := &candidates[0]
	bestLoad := loads[best.ID]
	for i := 1; i < len(candidates); i++ {
		if load := loads[candidates[i].ID]; load < bestLoad {
			best = &candidates[i]
			bestLoad = load
		}
	}

	return s.assign(ctx, actor, incidentID, best, true)
}

// openLoads counts pending and in-progress incidents per assignee. The count
// is recomputed from current state on every dispatch; nothing is cached.
func (s *AssignmentService) openLoads(ctx context.Context) (map[string]int, error) {
	all, err := s.incidents.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	loads := make(map[string]int)
	for i := range all {
		if all[i].Assigned() && all[i].Open() {
			loads[all[i].AssigneeID]++
		}
	}
	return loads, nil
}

func (s *AssignmentService) assign(ctx context.Context, actor *domain.Worker, incidentID string, target *domain.Worker, auto bool) (*domain.Incident, error) {
	assigned, err := s.incidents.Assign(ctx, incidentID, target.ID, target.Name)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !assigned {
		if _, err := s.incidents.GetByID(ctx, incidentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("incident", map[string]any{"incident_id": incidentID})
			}
			return nil, apperrors.MapError(err)
		}
		return nil, apperrors.NewConflict("incident already assigned or not pending", map[string]any{"incident_id": incidentID})
	}

	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventIncidentAssigned, actor, incident.ID, events.IncidentAssignedPayload{
		AssigneeID:   target.ID,
		AssigneeName: target.Name,
		AutoBalanced: auto,
	})
	return incident, nil
}

func (s *AssignmentService) publish(ctx context.Context, eventType events.EventType, actor *domain.Worker, subjectID string, payload any) {
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
