package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/hbhotel/facilities-service/internal/domain"
	"github.com/hbhotel/facilities-service/internal/events"
	"github.com/hbhotel/facilities-service/internal/repository"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// defaultEventTime is used when a scheduled ticket carries no time of day.
const defaultEventTime = "09:00"

// CalendarService keeps calendar entries in step with scheduled maintenance
// tickets and removes entries whose ticket no longer exists.
type CalendarService struct {
	calendar   repository.CalendarRepository
	tickets    repository.MaintenanceRepository
	equipment  repository.EquipmentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// CalendarDependencies bundles repositories.
type CalendarDependencies struct {
	CalendarRepo  repository.CalendarRepository
	TicketRepo    repository.MaintenanceRepository
	EquipmentRepo repository.EquipmentRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	Now           func() time.Time
}

// NewCalendarService creates the service.
func NewCalendarService(deps CalendarDependencies) *CalendarService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		calendar:   deps.CalendarRepo,
		tickets:    deps.TicketRepo,
		equipment:  deps.EquipmentRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// SyncTicket materializes a calendar event for a scheduled ticket. The event
// title comes from the equipment name; missing equipment falls back to the
// ticket description. Tickets without a scheduled date produce nothing.
func (s *CalendarService) SyncTicket(ctx context.Context, ticket *domain.MaintenanceTicket) (*domain.CalendarEvent, error) {
	if ticket.ScheduledFor == nil {
		return nil, nil
	}

	title := ticket.Description
	if ticket.EquipmentID != "" {
		eq, err := s.equipment.GetByID(ctx, ticket.EquipmentID)
		if err == nil {
			title = eq.Name
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}

	event := &domain.CalendarEvent{
		Title:       title,
		Description: ticket.Description,
		EquipmentID: ticket.EquipmentID,
		AreaID:      ticket.AreaID,
		TypeID:      ticket.TypeID,
		TicketID:    ticket.ID,
		Date:        *ticket.ScheduledFor,
		Time:        defaultEventTime,
		State:       ticket.State,
		Priority:    ticket.Priority,
	}
	if err := s.calendar.Create(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// ListEvents returns calendar events ordered by date, then time of day.
func (s *CalendarService) ListEvents(ctx context.Context, worker *domain.Worker) ([]domain.CalendarEvent, error) {
	if worker == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if worker.Role == domain.RoleHousekeeping {
		return nil, apperrors.NewForbidden("housekeeping has no calendar access")
	}
	all, err := s.calendar.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.Before(all[j].Date)
		}
		return all[i].Time < all[j].Time
	})
	return all, nil
}

// CascadeDelete removes all calendar events linked to a ticket and returns
// how many were removed.
func (s *CalendarService) CascadeDelete(ctx context.Context, ticketID string) (int, error) {
	linked, err := s.calendar.ListByTicket(ctx, ticketID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	deleted := 0
	for i := range linked {
		if err := s.calendar.Delete(ctx, linked[i].ID); err != nil {
			return deleted, apperrors.MapError(err)
		}
		deleted++
	}
	return deleted, nil
}

// CleanupOrphans deletes every calendar event whose ticket link is empty or
// points at no existing ticket. Admin only; safe to run repeatedly, a second
// run deletes nothing.
func (s *CalendarService) CleanupOrphans(ctx context.Context, actor *domain.Worker) (int, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return 0, apperrors.NewForbidden("only admins may run calendar cleanup")
	}

	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	known := make(map[string]struct{}, len(tickets))
	for i := range tickets {
		known[tickets[i].ID] = struct{}{}
	}

	all, err := s.calendar.List(ctx)
	if err != nil {
		return 0, apperrors.MapError(err)
	}

	deleted := 0
	for i := range all {
		if !all[i].Orphaned(known) {
			continue
		}
		if err := s.calendar.Delete(ctx, all[i].ID); err != nil {
			return deleted, apperrors.MapError(err)
		}
		deleted++
	}

	s.logger.Info("calendar cleanup finished",
		zap.Int("events_deleted", deleted),
		zap.String("actor_id", actor.ID))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCalendarCleanupRun,
			Actor:     events.Actor{WorkerID: actor.ID, Role: actor.Role},
			Timestamp: s.now(),
			Payload:   events.CalendarCleanupPayload{EventsDeleted: deleted},
		})
	}
	return deleted, nil
}
