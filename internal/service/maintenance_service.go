package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/hbhotel/facilities-service/internal/domain"
	"github.com/hbhotel/facilities-service/internal/events"
	"github.com/hbhotel/facilities-service/internal/repository"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// MaintenanceService handles scheduled maintenance tickets, their parts and
// work orders.
type MaintenanceService struct {
	tickets    repository.MaintenanceRepository
	parts      repository.PartRepository
	equipment  repository.EquipmentRepository
	workers    repository.WorkerRepository
	calendar   *CalendarService
	renderer   WorkOrderRenderer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// MaintenanceDependencies bundles repositories and collaborators.
type MaintenanceDependencies struct {
	TicketRepo    repository.MaintenanceRepository
	PartRepo      repository.PartRepository
	EquipmentRepo repository.EquipmentRepository
	WorkerRepo    repository.WorkerRepository
	Calendar      *CalendarService
	Renderer      WorkOrderRenderer
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	Now           func() time.Time
}

// NewMaintenanceService creates the service.
func NewMaintenanceService(deps MaintenanceDependencies) *MaintenanceService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := deps.Renderer
	if renderer == nil {
		renderer = NewLoggingWorkOrderRenderer(logger)
	}
	return &MaintenanceService{
		tickets:    deps.TicketRepo,
		parts:      deps.PartRepo,
		equipment:  deps.EquipmentRepo,
		workers:    deps.WorkerRepo,
		calendar:   deps.Calendar,
		renderer:   renderer,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// CreateTicketInput carries caller-supplied ticket fields.
type CreateTicketInput struct {
	AreaID       string
	TypeID       string
	EquipmentID  string
	Description  string
	Priority     domain.Priority
	ScheduledFor *time.Time
	AssigneeID   string
}

// Create records a scheduled maintenance ticket. Area, type and equipment
// references are all required, and the equipment must belong to the
// referenced area. When a scheduled date is present, a
// matching calendar event is created in the same operation.
func (s *MaintenanceService) Create(ctx context.Context, actor *domain.Worker, input CreateTicketInput) (*domain.MaintenanceTicket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if actor.Role == domain.RoleHousekeeping {
		return nil, apperrors.NewForbidden("housekeeping may not create maintenance tickets")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description is required", nil)
	}
	if strings.TrimSpace(input.AreaID) == "" {
		return nil, apperrors.NewValidationError("area is required", nil)
	}
	if strings.TrimSpace(input.TypeID) == "" {
		return nil, apperrors.NewValidationError("maintenance type is required", nil)
	}
	if strings.TrimSpace(input.EquipmentID) == "" {
		return nil, apperrors.NewValidationError("equipment is required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !validPriority(priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": string(priority)})
	}
	eq, err := s.equipment.GetByID(ctx, input.EquipmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewReferentialError("equipment does not exist", map[string]any{"equipment_id": input.EquipmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if eq.AreaID != input.AreaID {
		return nil, apperrors.NewReferentialError("equipment does not belong to the area", map[string]any{
			"equipment_id": input.EquipmentID,
			"area_id":      input.AreaID,
		})
	}
	if input.AssigneeID != "" {
		assignee, err := s.workers.GetByID(ctx, input.AssigneeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewReferentialError("assignee does not exist", map[string]any{"worker_id": input.AssigneeID})
			}
			return nil, apperrors.MapError(err)
		}
		if assignee.Role != domain.RoleMaintenance || !assignee.Active {
			return nil, apperrors.NewValidationError("assignee must be an active maintenance worker", map[string]any{"worker_id": input.AssigneeID})
		}
	}

	ticket := &domain.MaintenanceTicket{
		AreaID:       input.AreaID,
		TypeID:       input.TypeID,
		EquipmentID:  input.EquipmentID,
		Description:  input.Description,
		Priority:     priority,
		State:        domain.TicketStateScheduled,
		RequestedAt:  s.now(),
		ScheduledFor: input.ScheduledFor,
		AssigneeID:   input.AssigneeID,
		RequesterID:  actor.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.calendar != nil {
		if _, err := s.calendar.SyncTicket(ctx, ticket); err != nil {
			s.logger.Warn("calendar sync failed for new ticket",
				zap.String("ticket_id", ticket.ID),
				zap.Error(err))
		}
	}

	s.publish(ctx, events.EventTicketCreated, actor, ticket.ID, events.TicketCreatedPayload{
		EquipmentID: ticket.EquipmentID,
		Priority:    ticket.Priority,
		Scheduled:   ticket.ScheduledFor != nil,
	})
	return ticket, nil
}

// Get fetches a single ticket, enforcing visibility for the caller.
func (s *MaintenanceService) Get(ctx context.Context, worker *domain.Worker, id string) (*domain.MaintenanceTicket, error) {
	ticket, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !TicketVisible(worker, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// List returns the tickets the caller is allowed to see.
func (s *MaintenanceService) List(ctx context.Context, worker *domain.Worker) ([]domain.MaintenanceTicket, error) {
	if worker == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	all, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return VisibleTickets(worker, all), nil
}

// GenerateWorkOrder renders the printable order for a ticket and records the
// fact. Allowed while the ticket is scheduled or already order_generated;
// regenerating is fine, the flag just stays set.
func (s *MaintenanceService) GenerateWorkOrder(ctx context.Context, actor *domain.Worker, id string) (*domain.MaintenanceTicket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if actor.Role == domain.RoleHousekeeping {
		return nil, apperrors.NewForbidden("access denied")
	}
	ticket, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.State != domain.TicketStateScheduled && ticket.State != domain.TicketStateOrderGenerated {
		return nil, apperrors.NewIllegalTransition("work order requires a scheduled ticket", map[string]any{
			"ticket_id": id,
			"state":     string(ticket.State),
		})
	}

	parts, err := s.parts.ListByTicket(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.renderer.Render(ctx, ticket, parts); err != nil {
		return nil, apperrors.MapError(err)
	}

	old := ticket.State
	ticket.State = domain.TicketStateOrderGenerated
	ticket.WorkOrderGenerated = true
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if old != ticket.State {
		s.publishStatusChange(ctx, actor, ticket, old)
	}
	return ticket, nil
}

// Start moves a ticket into active work. Legal from scheduled or
// order_generated; generating the order first is optional.
func (s *MaintenanceService) Start(ctx context.Context, actor *domain.Worker, id string) (*domain.MaintenanceTicket, error) {
	return s.transition(ctx, actor, id, domain.TicketStateActive, func(ticket *domain.MaintenanceTicket) {
		startedAt := s.now()
		ticket.StartedAt = &startedAt
	})
}

// Finish completes an active ticket with a description of the work done and
// an optional final observation.
func (s *MaintenanceService) Finish(ctx context.Context, actor *domain.Worker, id, workPerformed, observation string) (*domain.MaintenanceTicket, error) {
	if strings.TrimSpace(workPerformed) == "" {
		return nil, apperrors.NewValidationError("work performed note is required", nil)
	}
	return s.transition(ctx, actor, id, domain.TicketStateCompleted, func(ticket *domain.MaintenanceTicket) {
		completedAt := s.now()
		ticket.CompletedAt = &completedAt
		ticket.WorkPerformed = workPerformed
		ticket.Observation = observation
	})
}

func (s *MaintenanceService) transition(ctx context.Context, actor *domain.Worker, id string, next domain.TicketState, apply func(*domain.MaintenanceTicket)) (*domain.MaintenanceTicket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	ticket, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !TicketVisible(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if !domain.CanTransition(ticket.State, next) {
		return nil, apperrors.NewIllegalTransition("transition not allowed", map[string]any{
			"ticket_id": id,
			"from":      string(ticket.State),
			"to":        string(next),
		})
	}
	old := ticket.State
	ticket.State = next
	apply(ticket)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStatusChange(ctx, actor, ticket, old)
	return ticket, nil
}

// Delete removes a ticket and every calendar event linked to it. Admin only.
func (s *MaintenanceService) Delete(ctx context.Context, actor *domain.Worker, id string) error {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("only admins may delete maintenance tickets")
	}
	if _, err := s.fetch(ctx, id); err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	deleted := 0
	if s.calendar != nil {
		var err error
		deleted, err = s.calendar.CascadeDelete(ctx, id)
		if err != nil {
			return err
		}
	}
	s.publish(ctx, events.EventTicketDeleted, actor, id, events.TicketDeletedPayload{
		CalendarEventsDeleted: deleted,
	})
	return nil
}

// AddPartInput carries a spare part consumed by a ticket.
type AddPartInput struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Supplier  string
}

// AddPart records a spare part against a ticket.
func (s *MaintenanceService) AddPart(ctx context.Context, actor *domain.Worker, ticketID string, input AddPartInput) (*domain.Part, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("part name is required", nil)
	}
	if input.Quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", map[string]any{"quantity": input.Quantity})
	}
	if input.UnitPrice < 0 {
		return nil, apperrors.NewValidationError("unit price cannot be negative", nil)
	}
	ticket, err := s.fetch(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !TicketVisible(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	part := &domain.Part{
		TicketID:  ticketID,
		Name:      input.Name,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Supplier:  input.Supplier,
	}
	if err := s.parts.Create(ctx, part); err != nil {
		return nil, apperrors.MapError(err)
	}
	return part, nil
}

// PartsSummary lists the parts on a ticket and their total cost.
type PartsSummary struct {
	Parts     []domain.Part
	TotalCost float64
}

// ListParts returns a ticket's parts with the running cost total.
func (s *MaintenanceService) ListParts(ctx context.Context, actor *domain.Worker, ticketID string) (*PartsSummary, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	ticket, err := s.fetch(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !TicketVisible(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	parts, err := s.parts.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	summary := &PartsSummary{Parts: parts}
	for i := range parts {
		summary.TotalCost += parts[i].Cost()
	}
	return summary, nil
}

// RemovePart deletes a spare part record from a ticket.
func (s *MaintenanceService) RemovePart(ctx context.Context, actor *domain.Worker, ticketID, partID string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("worker required")
	}
	ticket, err := s.fetch(ctx, ticketID)
	if err != nil {
		return err
	}
	if !TicketVisible(actor, ticket) {
		return apperrors.NewForbidden("access denied")
	}
	if err := s.parts.Delete(ctx, partID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("part", map[string]any{"part_id": partID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Suppliers returns the distinct supplier names seen across all recorded
// parts, sorted alphabetically.
func (s *MaintenanceService) Suppliers(ctx context.Context, actor *domain.Worker) ([]string, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if actor.Role == domain.RoleHousekeeping {
		return nil, apperrors.NewForbidden("access denied")
	}
	parts, err := s.parts.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	seen := make(map[string]struct{})
	suppliers := make([]string, 0)
	for i := range parts {
		name := strings.TrimSpace(parts[i].Supplier)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		suppliers = append(suppliers, name)
	}
	sort.Strings(suppliers)
	return suppliers, nil
}

func (s *MaintenanceService) fetch(ctx context.Context, id string) (*domain.MaintenanceTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("maintenance ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *MaintenanceService) publishStatusChange(ctx context.Context, actor *domain.Worker, ticket *domain.MaintenanceTicket, old domain.TicketState) {
	s.publish(ctx, events.EventTicketStatusChanged, actor, ticket.ID, events.TicketStatusChangedPayload{
		OldState: old,
		NewState: ticket.State,
	})
}

func (s *MaintenanceService) publish(ctx context.Context, eventType events.EventType, actor *domain.Worker, subjectID string, payload any) {
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
