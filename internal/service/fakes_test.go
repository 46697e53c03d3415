package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// fakeIncidentRepo is an in-memory IncidentRepository. Claim and Assign
// evaluate their predicate under the lock, mirroring the conditional update
// the real store performs.
type fakeIncidentRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*domain.Incident
	order []string
}

func newFakeIncidentRepo() *fakeIncidentRepo {
	return &fakeIncidentRepo{items: make(map[string]*domain.Incident)}
}

func (f *fakeIncidentRepo) nextID() string {
	f.seq++
	return fmt.Sprintf("inc-%d", f.seq)
}

func (f *fakeIncidentRepo) Create(_ context.Context, incident *domain.Incident) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if incident.ID == "" {
		incident.ID = f.nextID()
	}
	cp := *incident
	f.items[incident.ID] = &cp
	f.order = append(f.order, incident.ID)
	return nil
}

func (f *fakeIncidentRepo) Update(_ context.Context, incident *domain.Incident) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[incident.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *incident
	f.items[incident.ID] = &cp
	return nil
}

func (f *fakeIncidentRepo) GetByID(_ context.Context, id string) (*domain.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *item
	return &cp, nil
}

func (f *fakeIncidentRepo) List(_ context.Context) ([]domain.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Incident, 0, len(f.items))
	for _, id := range f.order {
		if item, ok := f.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeIncidentRepo) ListByReporter(ctx context.Context, reporterID string) ([]domain.Incident, error) {
	all, _ := f.List(ctx)
	out := make([]domain.Incident, 0)
	for i := range all {
		if all[i].ReporterID == reporterID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (f *fakeIncidentRepo) ListByAssignee(ctx context.Context, assigneeID string) ([]domain.Incident, error) {
	all, _ := f.List(ctx)
	out := make([]domain.Incident, 0)
	for i := range all {
		if all[i].AssigneeID == assigneeID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (f *fakeIncidentRepo) Claim(_ context.Context, id, workerID, workerName string, startedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return false, nil
	}
	if item.State != domain.IncidentStatePending || item.AssigneeID != "" {
		return false, nil
	}
	item.State = domain.IncidentStateInProgress
	item.AssigneeID = workerID
	item.AssigneeName = workerName
	item.StartedAt = &startedAt
	return true, nil
}

func (f *fakeIncidentRepo) Assign(_ context.Context, id, workerID, workerName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return false, nil
	}
	if item.State != domain.IncidentStatePending || item.AssigneeID != "" {
		return false, nil
	}
	item.AssigneeID = workerID
	item.AssigneeName = workerName
	return true, nil
}

func (f *fakeIncidentRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

// fakeWorkerRepo is an in-memory WorkerRepository with stable list order.
type fakeWorkerRepo struct {
	workers []domain.Worker
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (*domain.Worker, error) {
	for i := range f.workers {
		if f.workers[i].ID == id {
			cp := f.workers[i]
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeWorkerRepo) GetByUsername(_ context.Context, username string) (*domain.Worker, error) {
	for i := range f.workers {
		if f.workers[i].Username == username {
			cp := f.workers[i]
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeWorkerRepo) ListActiveByRole(_ context.Context, role domain.Role) ([]domain.Worker, error) {
	out := make([]domain.Worker, 0)
	for i := range f.workers {
		if f.workers[i].Role == role && f.workers[i].Active {
			out = append(out, f.workers[i])
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) List(_ context.Context) ([]domain.Worker, error) {
	return append([]domain.Worker{}, f.workers...), nil
}

// fakeMaintenanceRepo is an in-memory MaintenanceRepository.
type fakeMaintenanceRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*domain.MaintenanceTicket
	order []string
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{items: make(map[string]*domain.MaintenanceTicket)}
}

func (f *fakeMaintenanceRepo) Create(_ context.Context, ticket *domain.MaintenanceTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ticket.ID == "" {
		f.seq++
		ticket.ID = fmt.Sprintf("mnt-%d", f.seq)
	}
	cp := *ticket
	f.items[ticket.ID] = &cp
	f.order = append(f.order, ticket.ID)
	return nil
}

func (f *fakeMaintenanceRepo) Update(_ context.Context, ticket *domain.MaintenanceTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *ticket
	f.items[ticket.ID] = &cp
	return nil
}

func (f *fakeMaintenanceRepo) GetByID(_ context.Context, id string) (*domain.MaintenanceTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *item
	return &cp, nil
}

func (f *fakeMaintenanceRepo) List(_ context.Context) ([]domain.MaintenanceTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.MaintenanceTicket, 0, len(f.items))
	for _, id := range f.order {
		if item, ok := f.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) ListByAssignee(ctx context.Context, assigneeID string) ([]domain.MaintenanceTicket, error) {
	all, _ := f.List(ctx)
	out := make([]domain.MaintenanceTicket, 0)
	for i := range all {
		if all[i].AssigneeID == assigneeID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

// fakeCalendarRepo is an in-memory CalendarRepository.
type fakeCalendarRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*domain.CalendarEvent
	order []string
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{items: make(map[string]*domain.CalendarEvent)}
}

func (f *fakeCalendarRepo) Create(_ context.Context, event *domain.CalendarEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if event.ID == "" {
		f.seq++
		event.ID = fmt.Sprintf("cal-%d", f.seq)
	}
	cp := *event
	f.items[event.ID] = &cp
	f.order = append(f.order, event.ID)
	return nil
}

func (f *fakeCalendarRepo) List(_ context.Context) ([]domain.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.CalendarEvent, 0, len(f.items))
	for _, id := range f.order {
		if item, ok := f.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeCalendarRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.CalendarEvent, error) {
	all, _ := f.List(ctx)
	out := make([]domain.CalendarEvent, 0)
	for i := range all {
		if all[i].TicketID == ticketID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (f *fakeCalendarRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

// fakePartRepo is an in-memory PartRepository.
type fakePartRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*domain.Part
	order []string
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{items: make(map[string]*domain.Part)}
}

func (f *fakePartRepo) Create(_ context.Context, part *domain.Part) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if part.ID == "" {
		f.seq++
		part.ID = fmt.Sprintf("part-%d", f.seq)
	}
	cp := *part
	f.items[part.ID] = &cp
	f.order = append(f.order, part.ID)
	return nil
}

func (f *fakePartRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Part, error) {
	all, _ := f.List(ctx)
	out := make([]domain.Part, 0)
	for i := range all {
		if all[i].TicketID == ticketID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (f *fakePartRepo) List(_ context.Context) ([]domain.Part, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Part, 0, len(f.items))
	for _, id := range f.order {
		if item, ok := f.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakePartRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

// fakeEquipmentRepo is an in-memory EquipmentRepository.
type fakeEquipmentRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*domain.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[string]*domain.Equipment)}
}

func (f *fakeEquipmentRepo) Create(_ context.Context, eq *domain.Equipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if eq.ID == "" {
		f.seq++
		eq.ID = fmt.Sprintf("eq-%d", f.seq)
	}
	cp := *eq
	f.items[eq.ID] = &cp
	return nil
}

func (f *fakeEquipmentRepo) Update(_ context.Context, eq *domain.Equipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[eq.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *eq
	f.items[eq.ID] = &cp
	return nil
}

func (f *fakeEquipmentRepo) GetByID(_ context.Context, id string) (*domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *item
	return &cp, nil
}

func (f *fakeEquipmentRepo) List(_ context.Context) ([]domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Equipment, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeEquipmentRepo) ListByArea(ctx context.Context, areaID string) ([]domain.Equipment, error) {
	all, _ := f.List(ctx)
	out := make([]domain.Equipment, 0)
	for i := range all {
		if all[i].AreaID == areaID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (f *fakeEquipmentRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

// test fixtures

func adminWorker() *domain.Worker {
	return &domain.Worker{ID: "w-admin", Name: "Admin", Role: domain.RoleAdmin, Active: true}
}

func maintenanceWorker(id, name string) *domain.Worker {
	return &domain.Worker{ID: id, Name: name, Role: domain.RoleMaintenance, Active: true}
}

func housekeepingWorker(id, name string) *domain.Worker {
	return &domain.Worker{ID: id, Name: name, Role: domain.RoleHousekeeping, Active: true}
}

func supervisorWorker() *domain.Worker {
	return &domain.Worker{ID: "w-sup", Name: "Supervisor", Role: domain.RoleHousekeepingSupervisor, Active: true}
}
