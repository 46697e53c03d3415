package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbhotel/facilities-service/internal/domain"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

func newCalendarFixture() (*CalendarService, *fakeCalendarRepo, *fakeMaintenanceRepo, *fakeEquipmentRepo) {
	eventsRepo := newFakeCalendarRepo()
	tickets := newFakeMaintenanceRepo()
	equipment := newFakeEquipmentRepo()
	svc := NewCalendarService(CalendarDependencies{
		CalendarRepo:  eventsRepo,
		TicketRepo:    tickets,
		EquipmentRepo: equipment,
		Now:           func() time.Time { return time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC) },
	})
	return svc, eventsRepo, tickets, equipment
}

func TestSyncTicketProducesOneEvent(t *testing.T) {
	svc, eventsRepo, tickets, equipment := newCalendarFixture()
	eq := &domain.Equipment{Name: "Elevator A", AreaID: "area-1"}
	require.NoError(t, equipment.Create(context.Background(), eq))

	scheduled := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	ticket := &domain.MaintenanceTicket{
		EquipmentID:  eq.ID,
		AreaID:       "area-1",
		Description:  "cable inspection",
		Priority:     domain.PriorityHigh,
		State:        domain.TicketStateScheduled,
		ScheduledFor: &scheduled,
	}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	event, err := svc.SyncTicket(context.Background(), ticket)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "Elevator A", event.Title)
	assert.Equal(t, scheduled, event.Date)
	assert.Equal(t, "09:00", event.Time)
	assert.Equal(t, ticket.ID, event.TicketID)
	assert.Equal(t, domain.TicketStateScheduled, event.State)
	assert.Equal(t, domain.PriorityHigh, event.Priority)

	all, err := eventsRepo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSyncTicketFallsBackToDescriptionTitle(t *testing.T) {
	svc, _, _, _ := newCalendarFixture()
	scheduled := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	ticket := &domain.MaintenanceTicket{
		ID:           "mnt-x",
		Description:  "paint hallway",
		ScheduledFor: &scheduled,
	}

	event, err := svc.SyncTicket(context.Background(), ticket)
	require.NoError(t, err)
	assert.Equal(t, "paint hallway", event.Title)
}

func TestSyncTicketNoScheduleNoEvent(t *testing.T) {
	svc, eventsRepo, _, _ := newCalendarFixture()

	event, err := svc.SyncTicket(context.Background(), &domain.MaintenanceTicket{ID: "mnt-x"})
	require.NoError(t, err)
	assert.Nil(t, event)

	all, err := eventsRepo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCleanupOrphansRemovesUnlinkedEvents(t *testing.T) {
	svc, eventsRepo, tickets, _ := newCalendarFixture()

	live := &domain.MaintenanceTicket{Description: "kept"}
	require.NoError(t, tickets.Create(context.Background(), live))

	keep := &domain.CalendarEvent{Title: "kept", TicketID: live.ID, Date: time.Now()}
	ghost := &domain.CalendarEvent{Title: "ghost", TicketID: "mnt-gone", Date: time.Now()}
	legacy := &domain.CalendarEvent{Title: "legacy", Date: time.Now()}
	for _, e := range []*domain.CalendarEvent{keep, ghost, legacy} {
		require.NoError(t, eventsRepo.Create(context.Background(), e))
	}

	deleted, err := svc.CleanupOrphans(context.Background(), adminWorker())
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := eventsRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, live.ID, remaining[0].TicketID)
}

func TestCleanupOrphansIsIdempotent(t *testing.T) {
	svc, eventsRepo, _, _ := newCalendarFixture()
	require.NoError(t, eventsRepo.Create(context.Background(), &domain.CalendarEvent{Title: "ghost", TicketID: "gone"}))

	first, err := svc.CleanupOrphans(context.Background(), adminWorker())
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := svc.CleanupOrphans(context.Background(), adminWorker())
	require.NoError(t, err)
	assert.Equal(t, 0, second)
}

func TestCleanupOrphansRequiresAdmin(t *testing.T) {
	svc, _, _, _ := newCalendarFixture()

	_, err := svc.CleanupOrphans(context.Background(), supervisorWorker())
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestListEventsSortedByDateThenTime(t *testing.T) {
	svc, eventsRepo, _, _ := newCalendarFixture()
	d1 := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	require.NoError(t, eventsRepo.Create(context.Background(), &domain.CalendarEvent{Title: "late", TicketID: "a", Date: d2, Time: "14:00"}))
	require.NoError(t, eventsRepo.Create(context.Background(), &domain.CalendarEvent{Title: "early", TicketID: "b", Date: d1, Time: "10:00"}))
	require.NoError(t, eventsRepo.Create(context.Background(), &domain.CalendarEvent{Title: "earlier same day", TicketID: "c", Date: d2, Time: "09:00"}))

	events, err := svc.ListEvents(context.Background(), supervisorWorker())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "early", events[0].Title)
	assert.Equal(t, "earlier same day", events[1].Title)
	assert.Equal(t, "late", events[2].Title)
}

func TestListEventsRejectsHousekeeping(t *testing.T) {
	svc, _, _, _ := newCalendarFixture()

	_, err := svc.ListEvents(context.Background(), housekeepingWorker("w-hk1", "Hana"))
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}
