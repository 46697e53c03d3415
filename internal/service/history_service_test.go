package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbhotel/facilities-service/internal/domain"
)

func newHistoryFixture() (*HistoryService, *fakeIncidentRepo, *fakeMaintenanceRepo) {
	incidents := newFakeIncidentRepo()
	tickets := newFakeMaintenanceRepo()
	svc := NewHistoryService(HistoryDependencies{
		IncidentRepo: incidents,
		TicketRepo:   tickets,
		Now:          func() time.Time { return time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC) },
	})
	return svc, incidents, tickets
}

func TestIncidentsOnFiltersByReportDay(t *testing.T) {
	svc, incidents, _ := newHistoryFixture()

	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "Lobby", Description: "a", State: domain.IncidentStatePending,
		ReportedAt: time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC),
	}))
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "Lobby", Description: "b", State: domain.IncidentStatePending,
		ReportedAt: time.Date(2025, 3, 10, 23, 55, 0, 0, time.UTC),
	}))
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "Lobby", Description: "c", State: domain.IncidentStatePending,
		ReportedAt: time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC),
	}))

	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	matches, err := svc.IncidentsOn(context.Background(), adminWorker(), day)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestIncidentsOnIgnoresLifecycleDates(t *testing.T) {
	svc, incidents, _ := newHistoryFixture()

	completedAt := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "Lobby", Description: "a", State: domain.IncidentStateCompleted,
		AssigneeID:  "w-m1",
		ReportedAt:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		CompletedAt: &completedAt,
	}))

	// membership follows the report date, not the completion date
	onReportDay, err := svc.IncidentsOn(context.Background(), adminWorker(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, onReportDay, 1)

	onCompletionDay, err := svc.IncidentsOn(context.Background(), adminWorker(), time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, onCompletionDay)
}

func TestTicketsOnUsesGoverningDate(t *testing.T) {
	svc, _, tickets := newHistoryFixture()

	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	completed := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

	// started but not completed: governed by start date
	require.NoError(t, tickets.Create(context.Background(), &domain.MaintenanceTicket{
		Description: "active", State: domain.TicketStateActive, StartedAt: &started,
	}))
	// completed: governed by completion date, not start
	require.NoError(t, tickets.Create(context.Background(), &domain.MaintenanceTicket{
		Description: "done", State: domain.TicketStateCompleted,
		StartedAt: &started, CompletedAt: &completed,
	}))
	// never started: excluded from every day
	require.NoError(t, tickets.Create(context.Background(), &domain.MaintenanceTicket{
		Description: "waiting", State: domain.TicketStateScheduled,
	}))

	day10, err := svc.TicketsOn(context.Background(), adminWorker(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, day10, 1)
	assert.Equal(t, "active", day10[0].Description)

	day11, err := svc.TicketsOn(context.Background(), adminWorker(), time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, day11, 1)
	assert.Equal(t, "done", day11[0].Description)
}

func TestDayViewRespectsVisibility(t *testing.T) {
	svc, incidents, _ := newHistoryFixture()

	reported := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "Lobby", Description: "mine", State: domain.IncidentStatePending,
		ReporterID: "w-hk1", ReportedAt: reported,
	}))
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "Lobby", Description: "theirs", State: domain.IncidentStatePending,
		ReporterID: "w-hk2", ReportedAt: reported,
	}))

	view, err := svc.Day(context.Background(), housekeepingWorker("w-hk1", "Hana"), reported)
	require.NoError(t, err)
	require.Len(t, view.Incidents, 1)
	assert.Equal(t, "mine", view.Incidents[0].Description)
}

func TestTodayUsesClock(t *testing.T) {
	svc, incidents, _ := newHistoryFixture()

	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "Lobby", Description: "today", State: domain.IncidentStatePending,
		ReportedAt: time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "Lobby", Description: "yesterday", State: domain.IncidentStatePending,
		ReportedAt: time.Date(2025, 3, 9, 7, 0, 0, 0, time.UTC),
	}))

	view, err := svc.Today(context.Background(), adminWorker())
	require.NoError(t, err)
	require.Len(t, view.Incidents, 1)
	assert.Equal(t, "today", view.Incidents[0].Description)
}

func TestTodayListsOpenWorkOnly(t *testing.T) {
	svc, incidents, tickets := newHistoryFixture()

	today := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "Lobby", Description: "open", State: domain.IncidentStatePending, ReportedAt: today,
	}))
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "Lobby", Description: "done", State: domain.IncidentStateCompleted, ReportedAt: today,
	}))

	tomorrow := today.AddDate(0, 0, 1)
	require.NoError(t, tickets.Create(context.Background(), &domain.MaintenanceTicket{
		Description: "due", State: domain.TicketStateScheduled, ScheduledFor: &today,
	}))
	require.NoError(t, tickets.Create(context.Background(), &domain.MaintenanceTicket{
		Description: "finished", State: domain.TicketStateCompleted, ScheduledFor: &today,
	}))
	require.NoError(t, tickets.Create(context.Background(), &domain.MaintenanceTicket{
		Description: "later", State: domain.TicketStateScheduled, ScheduledFor: &tomorrow,
	}))

	view, err := svc.Today(context.Background(), adminWorker())
	require.NoError(t, err)
	require.Len(t, view.Incidents, 1)
	assert.Equal(t, "open", view.Incidents[0].Description)
	require.Len(t, view.Tickets, 1)
	assert.Equal(t, "due", view.Tickets[0].Description)
}

func TestStatsCountsByState(t *testing.T) {
	svc, incidents, tickets := newHistoryFixture()

	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "a", Description: "a", State: domain.IncidentStatePending, ReportedAt: started,
	}))
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "b", Description: "b", State: domain.IncidentStatePending, AssigneeID: "w-m1", ReportedAt: started,
	}))
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "c", Description: "c", State: domain.IncidentStateInProgress, AssigneeID: "w-m1", ReportedAt: started,
	}))
	require.NoError(t, incidents.Create(context.Background(), &domain.Incident{
		Area: "d", Description: "d", State: domain.IncidentStateCompleted, AssigneeID: "w-m1", ReportedAt: started,
	}))

	require.NoError(t, tickets.Create(context.Background(), &domain.MaintenanceTicket{State: domain.TicketStateScheduled}))
	require.NoError(t, tickets.Create(context.Background(), &domain.MaintenanceTicket{State: domain.TicketStateOrderGenerated}))
	require.NoError(t, tickets.Create(context.Background(), &domain.MaintenanceTicket{State: domain.TicketStateActive}))
	require.NoError(t, tickets.Create(context.Background(), &domain.MaintenanceTicket{State: domain.TicketStateCompleted}))

	stats, err := svc.Stats(context.Background(), adminWorker())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.IncidentsPending)
	assert.Equal(t, 1, stats.IncidentsUnassigned)
	assert.Equal(t, 1, stats.IncidentsInProgress)
	assert.Equal(t, 1, stats.IncidentsCompleted)
	assert.Equal(t, 2, stats.TicketsScheduled)
	assert.Equal(t, 1, stats.TicketsActive)
	assert.Equal(t, 1, stats.TicketsCompleted)
}
