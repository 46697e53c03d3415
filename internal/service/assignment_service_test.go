package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbhotel/facilities-service/internal/domain"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

func newAssignmentFixture(workers ...domain.Worker) (*AssignmentService, *fakeIncidentRepo) {
	incidents := newFakeIncidentRepo()
	svc := NewAssignmentService(AssignmentDependencies{
		IncidentRepo: incidents,
		WorkerRepo:   &fakeWorkerRepo{workers: workers},
		Now:          func() time.Time { return time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC) },
	})
	return svc, incidents
}

func seedPendingIncident(t *testing.T, repo *fakeIncidentRepo) *domain.Incident {
	t.Helper()
	incident := &domain.Incident{
		Area:        "Kitchen",
		Description: "leaking faucet",
		Priority:    domain.PriorityMedium,
		State:       domain.IncidentStatePending,
		ReporterID:  "w-hk1",
		ReportedAt:  time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(context.Background(), incident))
	return incident
}

func TestSelfClaimTakesPendingIncident(t *testing.T) {
	w1 := maintenanceWorker("w-m1", "Mario")
	svc, incidents := newAssignmentFixture(*w1)
	incident := seedPendingIncident(t, incidents)

	claimed, err := svc.SelfClaim(context.Background(), w1, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStateInProgress, claimed.State)
	assert.Equal(t, "w-m1", claimed.AssigneeID)
	assert.Equal(t, "Mario", claimed.AssigneeName)
	require.NotNil(t, claimed.StartedAt)
}

func TestSelfClaimRejectsNonMaintenance(t *testing.T) {
	svc, incidents := newAssignmentFixture()
	incident := seedPendingIncident(t, incidents)

	_, err := svc.SelfClaim(context.Background(), housekeepingWorker("w-hk1", "Hana"), incident.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	_, err = svc.SelfClaim(context.Background(), adminWorker(), incident.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestSelfClaimConflictWhenAlreadyClaimed(t *testing.T) {
	w1 := maintenanceWorker("w-m1", "Mario")
	w2 := maintenanceWorker("w-m2", "Luis")
	svc, incidents := newAssignmentFixture(*w1, *w2)
	incident := seedPendingIncident(t, incidents)

	_, err := svc.SelfClaim(context.Background(), w1, incident.ID)
	require.NoError(t, err)

	_, err = svc.SelfClaim(context.Background(), w2, incident.ID)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestSelfClaimNotFound(t *testing.T) {
	w1 := maintenanceWorker("w-m1", "Mario")
	svc, _ := newAssignmentFixture(*w1)

	_, err := svc.SelfClaim(context.Background(), w1, "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestSelfClaimRaceHasExactlyOneWinner(t *testing.T) {
	workers := make([]domain.Worker, 8)
	for i := range workers {
		workers[i] = *maintenanceWorker("w-m"+string(rune('a'+i)), "Worker")
	}
	svc, incidents := newAssignmentFixture(workers...)
	incident := seedPendingIncident(t, incidents)

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	conflicts := 0
	for i := range workers {
		wg.Add(1)
		go func(w domain.Worker) {
			defer wg.Done()
			_, err := svc.SelfClaim(context.Background(), &w, incident.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners++
			} else if apperrors.IsCode(err, "CONFLICT") {
				conflicts++
			}
		}(workers[i])
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, len(workers)-1, conflicts)
}

func TestAssignToWorkerKeepsIncidentPending(t *testing.T) {
	w1 := maintenanceWorker("w-m1", "Mario")
	svc, incidents := newAssignmentFixture(*w1)
	incident := seedPendingIncident(t, incidents)

	assigned, err := svc.AssignToWorker(context.Background(), adminWorker(), incident.ID, "w-m1")
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStatePending, assigned.State)
	assert.Equal(t, "w-m1", assigned.AssigneeID)
	assert.Nil(t, assigned.StartedAt)
}

func TestAssignToWorkerRequiresAdmin(t *testing.T) {
	w1 := maintenanceWorker("w-m1", "Mario")
	svc, incidents := newAssignmentFixture(*w1)
	incident := seedPendingIncident(t, incidents)

	_, err := svc.AssignToWorker(context.Background(), w1, incident.ID, "w-m1")
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestAssignToWorkerRejectsNonMaintenanceTarget(t *testing.T) {
	hk := *housekeepingWorker("w-hk1", "Hana")
	svc, incidents := newAssignmentFixture(hk)
	incident := seedPendingIncident(t, incidents)

	_, err := svc.AssignToWorker(context.Background(), adminWorker(), incident.ID, "w-hk1")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestAutoAssignPicksLeastLoaded(t *testing.T) {
	w1 := *maintenanceWorker("w-m1", "Mario")
	w2 := *maintenanceWorker("w-m2", "Luis")
	svc, incidents := newAssignmentFixture(w1, w2)

	// w1 carries two open incidents, w2 one
	for i := 0; i < 2; i++ {
		inc := seedPendingIncident(t, incidents)
		inc.AssigneeID = "w-m1"
		inc.State = domain.IncidentStateInProgress
		require.NoError(t, incidents.Update(context.Background(), inc))
	}
	busy := seedPendingIncident(t, incidents)
	busy.AssigneeID = "w-m2"
	busy.State = domain.IncidentStateInProgress
	require.NoError(t, incidents.Update(context.Background(), busy))

	target := seedPendingIncident(t, incidents)
	assigned, err := svc.AutoAssign(context.Background(), adminWorker(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, "w-m2", assigned.AssigneeID)
}

func TestAutoAssignTieGoesToFirstListed(t *testing.T) {
	w1 := *maintenanceWorker("w-m1", "Mario")
	w2 := *maintenanceWorker("w-m2", "Luis")
	svc, incidents := newAssignmentFixture(w1, w2)

	target := seedPendingIncident(t, incidents)
	assigned, err := svc.AutoAssign(context.Background(), adminWorker(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, "w-m1", assigned.AssigneeID)
}

func TestAutoAssignRecountsAfterEachDispatch(t *testing.T) {
	w1 := *maintenanceWorker("w-m1", "Mario")
	w2 := *maintenanceWorker("w-m2", "Luis")
	svc, incidents := newAssignmentFixture(w1, w2)

	first := seedPendingIncident(t, incidents)
	second := seedPendingIncident(t, incidents)

	a, err := svc.AutoAssign(context.Background(), adminWorker(), first.ID)
	require.NoError(t, err)
	b, err := svc.AutoAssign(context.Background(), adminWorker(), second.ID)
	require.NoError(t, err)

	// the second dispatch sees the first assignment and balances away from it
	assert.Equal(t, "w-m1", a.AssigneeID)
	assert.Equal(t, "w-m2", b.AssigneeID)
}

func TestAutoAssignCompletedWorkDoesNotCount(t *testing.T) {
	w1 := *maintenanceWorker("w-m1", "Mario")
	w2 := *maintenanceWorker("w-m2", "Luis")
	svc, incidents := newAssignmentFixture(w1, w2)

	// w1 has a completed incident; it must not count toward load
	done := seedPendingIncident(t, incidents)
	done.AssigneeID = "w-m1"
	done.State = domain.IncidentStateCompleted
	require.NoError(t, incidents.Update(context.Background(), done))

	target := seedPendingIncident(t, incidents)
	assigned, err := svc.AutoAssign(context.Background(), adminWorker(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, "w-m1", assigned.AssigneeID)
}

func TestAutoAssignNoEligibleWorkers(t *testing.T) {
	inactive := *maintenanceWorker("w-m1", "Mario")
	inactive.Active = false
	svc, incidents := newAssignmentFixture(inactive)
	target := seedPendingIncident(t, incidents)

	assigned, err := svc.AutoAssign(context.Background(), adminWorker(), target.ID)
	require.NoError(t, err)
	assert.Nil(t, assigned)

	// the incident stays untouched in the pool
	current, err := incidents.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Empty(t, current.AssigneeID)
	assert.Equal(t, domain.IncidentStatePending, current.State)
}
