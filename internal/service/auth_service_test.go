package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/domain"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeWorkerRepo) {
	t.Helper()
	hash, err := auth.HashPassword("hunter2", 4)
	require.NoError(t, err)
	workers := &fakeWorkerRepo{workers: []domain.Worker{
		{ID: "w-m1", Name: "Mario", Username: "mario", Role: domain.RoleMaintenance, Active: true, PasswordHash: hash},
		{ID: "w-m2", Name: "Luis", Username: "luis", Role: domain.RoleMaintenance, Active: false, PasswordHash: hash},
	}}
	return NewAuthService(workers, auth.NewTokenManager("test-secret", 60)), workers
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	result, err := svc.Login(context.Background(), "mario", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "w-m1", result.Worker.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "mario", "wrong")
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	_, err = svc.Login(context.Background(), "nobody", "hunter2")
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestLoginRejectsInactiveWorker(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "luis", "hunter2")
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestWorkerListingsRespectRoles(t *testing.T) {
	hash, err := auth.HashPassword("x", 4)
	require.NoError(t, err)
	workers := &fakeWorkerRepo{workers: []domain.Worker{
		{ID: "w-m1", Role: domain.RoleMaintenance, Active: true, PasswordHash: hash},
		{ID: "w-m2", Role: domain.RoleMaintenance, Active: false, PasswordHash: hash},
		{ID: "w-hk1", Role: domain.RoleHousekeeping, Active: true, PasswordHash: hash},
	}}
	svc := NewWorkerService(workers)

	active, err := svc.ListMaintenanceWorkers(context.Background(), supervisorWorker())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "w-m1", active[0].ID)

	_, err = svc.ListMaintenanceWorkers(context.Background(), housekeepingWorker("w-hk1", "Hana"))
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	all, err := svc.List(context.Background(), adminWorker())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.List(context.Background(), supervisorWorker())
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}
