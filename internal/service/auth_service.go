package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/domain"
	"github.com/hbhotel/facilities-service/internal/repository"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// AuthService authenticates workers and issues access tokens.
type AuthService struct {
	workers repository.WorkerRepository
	tokens  *auth.TokenManager
}

// NewAuthService creates the service.
func NewAuthService(workers repository.WorkerRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{workers: workers, tokens: tokens}
}

// LoginResult carries an issued token and the authenticated worker.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Worker    *domain.Worker
}

// Login verifies credentials and returns a signed token. Deactivated workers
// cannot log in; a bad username and a bad password are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	worker, err := s.workers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !worker.Active {
		return nil, apperrors.NewUnauthorized("account deactivated")
	}
	if err := auth.ComparePassword(worker.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(worker.ID, worker.Role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Worker: worker}, nil
}

// WorkerService exposes read-only staff listings.
type WorkerService struct {
	workers repository.WorkerRepository
}

// NewWorkerService creates the service.
func NewWorkerService(workers repository.WorkerRepository) *WorkerService {
	return &WorkerService{workers: workers}
}

// ListMaintenanceWorkers returns the active maintenance staff, for assignment
// pickers. Housekeeping has no business with this list.
func (s *WorkerService) ListMaintenanceWorkers(ctx context.Context, actor *domain.Worker) ([]domain.Worker, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("worker required")
	}
	if actor.Role == domain.RoleHousekeeping {
		return nil, apperrors.NewForbidden("access denied")
	}
	workers, err := s.workers.ListActiveByRole(ctx, domain.RoleMaintenance)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return workers, nil
}

// List returns every worker record. Admin only.
func (s *WorkerService) List(ctx context.Context, actor *domain.Worker) ([]domain.Worker, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return workers, nil
}
