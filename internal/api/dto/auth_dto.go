package dto

import (
	"time"

	"github.com/hbhotel/facilities-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated worker.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Worker    WorkerResponse `json:"worker"`
}

// WorkerResponse mirrors a staff record; the password hash never leaves the
// service.
type WorkerResponse struct {
	ID       string      `json:"id"`
	Name     string      `json:"nombre"`
	Username string      `json:"username"`
	Role     domain.Role `json:"rol"`
	Active   bool        `json:"activo"`
	Editor   bool        `json:"editor"`
}

// NewWorkerResponse maps a domain worker.
func NewWorkerResponse(worker *domain.Worker) WorkerResponse {
	return WorkerResponse{
		ID:       worker.ID,
		Name:     worker.Name,
		Username: worker.Username,
		Role:     worker.Role,
		Active:   worker.Active,
		Editor:   worker.Editor,
	}
}

// NewWorkerResponses maps a slice of workers.
func NewWorkerResponses(workers []domain.Worker) []WorkerResponse {
	items := make([]WorkerResponse, 0, len(workers))
	for i := range workers {
		items = append(items, NewWorkerResponse(&workers[i]))
	}
	return items
}
