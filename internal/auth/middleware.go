package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/hbhotel/facilities-service/internal/domain"
	"github.com/hbhotel/facilities-service/internal/repository"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

const workerKey = "auth_worker"

// Middleware validates bearer tokens and loads the calling worker. The
// worker is threaded explicitly into every core operation; nothing reads
// identity from ambient state.
type Middleware struct {
	tokens  *TokenManager
	workers repository.WorkerRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, workers repository.WorkerRepository) *Middleware {
	return &Middleware{tokens: tokens, workers: workers}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	worker, err := m.workers.GetByID(c.Context(), claims.WorkerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("worker not found")
		}
		return apperrors.MapError(err)
	}
	if !worker.Active {
		return apperrors.NewUnauthorized("worker inactive")
	}

	c.Locals(workerKey, worker)
	return c.Next()
}

// WorkerFromContext retrieves the authenticated worker.
func WorkerFromContext(c *fiber.Ctx) (*domain.Worker, bool) {
	val := c.Locals(workerKey)
	if val == nil {
		return nil, false
	}
	worker, ok := val.(*domain.Worker)
	return worker, ok
}
