package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hbhotel/facilities-service/internal/domain"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// RequireRole ensures the authenticated worker has one of the allowed roles.
// With no arguments it only requires authentication.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		worker, ok := WorkerFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[worker.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
