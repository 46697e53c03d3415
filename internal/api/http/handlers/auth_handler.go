package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hbhotel/facilities-service/internal/api/dto"
	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/service"
	apperrors "github.com/hbhotel/facilities-service/pkg/util"
)

// AuthHandler manages login and session introspection.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}
	result, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Worker:    dto.NewWorkerResponse(result.Worker),
	}})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	worker, ok := auth.WorkerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("worker required")
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkerResponse(worker)})
}
