package handler

import (
	"errors"
	"net/http"

	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/server"
	"ticket-sales/internal/core/web"
	"ticket-sales/internal/features/sessions/domain"
	"ticket-sales/internal/features/sessions/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler handles login and token refresh.
type SessionHandler struct {
	service ports.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Routes returns the session routing table. Both routes are public.
func (h *SessionHandler) Routes() []server.Route {
	return []server.Route{
		{Method: fiber.MethodPost, Path: "/auth/login/", Handler: h.Login},
		{Method: fiber.MethodPost, Path: "/auth/refresh/", Handler: h.Refresh},
	}
}

// Login handles POST /auth/login/.
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} web.ErrorResponse
// @Failure 401 {object} web.ErrorResponse
// @Router /auth/login/ [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	// An unreadable body is reported the same way as missing fields.
	_ = c.BodyParser(&req)

	resp, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCredentialsRequired):
			return c.Status(http.StatusBadRequest).JSON(web.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.Status(http.StatusUnauthorized).JSON(web.ErrorResponse{Error: err.Error()})
		}
		logger.WithRay(web.RayID(c)).Error("Failed to log in", zap.Error(err))
		return web.ErrInternal
	}

	logger.WithRay(web.RayID(c)).Info("Customer logged in", zap.Int64("customer_id", resp.User.ID))
	return c.Status(http.StatusOK).JSON(resp)
}

// Refresh handles POST /auth/refresh/.
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body domain.RefreshRequest true "Refresh token"
// @Success 200 {object} domain.RefreshResponse
// @Failure 400 {object} web.ErrorResponse
// @Failure 401 {object} web.ErrorResponse
// @Router /auth/refresh/ [post]
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	var req domain.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return web.ErrInvalidBody
	}

	resp, err := h.service.Refresh(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRefreshRequired):
			return web.FieldError("refresh", "required")
		case errors.Is(err, domain.ErrInvalidRefreshToken):
			return web.NewError(http.StatusUnauthorized, err.Error())
		}
		logger.WithRay(web.RayID(c)).Error("Failed to refresh token", zap.Error(err))
		return web.ErrInternal
	}
	return c.Status(http.StatusOK).JSON(resp)
}
