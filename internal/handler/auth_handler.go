package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// AuthHandler signs dashboard users in.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register binds the login route behind the supplied middlewares.
func (h *AuthHandler) Register(router fiber.Router, middlewares ...fiber.Handler) {
	handlers := append(middlewares, h.login)
	router.Post("/login", handlers...)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.Login(withRequestContext(c), payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
		}
		return respondError(c, h.logger, err, "failed to sign in")
	}

	return utils.SendSuccess(c, "signed in", session)
}
