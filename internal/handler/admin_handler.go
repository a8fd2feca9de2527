package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/middleware"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// AdminHandler exposes the super administrator console.
type AdminHandler struct {
	offices   service.OfficeService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(offices service.OfficeService, dashboard service.DashboardService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		offices:   offices,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches the console routes to the router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/offices", h.listOffices)
	router.Post("/offices", h.createOffice)
	router.Get("/secretaries", h.listSecretaries)
	router.Post("/secretaries", h.createSecretary)
	router.Delete("/secretaries/:id", h.deleteSecretary)
	router.Get("/subscriptions", h.listSubscriptions)
	router.Put("/subscriptions/:code", h.updateSubscription)
	router.Get("/dashboard", h.summary)
}

func (h *AdminHandler) listOffices(c *fiber.Ctx) error {
	offices, err := h.offices.ListOffices(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list offices")
	}
	return utils.SendSuccess(c, "offices retrieved", offices)
}

func (h *AdminHandler) createOffice(c *fiber.Ctx) error {
	var payload dto.OfficeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	office, err := h.offices.CreateOffice(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to create office")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "office created", office)
}

func (h *AdminHandler) listSecretaries(c *fiber.Ctx) error {
	secretaries, err := h.offices.ListSecretaries(withRequestContext(c), middleware.ScopedOffice(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list secretaries")
	}
	return utils.SendSuccess(c, "secretaries retrieved", secretaries)
}

func (h *AdminHandler) createSecretary(c *fiber.Ctx) error {
	var payload dto.SecretaryCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	secretary, err := h.offices.CreateSecretary(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to create secretary")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "secretary created", secretary)
}

func (h *AdminHandler) deleteSecretary(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.offices.DeleteSecretary(withRequestContext(c), id, actorFromContext(c)); err != nil {
		return respondError(c, h.logger, err, "failed to delete secretary")
	}
	return utils.SendSuccess(c, "secretary deleted", nil)
}

func (h *AdminHandler) listSubscriptions(c *fiber.Ctx) error {
	subscriptions, err := h.offices.ListSubscriptions(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list subscriptions")
	}
	return utils.SendSuccess(c, "subscriptions retrieved", subscriptions)
}

func (h *AdminHandler) updateSubscription(c *fiber.Ctx) error {
	var payload dto.SubscriptionUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	subscription, err := h.offices.UpdateSubscription(withRequestContext(c), c.Params("code"), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to update subscription")
	}
	return utils.SendSuccess(c, "subscription updated", subscription)
}

func (h *AdminHandler) summary(c *fiber.Ctx) error {
	summary, err := h.dashboard.SuperAdmin(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to load dashboard")
	}
	return utils.SendSuccess(c, "dashboard summary", summary)
}
