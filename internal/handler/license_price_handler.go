package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/middleware"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// LicensePriceHandler manages the licence price table.
type LicensePriceHandler struct {
	service service.LicensePriceService
	logger  zerolog.Logger
}

// NewLicensePriceHandler constructs the handler.
func NewLicensePriceHandler(service service.LicensePriceService, logger zerolog.Logger) *LicensePriceHandler {
	return &LicensePriceHandler{
		service: service,
		logger:  logger.With().Str("component", "license_price_handler").Logger(),
	}
}

// Register binds the price routes. Writes are limited to administrators.
func (h *LicensePriceHandler) Register(router fiber.Router) {
	writers := middleware.RequireRole(middleware.AdminRoles...)

	router.Get("", h.list)
	router.Post("", writers, h.add)
	router.Put("/:category", writers, h.update)
	router.Delete("/:category", writers, h.delete)
}

func (h *LicensePriceHandler) list(c *fiber.Ctx) error {
	prices, err := h.service.List(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list licence prices")
	}
	return utils.SendSuccess(c, "licence prices retrieved", prices)
}

func (h *LicensePriceHandler) add(c *fiber.Ctx) error {
	var payload dto.LicensePriceRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	price, err := h.service.Add(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to add licence price")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "licence price added", price)
}

func (h *LicensePriceHandler) update(c *fiber.Ctx) error {
	var payload dto.LicensePriceUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	price, err := h.service.Update(withRequestContext(c), c.Params("category"), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to update licence price")
	}
	return utils.SendSuccess(c, "licence price updated", price)
}

func (h *LicensePriceHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(withRequestContext(c), c.Params("category"), actorFromContext(c)); err != nil {
		return respondError(c, h.logger, err, "failed to delete licence price")
	}
	return utils.SendSuccess(c, "licence price deleted", nil)
}
