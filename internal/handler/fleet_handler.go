package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// FleetHandler exposes vehicles with their maintenance and inspection logs.
type FleetHandler struct {
	service service.FleetService
	logger  zerolog.Logger
}

// NewFleetHandler constructs the handler.
func NewFleetHandler(service service.FleetService, logger zerolog.Logger) *FleetHandler {
	return &FleetHandler{
		service: service,
		logger:  logger.With().Str("component", "fleet_handler").Logger(),
	}
}

// Register binds the vehicle routes.
func (h *FleetHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Get("/:id/maintenance", h.listMaintenance)
	router.Post("/:id/maintenance", h.addMaintenance)
	router.Get("/:id/inspections", h.listInspections)
	router.Post("/:id/inspections", h.addInspection)
}

func (h *FleetHandler) list(c *fiber.Ctx) error {
	vehicles, err := h.service.ListVehicles(withRequestContext(c), dto.VehicleListRequest{
		Kind:   c.Query("kind"),
		Status: c.Query("status"),
	})
	if err != nil {
		return respondError(c, h.logger, err, "failed to list vehicles")
	}
	return utils.SendSuccess(c, "vehicles retrieved", vehicles)
}

func (h *FleetHandler) create(c *fiber.Ctx) error {
	var payload dto.VehicleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	vehicle, err := h.service.CreateVehicle(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to register vehicle")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "vehicle registered", vehicle)
}

func (h *FleetHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	vehicle, err := h.service.GetVehicle(withRequestContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to fetch vehicle")
	}
	return utils.SendSuccess(c, "vehicle retrieved", vehicle)
}

func (h *FleetHandler) listMaintenance(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	entries, err := h.service.ListMaintenance(withRequestContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list maintenance")
	}
	return utils.SendSuccess(c, "maintenance retrieved", entries)
}

func (h *FleetHandler) addMaintenance(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.MaintenanceCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := h.service.AddMaintenance(withRequestContext(c), id, payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to record maintenance")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "maintenance recorded", entry)
}

func (h *FleetHandler) listInspections(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	entries, err := h.service.ListInspections(withRequestContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list inspections")
	}
	return utils.SendSuccess(c, "inspections retrieved", entries)
}

func (h *FleetHandler) addInspection(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.InspectionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := h.service.AddInspection(withRequestContext(c), id, payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to record inspection")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "inspection recorded", entry)
}
