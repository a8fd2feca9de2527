package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// PeopleHandler exposes trainers and staff members.
type PeopleHandler struct {
	service service.PeopleService
	logger  zerolog.Logger
}

// NewPeopleHandler constructs the handler.
func NewPeopleHandler(service service.PeopleService, logger zerolog.Logger) *PeopleHandler {
	return &PeopleHandler{
		service: service,
		logger:  logger.With().Str("component", "people_handler").Logger(),
	}
}

// RegisterTrainers binds the trainer routes.
func (h *PeopleHandler) RegisterTrainers(router fiber.Router) {
	router.Get("", h.listTrainers)
	router.Post("", h.createTrainer)
	router.Get("/:id", h.getTrainer)
}

// RegisterStaff binds the staff routes.
func (h *PeopleHandler) RegisterStaff(router fiber.Router) {
	router.Get("", h.listStaff)
	router.Post("", h.createStaff)
	router.Get("/:id", h.getStaff)
}

func (h *PeopleHandler) listTrainers(c *fiber.Ctx) error {
	trainers, err := h.service.ListTrainers(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list trainers")
	}
	return utils.SendSuccess(c, "trainers retrieved", trainers)
}

func (h *PeopleHandler) createTrainer(c *fiber.Ctx) error {
	var payload dto.TrainerCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	trainer, err := h.service.CreateTrainer(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to create trainer")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "trainer created", trainer)
}

func (h *PeopleHandler) getTrainer(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	trainer, err := h.service.GetTrainer(withRequestContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to fetch trainer")
	}
	return utils.SendSuccess(c, "trainer retrieved", trainer)
}

func (h *PeopleHandler) listStaff(c *fiber.Ctx) error {
	members, err := h.service.ListStaff(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list staff")
	}
	return utils.SendSuccess(c, "staff retrieved", members)
}

func (h *PeopleHandler) createStaff(c *fiber.Ctx) error {
	var payload dto.StaffCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	member, err := h.service.CreateStaff(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to create staff member")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "staff member created", member)
}

func (h *PeopleHandler) getStaff(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	member, err := h.service.GetStaff(withRequestContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to fetch staff member")
	}
	return utils.SendSuccess(c, "staff member retrieved", member)
}
