package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/middleware"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// OperationsHandler exposes attendance sheets and school charges.
type OperationsHandler struct {
	attendance service.AttendanceService
	charges    service.ChargeService
	logger     zerolog.Logger
}

// NewOperationsHandler constructs the handler.
func NewOperationsHandler(attendance service.AttendanceService, charges service.ChargeService, logger zerolog.Logger) *OperationsHandler {
	return &OperationsHandler{
		attendance: attendance,
		charges:    charges,
		logger:     logger.With().Str("component", "operations_handler").Logger(),
	}
}

// RegisterAttendance binds the attendance routes.
func (h *OperationsHandler) RegisterAttendance(router fiber.Router) {
	router.Get("", h.attendanceForDate)
	router.Post("", h.markAttendance)
}

// RegisterCharges binds the charge routes.
func (h *OperationsHandler) RegisterCharges(router fiber.Router) {
	router.Get("", h.listCharges)
	router.Post("", h.createCharge)
}

func (h *OperationsHandler) attendanceForDate(c *fiber.Ctx) error {
	records, err := h.attendance.ForDate(withRequestContext(c), c.Query("date"), middleware.ScopedOffice(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to load attendance")
	}
	return utils.SendSuccess(c, "attendance retrieved", records)
}

func (h *OperationsHandler) markAttendance(c *fiber.Ctx) error {
	var payload dto.AttendanceMarkRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	records, err := h.attendance.Mark(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to mark attendance")
	}
	return utils.SendSuccess(c, "attendance saved", records)
}

func (h *OperationsHandler) listCharges(c *fiber.Ctx) error {
	charges, err := h.charges.List(withRequestContext(c), c.Query("category"))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list charges")
	}
	return utils.SendSuccess(c, "charges retrieved", charges)
}

func (h *OperationsHandler) createCharge(c *fiber.Ctx) error {
	var payload dto.ChargeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	charge, err := h.charges.Create(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to record charge")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "charge recorded", charge)
}
