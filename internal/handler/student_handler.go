package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/middleware"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// StudentHandler wires student endpoints.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches student routes to the router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/standards", h.standards)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Get("/:id/progress", h.progress)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if page <= 0 {
		page = 1
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	if pageSize <= 0 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}

	req := dto.StudentListRequest{
		Page:            page,
		PageSize:        pageSize,
		OfficeID:        middleware.ScopedOffice(c),
		Search:          c.Query("search"),
		Category:        c.Query("category"),
		Status:          c.Query("status"),
		Sort:            c.Query("sort"),
		IncludeArchived: c.QueryBool("include_archived", false),
	}

	response, err := h.service.List(withRequestContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list students")
	}

	return utils.OK(c, response.Items, "students retrieved", response.Pagination)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.Create(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to create student")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student created", student)
}

func (h *StudentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	student, err := h.service.Get(withRequestContext(c), id, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to fetch student")
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.StudentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.Update(withRequestContext(c), id, payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to update student")
	}

	return utils.SendSuccess(c, "student updated", student)
}

func (h *StudentHandler) progress(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	progress, err := h.service.Progress(withRequestContext(c), id, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to compute progress")
	}

	return utils.SendSuccess(c, "progress computed", progress)
}

func (h *StudentHandler) standards(c *fiber.Ctx) error {
	groups, err := h.service.Standards(withRequestContext(c), middleware.ScopedOffice(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to group students")
	}

	return utils.SendSuccess(c, "standards retrieved", groups)
}
