package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/middleware"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// SchoolHandler serves the office dashboard, the school profile and the activity log.
type SchoolHandler struct {
	offices   service.OfficeService
	dashboard service.DashboardService
	activity  service.ActivityService
	logger    zerolog.Logger
}

// NewSchoolHandler constructs the handler.
func NewSchoolHandler(offices service.OfficeService, dashboard service.DashboardService, activity service.ActivityService, logger zerolog.Logger) *SchoolHandler {
	return &SchoolHandler{
		offices:   offices,
		dashboard: dashboard,
		activity:  activity,
		logger:    logger.With().Str("component", "school_handler").Logger(),
	}
}

// RegisterDashboard binds the office dashboard.
func (h *SchoolHandler) RegisterDashboard(router fiber.Router) {
	router.Get("", h.dashboardSummary)
}

// RegisterProfile binds the school profile. Only administrators may change it.
func (h *SchoolHandler) RegisterProfile(router fiber.Router) {
	router.Get("", h.profile)
	router.Put("", middleware.RequireRole(middleware.AdminRoles...), h.updateProfile)
}

// RegisterActivity binds the activity log.
func (h *SchoolHandler) RegisterActivity(router fiber.Router) {
	router.Get("", h.listActivity)
}

func (h *SchoolHandler) dashboardSummary(c *fiber.Ctx) error {
	summary, err := h.dashboard.Office(withRequestContext(c), middleware.ScopedOffice(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to load dashboard")
	}
	return utils.SendSuccess(c, "dashboard summary", summary)
}

func (h *SchoolHandler) profile(c *fiber.Ctx) error {
	profile, err := h.offices.Profile(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to load school profile")
	}
	return utils.SendSuccess(c, "school profile", profile)
}

func (h *SchoolHandler) updateProfile(c *fiber.Ctx) error {
	var payload dto.SchoolProfileRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	profile, err := h.offices.UpdateProfile(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to update school profile")
	}
	return utils.SendSuccess(c, "school profile updated", profile)
}

func (h *SchoolHandler) listActivity(c *fiber.Ctx) error {
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
		pageSize = 25
	} else if pageSize > 200 {
		pageSize = 200
	}

	actorID, err := parseQueryUint(c, "actor_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid actor id")
	}

	response, err := h.activity.List(withRequestContext(c), dto.AdminActivityListRequest{
		Page:       page,
		PageSize:   pageSize,
		ActorID:    actorID,
		OfficeID:   middleware.ScopedOffice(c),
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	})
	if err != nil {
		return respondError(c, h.logger, err, "failed to list activity logs")
	}

	return utils.OK(c, response.Items, "activity logs", response.Pagination)
}
