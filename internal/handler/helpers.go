package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/middleware"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

var notFoundErrors = []error{
	service.ErrStudentNotFound,
	service.ErrExamNotFound,
	service.ErrLessonNotFound,
	service.ErrLicensePriceNotFound,
	service.ErrVehicleNotFound,
	service.ErrTrainerNotFound,
	service.ErrStaffNotFound,
	service.ErrOfficeNotFound,
	service.ErrSecretaryNotFound,
	service.ErrSubscriptionNotFound,
	service.ErrNotificationNotFound,
}

var conflictErrors = []error{
	service.ErrLicensePriceExists,
	service.ErrLicensePlateTaken,
	service.ErrEmailTaken,
}

var badRequestErrors = []error{
	service.ErrUnknownLicenseCategory,
	service.ErrOfficeRequired,
	service.ErrInvalidSort,
	service.ErrInvalidTimeRange,
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseQueryUint(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func userIDFromContext(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}

// actorFromContext describes the caller. Only secretaries carry an office, which makes
// services hide records of other offices from them.
func actorFromContext(c *fiber.Ctx) service.ActivityActor {
	actor := service.ActivityActor{
		ID:   userIDFromContext(c),
		Role: middleware.CurrentRole(c),
	}
	if actor.Role == models.RoleSecretary {
		actor.OfficeID = middleware.ScopedOffice(c)
	}
	return actor
}

func withRequestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
	}
	return details
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError maps service errors onto HTTP statuses. Unknown errors are logged and
// answered with the generic message.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error, message string) error {
	switch {
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
	case matchesAny(err, notFoundErrors):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case matchesAny(err, conflictErrors):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case matchesAny(err, badRequestErrors):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(logger, c).Error().Err(err).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}
