package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// UploadHandler stores documents such as trainer diplomas and charge invoices.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs an upload handler.
func NewUploadHandler(service service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register wires upload routes.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Post("", h.upload)
}

func (h *UploadHandler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	var userID *uint
	if id := userIDFromContext(c); id > 0 {
		userID = &id
	}

	result, err := h.service.Upload(withRequestContext(c), file, c.FormValue("purpose"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, service.ErrUploadTypeNotAllowed),
			errors.Is(err, service.ErrUploadPurposeInvalid),
			errors.Is(err, service.ErrUploadMissing):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("upload failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "upload failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "upload successful", result)
}
