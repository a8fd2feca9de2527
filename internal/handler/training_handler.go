package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/middleware"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// TrainingHandler exposes lessons, exams and payments.
type TrainingHandler struct {
	lessons  service.LessonService
	exams    service.ExamService
	payments service.PaymentService
	logger   zerolog.Logger
}

// NewTrainingHandler constructs the handler.
func NewTrainingHandler(lessons service.LessonService, exams service.ExamService, payments service.PaymentService, logger zerolog.Logger) *TrainingHandler {
	return &TrainingHandler{
		lessons:  lessons,
		exams:    exams,
		payments: payments,
		logger:   logger.With().Str("component", "training_handler").Logger(),
	}
}

// RegisterLessons binds the lesson routes.
func (h *TrainingHandler) RegisterLessons(router fiber.Router) {
	router.Get("", h.listLessons)
	router.Post("", h.createLesson)
	router.Patch("/:id/status", h.updateLessonStatus)
	router.Get("/trainers/:id/upcoming", h.upcomingLessons)
}

// RegisterExams binds the exam routes.
func (h *TrainingHandler) RegisterExams(router fiber.Router) {
	router.Get("", h.listExams)
	router.Post("", h.createExam)
	router.Patch("/:id/result", h.updateExamResult)
}

// RegisterPayments binds the payment routes.
func (h *TrainingHandler) RegisterPayments(router fiber.Router) {
	router.Get("", h.listPayments)
	router.Post("", h.createPayment)
}

func (h *TrainingHandler) listLessons(c *fiber.Ctx) error {
	studentID, err := parseQueryUint(c, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	trainerID, err := parseQueryUint(c, "trainer_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid trainer_id")
	}

	lessons, err := h.lessons.List(withRequestContext(c), dto.LessonListRequest{
		OfficeID:  middleware.ScopedOffice(c),
		StudentID: studentID,
		TrainerID: trainerID,
		Status:    c.Query("status"),
	})
	if err != nil {
		return respondError(c, h.logger, err, "failed to list lessons")
	}

	return utils.SendSuccess(c, "lessons retrieved", lessons)
}

func (h *TrainingHandler) createLesson(c *fiber.Ctx) error {
	var payload dto.LessonCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	lesson, err := h.lessons.Create(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to schedule lesson")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "lesson scheduled", lesson)
}

func (h *TrainingHandler) updateLessonStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.LessonStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	lesson, err := h.lessons.UpdateStatus(withRequestContext(c), id, payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to update lesson")
	}

	return utils.SendSuccess(c, "lesson updated", lesson)
}

func (h *TrainingHandler) upcomingLessons(c *fiber.Ctx) error {
	trainerID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	lessons, err := h.lessons.UpcomingForTrainer(withRequestContext(c), trainerID, middleware.ScopedOffice(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list upcoming lessons")
	}

	return utils.SendSuccess(c, "upcoming lessons retrieved", lessons)
}

func (h *TrainingHandler) listExams(c *fiber.Ctx) error {
	studentID, err := parseQueryUint(c, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}

	exams, err := h.exams.List(withRequestContext(c), dto.ExamListRequest{
		OfficeID:  middleware.ScopedOffice(c),
		StudentID: studentID,
		Type:      c.Query("type"),
		Result:    c.Query("result"),
	})
	if err != nil {
		return respondError(c, h.logger, err, "failed to list exams")
	}

	return utils.SendSuccess(c, "exams retrieved", exams)
}

func (h *TrainingHandler) createExam(c *fiber.Ctx) error {
	var payload dto.ExamCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	exam, err := h.exams.Create(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to record exam")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam recorded", exam)
}

func (h *TrainingHandler) updateExamResult(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ExamResultRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	exam, err := h.exams.UpdateResult(withRequestContext(c), id, payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to update exam")
	}

	return utils.SendSuccess(c, "exam updated", exam)
}

func (h *TrainingHandler) listPayments(c *fiber.Ctx) error {
	studentID, err := parseQueryUint(c, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}

	payments, err := h.payments.List(withRequestContext(c), dto.PaymentListRequest{
		OfficeID:  middleware.ScopedOffice(c),
		StudentID: studentID,
		Status:    c.Query("status"),
	})
	if err != nil {
		return respondError(c, h.logger, err, "failed to list payments")
	}

	return utils.SendSuccess(c, "payments retrieved", payments)
}

func (h *TrainingHandler) createPayment(c *fiber.Ctx) error {
	var payload dto.PaymentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	payment, err := h.payments.Create(withRequestContext(c), payload, actorFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to record payment")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "payment recorded", payment)
}
