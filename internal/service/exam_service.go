package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

// ErrExamNotFound indicates the exam does not exist.
var ErrExamNotFound = errors.New("exam not found")

// ExamService records exam sittings and runs the archival policy after each write.
type ExamService interface {
	Create(ctx context.Context, payload dto.ExamCreateRequest, actor ActivityActor) (dto.ExamResponse, error)
	UpdateResult(ctx context.Context, id uint, payload dto.ExamResultRequest, actor ActivityActor) (dto.ExamResponse, error)
	List(ctx context.Context, req dto.ExamListRequest) ([]dto.ExamResponse, error)
}

type examService struct {
	repo      repository.ExamRepository
	students  StudentGetter
	policy    ArchivalPolicy
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewExamService constructs the exam service.
func NewExamService(repo repository.ExamRepository, students StudentGetter, policy ArchivalPolicy, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ExamService {
	return &examService{
		repo:      repo,
		students:  students,
		policy:    policy,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "exam_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/drivedesk-api/internal/service/exam"),
		now:       time.Now,
	}
}

func (s *examService) Create(ctx context.Context, payload dto.ExamCreateRequest, actor ActivityActor) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "exams.create", trace.WithAttributes(
		attribute.Int("student.id", int(payload.StudentID)),
		attribute.String("exam.type", payload.Type),
	))
	defer span.End()

	student, err := scopedStudent(ctx, s.students, payload.StudentID, actor)
	if err != nil {
		return dto.ExamResponse{}, err
	}

	date, err := parseDate(payload.Date, today(s.now()))
	if err != nil {
		return dto.ExamResponse{}, err
	}

	result := models.ExamResultPending
	if payload.Result != "" {
		result = models.ExamResult(strings.ToLower(payload.Result))
	}

	exam := models.Exam{
		StudentID: student.ID,
		Date:      date,
		Type:      models.ExamType(strings.ToLower(payload.Type)),
		Result:    result,
	}
	if err := s.repo.Create(ctx, &exam); err != nil {
		span.RecordError(err)
		return dto.ExamResponse{}, fmt.Errorf("create exam: %w", err)
	}
	exam.Student = &student

	recordActivity(ctx, s.activity, s.logger, withOffice(actor, student.OfficeID), "exam.created", "exam", &exam.ID, map[string]interface{}{
		"student_id": student.ID,
		"type":       exam.Type,
		"result":     exam.Result,
	})

	s.afterWrite(ctx, student.ID)

	return dto.NewExamResponse(exam), nil
}

func (s *examService) UpdateResult(ctx context.Context, id uint, payload dto.ExamResultRequest, actor ActivityActor) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "exams.update_result", trace.WithAttributes(
		attribute.Int("exam.id", int(id)),
		attribute.String("exam.result", payload.Result),
	))
	defer span.End()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}
	if _, err := scopedStudent(ctx, s.students, current.StudentID, actor); err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}

	result := models.ExamResult(strings.ToLower(payload.Result))
	if current.Result == result {
		return dto.NewExamResponse(current), nil
	}

	updated, err := s.repo.UpdateResult(ctx, id, result)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		span.RecordError(err)
		return dto.ExamResponse{}, err
	}

	officeID := uint(0)
	if updated.Student != nil {
		officeID = updated.Student.OfficeID
	}
	recordActivity(ctx, s.activity, s.logger, withOffice(actor, officeID), "exam.result_updated", "exam", &updated.ID, map[string]interface{}{
		"student_id": updated.StudentID,
		"from":       current.Result,
		"to":         updated.Result,
	})

	s.afterWrite(ctx, updated.StudentID)

	return dto.NewExamResponse(updated), nil
}

func (s *examService) List(ctx context.Context, req dto.ExamListRequest) ([]dto.ExamResponse, error) {
	exams, err := s.repo.List(ctx, repository.ExamFilter{
		OfficeID:  req.OfficeID,
		StudentID: req.StudentID,
		Type:      strings.ToLower(strings.TrimSpace(req.Type)),
		Result:    strings.ToLower(strings.TrimSpace(req.Result)),
	})
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}

	out := make([]dto.ExamResponse, 0, len(exams))
	for _, exam := range exams {
		out = append(out, dto.NewExamResponse(exam))
	}
	return out, nil
}

// afterWrite runs the archival hook. The exam is already stored, so failures are only logged.
func (s *examService) afterWrite(ctx context.Context, studentID uint) {
	if s.policy == nil {
		return
	}
	if err := s.policy.OnExamRecorded(ctx, studentID); err != nil {
		s.logger.Error().Err(err).Uint("student_id", studentID).Msg("archival policy failed after exam write")
	}
}

// withOffice returns the actor with the office the change belongs to.
func withOffice(actor ActivityActor, officeID uint) ActivityActor {
	if officeID == 0 {
		return actor
	}
	actor.OfficeID = officePtr(officeID)
	return actor
}
