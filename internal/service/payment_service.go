package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

// PaymentService records payments and runs the archival policy after each write.
type PaymentService interface {
	Create(ctx context.Context, payload dto.PaymentCreateRequest, actor ActivityActor) (dto.PaymentResponse, error)
	List(ctx context.Context, req dto.PaymentListRequest) ([]dto.PaymentResponse, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	students  StudentGetter
	policy    ArchivalPolicy
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewPaymentService constructs the payment service.
func NewPaymentService(repo repository.PaymentRepository, students StudentGetter, policy ArchivalPolicy, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) PaymentService {
	return &paymentService{
		repo:      repo,
		students:  students,
		policy:    policy,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "payment_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/drivedesk-api/internal/service/payment"),
		now:       time.Now,
	}
}

func (s *paymentService) Create(ctx context.Context, payload dto.PaymentCreateRequest, actor ActivityActor) (dto.PaymentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PaymentResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "payments.create", trace.WithAttributes(
		attribute.Int("student.id", int(payload.StudentID)),
		attribute.Float64("payment.amount", payload.Amount),
	))
	defer span.End()

	student, err := scopedStudent(ctx, s.students, payload.StudentID, actor)
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	date, err := parseDate(payload.Date, today(s.now()))
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	status := models.PaymentStatusPaid
	if payload.Status != "" {
		status = models.PaymentStatus(strings.ToLower(payload.Status))
	}

	payment := models.Payment{
		StudentID: student.ID,
		Amount:    roundCents(payload.Amount),
		Date:      date,
		Status:    status,
		Method:    models.PaymentMethod(strings.ToLower(payload.Method)),
	}
	if err := s.repo.Create(ctx, &payment); err != nil {
		span.RecordError(err)
		return dto.PaymentResponse{}, fmt.Errorf("create payment: %w", err)
	}
	payment.Student = &student

	recordActivity(ctx, s.activity, s.logger, withOffice(actor, student.OfficeID), "payment.created", "payment", &payment.ID, map[string]interface{}{
		"student_id": student.ID,
		"amount":     payment.Amount,
		"method":     payment.Method,
	})

	if s.policy != nil {
		if err := s.policy.OnPaymentRecorded(ctx, student.ID); err != nil {
			s.logger.Error().Err(err).Uint("student_id", student.ID).Msg("archival policy failed after payment write")
		}
	}

	return dto.NewPaymentResponse(payment), nil
}

func (s *paymentService) List(ctx context.Context, req dto.PaymentListRequest) ([]dto.PaymentResponse, error) {
	payments, err := s.repo.List(ctx, repository.PaymentFilter{
		OfficeID:  req.OfficeID,
		StudentID: req.StudentID,
		Status:    strings.ToLower(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		out = append(out, dto.NewPaymentResponse(payment))
	}
	return out, nil
}
