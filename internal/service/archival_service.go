package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/observability"
)

// ErrStudentNotFound indicates the student does not exist.
var ErrStudentNotFound = errors.New("student not found")

const (
	archiveTriggerExam    = "exam"
	archiveTriggerPayment = "payment"
)

// ArchivalStudentStore reads students and performs the one-way archive transition.
type ArchivalStudentStore interface {
	GetByID(ctx context.Context, id uint) (models.Student, error)
	MarkArchived(ctx context.Context, id uint, at time.Time) (bool, error)
}

// StudentExamLister lists every exam of a student.
type StudentExamLister interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.Exam, error)
}

// StudentPaymentLister lists every payment of a student.
type StudentPaymentLister interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.Payment, error)
}

// PriceLookup resolves the course price of a licence category.
type PriceLookup interface {
	FindPrice(ctx context.Context, category string) (float64, bool, error)
}

// NotificationPublisher appends a notification to the office feed.
type NotificationPublisher interface {
	Publish(ctx context.Context, payload dto.NotificationCreateRequest) (dto.NotificationResponse, error)
}

// ArchivalPolicy archives a student's file once both exams are passed and the course is paid.
type ArchivalPolicy interface {
	OnExamRecorded(ctx context.Context, studentID uint) error
	OnPaymentRecorded(ctx context.Context, studentID uint) error
}

type archivalPolicy struct {
	students      ArchivalStudentStore
	exams         StudentExamLister
	payments      StudentPaymentLister
	prices        PriceLookup
	notifications NotificationPublisher
	activity      ActivityRecorder
	currency      string
	locks         *keyedMutex
	logger        zerolog.Logger
	tracer        trace.Tracer
	now           func() time.Time
}

// NewArchivalPolicy constructs the archival policy.
func NewArchivalPolicy(students ArchivalStudentStore, exams StudentExamLister, payments StudentPaymentLister, prices PriceLookup, notifications NotificationPublisher, activity ActivityRecorder, currency string, logger zerolog.Logger) ArchivalPolicy {
	if currency == "" {
		currency = "DH"
	}
	return &archivalPolicy{
		students:      students,
		exams:         exams,
		payments:      payments,
		prices:        prices,
		notifications: notifications,
		activity:      activity,
		currency:      currency,
		locks:         newKeyedMutex(),
		logger:        logger.With().Str("component", "archival_policy").Logger(),
		tracer:        otel.Tracer("github.com/noah-isme/drivedesk-api/internal/service/archival"),
		now:           time.Now,
	}
}

// archivalState is the snapshot the policy decides on.
type archivalState struct {
	student   models.Student
	examsDone bool
	price     float64
	totalPaid float64
}

func (s archivalState) remaining() float64 {
	return s.price - s.totalPaid
}

func (p *archivalPolicy) OnExamRecorded(ctx context.Context, studentID uint) error {
	unlock := p.locks.Lock(studentID)
	defer unlock()

	ctx, span := p.tracer.Start(ctx, "archival.on_exam_recorded", trace.WithAttributes(
		attribute.Int("student.id", int(studentID)),
	))
	defer span.End()

	state, err := p.load(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !state.examsDone || state.student.Archived {
		return nil
	}

	student := state.student
	if err := p.notify(ctx, student, models.NotificationTypeCompletion,
		fmt.Sprintf("%s has passed all required exams.", student.Name)); err != nil {
		span.RecordError(err)
		return err
	}

	if remaining := state.remaining(); remaining > 0 {
		span.SetAttributes(attribute.Float64("student.remaining", remaining))
		return p.notify(ctx, student, models.NotificationTypePaymentDue,
			fmt.Sprintf("Collect remaining %.2f %s from %s to archive their file.", remaining, p.currency, student.Name))
	}

	return p.archive(ctx, state, archiveTriggerExam,
		fmt.Sprintf("%s's file has been automatically archived.", student.Name))
}

func (p *archivalPolicy) OnPaymentRecorded(ctx context.Context, studentID uint) error {
	unlock := p.locks.Lock(studentID)
	defer unlock()

	ctx, span := p.tracer.Start(ctx, "archival.on_payment_recorded", trace.WithAttributes(
		attribute.Int("student.id", int(studentID)),
	))
	defer span.End()

	state, err := p.load(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !state.examsDone || state.student.Archived || state.totalPaid < state.price {
		return nil
	}

	return p.archive(ctx, state, archiveTriggerPayment,
		fmt.Sprintf("%s's file has been archived after final payment.", state.student.Name))
}

func (p *archivalPolicy) load(ctx context.Context, studentID uint) (archivalState, error) {
	student, err := p.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return archivalState{}, ErrStudentNotFound
		}
		return archivalState{}, fmt.Errorf("load student %d: %w", studentID, err)
	}

	exams, err := p.exams.ListByStudent(ctx, studentID)
	if err != nil {
		return archivalState{}, fmt.Errorf("list exams of student %d: %w", studentID, err)
	}

	state := archivalState{student: student, examsDone: hasPassed(exams, models.ExamTypeTheory) && hasPassed(exams, models.ExamTypePractical)}
	if !state.examsDone || student.Archived {
		return state, nil
	}

	price, found, err := p.prices.FindPrice(ctx, student.LicenseCategory)
	if err != nil {
		return archivalState{}, fmt.Errorf("find price of category %s: %w", student.LicenseCategory, err)
	}
	if found {
		state.price = price
	}

	payments, err := p.payments.ListByStudent(ctx, studentID)
	if err != nil {
		return archivalState{}, fmt.Errorf("list payments of student %d: %w", studentID, err)
	}
	for _, payment := range payments {
		state.totalPaid += payment.Amount
	}

	return state, nil
}

func (p *archivalPolicy) archive(ctx context.Context, state archivalState, trigger, message string) error {
	student := state.student
	archived, err := p.students.MarkArchived(ctx, student.ID, p.now().UTC())
	if err != nil {
		return fmt.Errorf("archive student %d: %w", student.ID, err)
	}
	if !archived {
		return nil
	}

	observability.StudentsArchived().WithLabelValues(trigger).Inc()
	p.logger.Info().
		Uint("student_id", student.ID).
		Str("trigger", trigger).
		Float64("total_paid", state.totalPaid).
		Msg("student file archived")

	officeID := student.OfficeID
	actor := SystemActor
	actor.OfficeID = &officeID
	recordActivity(ctx, p.activity, p.logger, actor, "student.archived", "student", &student.ID, map[string]interface{}{
		"trigger":    trigger,
		"category":   student.LicenseCategory,
		"price":      state.price,
		"total_paid": state.totalPaid,
	})

	return p.notify(ctx, student, models.NotificationTypeCompletion, message)
}

func (p *archivalPolicy) notify(ctx context.Context, student models.Student, kind models.NotificationType, message string) error {
	_, err := p.notifications.Publish(ctx, dto.NotificationCreateRequest{
		StudentID:   student.ID,
		StudentName: student.Name,
		OfficeID:    student.OfficeID,
		Type:        string(kind),
		Message:     message,
	})
	if err != nil {
		return fmt.Errorf("publish %s notification for student %d: %w", kind, student.ID, err)
	}
	return nil
}

// hasPassed reports whether any exam of the type was ever passed.
func hasPassed(exams []models.Exam, examType models.ExamType) bool {
	for _, exam := range exams {
		if exam.Type == examType && exam.Result == models.ExamResultPassed {
			return true
		}
	}
	return false
}

// keyedMutex serialises work per student id.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uint]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uint]*keyedLock)}
}

// Lock blocks until the key is free and returns the matching unlock func.
func (k *keyedMutex) Lock(key uint) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &keyedLock{}
		k.locks[key] = lock
	}
	lock.refs++
	k.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		k.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
