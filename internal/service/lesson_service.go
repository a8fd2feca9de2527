package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

var (
	// ErrLessonNotFound indicates the lesson does not exist.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrInvalidTimeRange indicates a lesson ending before it starts.
	ErrInvalidTimeRange = errors.New("lesson end time must be after start time")
)

// LessonService schedules driving lessons.
type LessonService interface {
	Create(ctx context.Context, payload dto.LessonCreateRequest, actor ActivityActor) (dto.LessonResponse, error)
	List(ctx context.Context, req dto.LessonListRequest) ([]dto.LessonResponse, error)
	UpdateStatus(ctx context.Context, id uint, payload dto.LessonStatusRequest, actor ActivityActor) (dto.LessonResponse, error)
	UpcomingForTrainer(ctx context.Context, trainerID uint, officeID *uint) ([]dto.LessonResponse, error)
}

type lessonService struct {
	repo      repository.LessonRepository
	students  StudentGetter
	people    repository.PeopleRepository
	fleet     repository.FleetRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewLessonService constructs the lesson service.
func NewLessonService(repo repository.LessonRepository, students StudentGetter, people repository.PeopleRepository, fleet repository.FleetRepository, validate *validator.Validate, logger zerolog.Logger) LessonService {
	return &lessonService{
		repo:      repo,
		students:  students,
		people:    people,
		fleet:     fleet,
		validator: validate,
		logger:    logger.With().Str("component", "lesson_service").Logger(),
		now:       time.Now,
	}
}

func (s *lessonService) Create(ctx context.Context, payload dto.LessonCreateRequest, actor ActivityActor) (dto.LessonResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LessonResponse{}, err
	}
	if payload.EndTime <= payload.StartTime {
		return dto.LessonResponse{}, ErrInvalidTimeRange
	}

	student, err := scopedStudent(ctx, s.students, payload.StudentID, actor)
	if err != nil {
		return dto.LessonResponse{}, err
	}

	trainer, err := s.people.GetTrainer(ctx, payload.TrainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonResponse{}, ErrTrainerNotFound
		}
		return dto.LessonResponse{}, err
	}

	vehicle, err := s.fleet.GetVehicle(ctx, payload.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonResponse{}, ErrVehicleNotFound
		}
		return dto.LessonResponse{}, err
	}

	date, err := parseDate(payload.Date, today(s.now()))
	if err != nil {
		return dto.LessonResponse{}, err
	}

	status := models.LessonStatusScheduled
	if payload.Status != "" {
		status = models.LessonStatus(strings.ToLower(payload.Status))
	}

	lesson := models.Lesson{
		StudentID: student.ID,
		TrainerID: trainer.ID,
		VehicleID: vehicle.ID,
		Date:      date,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
		Status:    status,
	}
	if err := s.repo.Create(ctx, &lesson); err != nil {
		return dto.LessonResponse{}, fmt.Errorf("create lesson: %w", err)
	}
	lesson.Student = &student
	lesson.Trainer = &trainer
	lesson.Vehicle = &vehicle

	return dto.NewLessonResponse(lesson), nil
}

func (s *lessonService) List(ctx context.Context, req dto.LessonListRequest) ([]dto.LessonResponse, error) {
	lessons, err := s.repo.List(ctx, repository.LessonFilter{
		OfficeID:  req.OfficeID,
		StudentID: req.StudentID,
		TrainerID: req.TrainerID,
		Status:    strings.ToLower(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessonResponses(lessons), nil
}

func (s *lessonService) UpdateStatus(ctx context.Context, id uint, payload dto.LessonStatusRequest, actor ActivityActor) (dto.LessonResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LessonResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonResponse{}, ErrLessonNotFound
		}
		return dto.LessonResponse{}, err
	}
	if actor.OfficeID != nil && (current.Student == nil || current.Student.OfficeID != *actor.OfficeID) {
		return dto.LessonResponse{}, ErrLessonNotFound
	}

	updated, err := s.repo.UpdateStatus(ctx, id, models.LessonStatus(strings.ToLower(payload.Status)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonResponse{}, ErrLessonNotFound
		}
		return dto.LessonResponse{}, err
	}

	return dto.NewLessonResponse(updated), nil
}

// UpcomingForTrainer lists the scheduled lessons of a trainer, earliest first.
func (s *lessonService) UpcomingForTrainer(ctx context.Context, trainerID uint, officeID *uint) ([]dto.LessonResponse, error) {
	if _, err := s.people.GetTrainer(ctx, trainerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	lessons, err := s.repo.List(ctx, repository.LessonFilter{
		OfficeID:  officeID,
		TrainerID: trainerID,
		Status:    string(models.LessonStatusScheduled),
	})
	if err != nil {
		return nil, fmt.Errorf("list trainer lessons: %w", err)
	}
	return lessonResponses(lessons), nil
}

func lessonResponses(lessons []models.Lesson) []dto.LessonResponse {
	out := make([]dto.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		out = append(out, dto.NewLessonResponse(lesson))
	}
	return out
}
