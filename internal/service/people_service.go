package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

var (
	// ErrTrainerNotFound indicates the trainer does not exist.
	ErrTrainerNotFound = errors.New("trainer not found")
	// ErrStaffNotFound indicates the staff member does not exist.
	ErrStaffNotFound = errors.New("staff member not found")
)

// PeopleService manages trainers and staff members.
type PeopleService interface {
	CreateTrainer(ctx context.Context, payload dto.TrainerCreateRequest, actor ActivityActor) (dto.TrainerResponse, error)
	ListTrainers(ctx context.Context) ([]dto.TrainerResponse, error)
	GetTrainer(ctx context.Context, id uint) (dto.TrainerResponse, error)
	CreateStaff(ctx context.Context, payload dto.StaffCreateRequest, actor ActivityActor) (dto.StaffResponse, error)
	ListStaff(ctx context.Context) ([]dto.StaffResponse, error)
	GetStaff(ctx context.Context, id uint) (dto.StaffResponse, error)
}

type peopleService struct {
	repo      repository.PeopleRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewPeopleService constructs the people service.
func NewPeopleService(repo repository.PeopleRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) PeopleService {
	return &peopleService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "people_service").Logger(),
		now:       time.Now,
	}
}

func (s *peopleService) CreateTrainer(ctx context.Context, payload dto.TrainerCreateRequest, actor ActivityActor) (dto.TrainerResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TrainerResponse{}, err
	}

	hireDate, err := parseDate(payload.HireDate, today(s.now()))
	if err != nil {
		return dto.TrainerResponse{}, err
	}

	var licenseDate *time.Time
	if payload.LicenseDate != "" {
		parsed, err := parseDate(payload.LicenseDate, time.Time{})
		if err != nil {
			return dto.TrainerResponse{}, err
		}
		licenseDate = &parsed
	}

	types := make([]string, 0, len(payload.LicenseTypes))
	for _, category := range payload.LicenseTypes {
		if normalized := NormalizeCategory(category); normalized != "" {
			types = append(types, normalized)
		}
	}

	trainer := models.Trainer{
		Name:         strings.TrimSpace(payload.Name),
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:        strings.TrimSpace(payload.Phone),
		Specialty:    strings.TrimSpace(payload.Specialty),
		HireDate:     hireDate,
		LicenseDate:  licenseDate,
		CIN:          strings.ToUpper(strings.TrimSpace(payload.CIN)),
		LicenseTypes: datatypes.NewJSONSlice(types),
		PictureURL:   payload.PictureURL,
		DiplomaURL:   payload.DiplomaURL,
	}
	if err := s.repo.CreateTrainer(ctx, &trainer); err != nil {
		return dto.TrainerResponse{}, fmt.Errorf("create trainer: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, actor, "trainer.created", "trainer", &trainer.ID, map[string]interface{}{
		"license_types": types,
	})

	return dto.NewTrainerResponse(trainer), nil
}

func (s *peopleService) ListTrainers(ctx context.Context) ([]dto.TrainerResponse, error) {
	trainers, err := s.repo.ListTrainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}

	out := make([]dto.TrainerResponse, 0, len(trainers))
	for _, trainer := range trainers {
		out = append(out, dto.NewTrainerResponse(trainer))
	}
	return out, nil
}

func (s *peopleService) GetTrainer(ctx context.Context, id uint) (dto.TrainerResponse, error) {
	trainer, err := s.repo.GetTrainer(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TrainerResponse{}, ErrTrainerNotFound
		}
		return dto.TrainerResponse{}, err
	}
	return dto.NewTrainerResponse(trainer), nil
}

func (s *peopleService) CreateStaff(ctx context.Context, payload dto.StaffCreateRequest, actor ActivityActor) (dto.StaffResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StaffResponse{}, err
	}

	hireDate, err := parseDate(payload.HireDate, today(s.now()))
	if err != nil {
		return dto.StaffResponse{}, err
	}

	salaryType := payload.SalaryType
	if salaryType == "" {
		salaryType = models.SalaryMonthly
	}
	status := payload.Status
	if status == "" {
		status = models.PresencePresent
	}

	staff := models.Staff{
		Name:         strings.TrimSpace(payload.Name),
		Role:         strings.TrimSpace(payload.Role),
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:        strings.TrimSpace(payload.Phone),
		HireDate:     hireDate,
		CIN:          strings.ToUpper(strings.TrimSpace(payload.CIN)),
		Address:      strings.TrimSpace(payload.Address),
		WhatsApp:     strings.TrimSpace(payload.WhatsApp),
		SalaryType:   salaryType,
		SalaryAmount: payload.SalaryAmount,
		PictureURL:   payload.PictureURL,
		Status:       status,
	}
	if err := s.repo.CreateStaff(ctx, &staff); err != nil {
		return dto.StaffResponse{}, fmt.Errorf("create staff: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, actor, "staff.created", "staff", &staff.ID, map[string]interface{}{
		"role": staff.Role,
	})

	return dto.NewStaffResponse(staff), nil
}

func (s *peopleService) ListStaff(ctx context.Context) ([]dto.StaffResponse, error) {
	members, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}

	out := make([]dto.StaffResponse, 0, len(members))
	for _, member := range members {
		out = append(out, dto.NewStaffResponse(member))
	}
	return out, nil
}

func (s *peopleService) GetStaff(ctx context.Context, id uint) (dto.StaffResponse, error) {
	member, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StaffResponse{}, ErrStaffNotFound
		}
		return dto.StaffResponse{}, err
	}
	return dto.NewStaffResponse(member), nil
}
