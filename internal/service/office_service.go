package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

var (
	// ErrOfficeNotFound indicates the office does not exist.
	ErrOfficeNotFound = errors.New("office not found")
	// ErrSecretaryNotFound indicates no secretary account has the id.
	ErrSecretaryNotFound = errors.New("secretary not found")
	// ErrEmailTaken indicates another account already uses the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrSubscriptionNotFound indicates the subscription plan does not exist.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// defaultSchoolProfile is served until an admin saves the real branding.
var defaultSchoolProfile = models.SchoolProfile{
	Name:       "DriveDesk School",
	TargetLine: "Your journey to safe driving starts here.",
	Country:    "Morocco",
	AdminName:  "Admin User",
}

// OfficeService manages offices, secretary accounts, subscription plans and the school profile.
type OfficeService interface {
	ListOffices(ctx context.Context) ([]dto.OfficeResponse, error)
	CreateOffice(ctx context.Context, payload dto.OfficeCreateRequest, actor ActivityActor) (dto.OfficeResponse, error)
	ListSecretaries(ctx context.Context, officeID *uint) ([]dto.UserResponse, error)
	CreateSecretary(ctx context.Context, payload dto.SecretaryCreateRequest, actor ActivityActor) (dto.UserResponse, error)
	DeleteSecretary(ctx context.Context, id uint, actor ActivityActor) error
	ListSubscriptions(ctx context.Context) ([]dto.SubscriptionResponse, error)
	UpdateSubscription(ctx context.Context, code string, payload dto.SubscriptionUpdateRequest, actor ActivityActor) (dto.SubscriptionResponse, error)
	Profile(ctx context.Context) (dto.SchoolProfileResponse, error)
	UpdateProfile(ctx context.Context, payload dto.SchoolProfileRequest, actor ActivityActor) (dto.SchoolProfileResponse, error)
}

type officeService struct {
	offices   repository.OfficeRepository
	users     repository.UserRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewOfficeService constructs the office service.
func NewOfficeService(offices repository.OfficeRepository, users repository.UserRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) OfficeService {
	return &officeService{
		offices:   offices,
		users:     users,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "office_service").Logger(),
	}
}

func (s *officeService) ListOffices(ctx context.Context) ([]dto.OfficeResponse, error) {
	offices, err := s.offices.ListOffices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offices: %w", err)
	}

	out := make([]dto.OfficeResponse, 0, len(offices))
	for _, office := range offices {
		out = append(out, dto.NewOfficeResponse(office))
	}
	return out, nil
}

func (s *officeService) CreateOffice(ctx context.Context, payload dto.OfficeCreateRequest, actor ActivityActor) (dto.OfficeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.OfficeResponse{}, err
	}

	plan := payload.SubscriptionPlan
	if plan == "" {
		plan = models.PlanBasic
	}

	office := models.Office{
		Name:             strings.TrimSpace(payload.Name),
		Address:          strings.TrimSpace(payload.Address),
		Phone:            strings.TrimSpace(payload.Phone),
		SubscriptionPlan: plan,
	}
	if err := s.offices.CreateOffice(ctx, &office); err != nil {
		return dto.OfficeResponse{}, fmt.Errorf("create office: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, withOffice(actor, office.ID), "office.created", "office", &office.ID, map[string]interface{}{
		"plan": plan,
	})

	return dto.NewOfficeResponse(office), nil
}

func (s *officeService) ListSecretaries(ctx context.Context, officeID *uint) ([]dto.UserResponse, error) {
	users, err := s.users.ListByRole(ctx, models.RoleSecretary, officeID)
	if err != nil {
		return nil, fmt.Errorf("list secretaries: %w", err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.NewUserResponse(user))
	}
	return out, nil
}

func (s *officeService) CreateSecretary(ctx context.Context, payload dto.SecretaryCreateRequest, actor ActivityActor) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.offices.GetOffice(ctx, payload.OfficeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrOfficeNotFound
		}
		return dto.UserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return dto.UserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	officeID := payload.OfficeID
	user := models.User{
		Name:     strings.TrimSpace(payload.Name),
		Email:    email,
		Role:     models.RoleSecretary,
		OfficeID: &officeID,
	}
	if err := user.SetPassword(payload.Password); err != nil {
		return dto.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.UserResponse{}, ErrEmailTaken
		}
		return dto.UserResponse{}, fmt.Errorf("create secretary: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, withOffice(actor, officeID), "secretary.created", "user", &user.ID, map[string]interface{}{
		"email": user.Email,
	})

	return dto.NewUserResponse(user), nil
}

func (s *officeService) DeleteSecretary(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.users.DeleteWithRole(ctx, id, models.RoleSecretary); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSecretaryNotFound
		}
		return fmt.Errorf("delete secretary %d: %w", id, err)
	}

	recordActivity(ctx, s.activity, s.logger, actor, "secretary.deleted", "user", &id, nil)
	return nil
}

func (s *officeService) ListSubscriptions(ctx context.Context) ([]dto.SubscriptionResponse, error) {
	subscriptions, err := s.offices.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	out := make([]dto.SubscriptionResponse, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		out = append(out, dto.NewSubscriptionResponse(subscription))
	}
	return out, nil
}

func (s *officeService) UpdateSubscription(ctx context.Context, code string, payload dto.SubscriptionUpdateRequest, actor ActivityActor) (dto.SubscriptionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubscriptionResponse{}, err
	}

	subscription, err := s.offices.GetSubscription(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubscriptionResponse{}, ErrSubscriptionNotFound
		}
		return dto.SubscriptionResponse{}, err
	}

	if payload.Name != nil {
		subscription.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Price != nil {
		subscription.Price = roundCents(*payload.Price)
	}
	if payload.Duration != nil {
		subscription.Duration = *payload.Duration
	}
	if payload.Features != nil {
		subscription.Features = datatypes.NewJSONSlice(payload.Features)
	}

	if err := s.offices.SaveSubscription(ctx, &subscription); err != nil {
		return dto.SubscriptionResponse{}, fmt.Errorf("save subscription %s: %w", subscription.Code, err)
	}

	recordActivity(ctx, s.activity, s.logger, actor, "subscription.updated", "subscription", nil, map[string]interface{}{
		"code":  subscription.Code,
		"price": subscription.Price,
	})

	return dto.NewSubscriptionResponse(subscription), nil
}

func (s *officeService) Profile(ctx context.Context) (dto.SchoolProfileResponse, error) {
	profile, err := s.offices.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NewSchoolProfileResponse(defaultSchoolProfile), nil
		}
		return dto.SchoolProfileResponse{}, fmt.Errorf("load school profile: %w", err)
	}
	return dto.NewSchoolProfileResponse(profile), nil
}

func (s *officeService) UpdateProfile(ctx context.Context, payload dto.SchoolProfileRequest, actor ActivityActor) (dto.SchoolProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SchoolProfileResponse{}, err
	}

	profile, err := s.offices.GetProfile(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SchoolProfileResponse{}, fmt.Errorf("load school profile: %w", err)
	}

	profile.Logo = strings.TrimSpace(payload.Logo)
	profile.Name = strings.TrimSpace(payload.Name)
	profile.TargetLine = strings.TrimSpace(payload.TargetLine)
	profile.Phone = strings.TrimSpace(payload.Phone)
	profile.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	profile.Website = strings.TrimSpace(payload.Website)
	profile.Address = strings.TrimSpace(payload.Address)
	profile.Country = strings.TrimSpace(payload.Country)
	profile.AdminName = strings.TrimSpace(payload.AdminName)

	if err := s.offices.SaveProfile(ctx, &profile); err != nil {
		return dto.SchoolProfileResponse{}, fmt.Errorf("save school profile: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, actor, "school_profile.updated", "school_profile", &profile.ID, nil)

	return dto.NewSchoolProfileResponse(profile), nil
}
