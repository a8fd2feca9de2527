package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

var (
	// ErrLicensePriceExists indicates the category already has a price.
	ErrLicensePriceExists = errors.New("license price already exists")
	// ErrLicensePriceNotFound indicates the category has no price.
	ErrLicensePriceNotFound = errors.New("license price not found")
)

// LicensePriceService manages the price table of licence categories.
type LicensePriceService interface {
	PriceLookup
	List(ctx context.Context) ([]dto.LicensePriceResponse, error)
	Add(ctx context.Context, payload dto.LicensePriceRequest, actor ActivityActor) (dto.LicensePriceResponse, error)
	Update(ctx context.Context, category string, payload dto.LicensePriceUpdateRequest, actor ActivityActor) (dto.LicensePriceResponse, error)
	Delete(ctx context.Context, category string, actor ActivityActor) error
}

type licensePriceService struct {
	repo      repository.LicensePriceRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewLicensePriceService constructs the licence price service.
func NewLicensePriceService(repo repository.LicensePriceRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) LicensePriceService {
	return &licensePriceService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "license_price_service").Logger(),
	}
}

// NormalizeCategory upper-cases a licence category code.
func NormalizeCategory(category string) string {
	return strings.ToUpper(strings.TrimSpace(category))
}

// FindPrice reports the price of a category and whether it is listed.
func (s *licensePriceService) FindPrice(ctx context.Context, category string) (float64, bool, error) {
	price, err := s.repo.Get(ctx, NormalizeCategory(category))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return price.Price, true, nil
}

func (s *licensePriceService) List(ctx context.Context) ([]dto.LicensePriceResponse, error) {
	prices, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list license prices: %w", err)
	}

	out := make([]dto.LicensePriceResponse, 0, len(prices))
	for _, price := range prices {
		out = append(out, dto.NewLicensePriceResponse(price))
	}
	return out, nil
}

func (s *licensePriceService) Add(ctx context.Context, payload dto.LicensePriceRequest, actor ActivityActor) (dto.LicensePriceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LicensePriceResponse{}, err
	}

	category := NormalizeCategory(payload.Category)
	if _, err := s.repo.Get(ctx, category); err == nil {
		return dto.LicensePriceResponse{}, ErrLicensePriceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.LicensePriceResponse{}, err
	}

	model := models.LicensePrice{Category: category, Price: payload.Price}
	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.LicensePriceResponse{}, fmt.Errorf("create license price: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, actor, "license_price.created", "license_price", nil, map[string]interface{}{
		"category": category,
		"price":    model.Price,
	})

	return dto.NewLicensePriceResponse(model), nil
}

func (s *licensePriceService) Update(ctx context.Context, category string, payload dto.LicensePriceUpdateRequest, actor ActivityActor) (dto.LicensePriceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LicensePriceResponse{}, err
	}

	category = NormalizeCategory(category)
	model, err := s.repo.UpdatePrice(ctx, category, payload.Price)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LicensePriceResponse{}, ErrLicensePriceNotFound
		}
		return dto.LicensePriceResponse{}, err
	}

	recordActivity(ctx, s.activity, s.logger, actor, "license_price.updated", "license_price", nil, map[string]interface{}{
		"category": category,
		"price":    model.Price,
	})

	return dto.NewLicensePriceResponse(model), nil
}

func (s *licensePriceService) Delete(ctx context.Context, category string, actor ActivityActor) error {
	category = NormalizeCategory(category)
	if err := s.repo.Delete(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLicensePriceNotFound
		}
		return err
	}

	recordActivity(ctx, s.activity, s.logger, actor, "license_price.deleted", "license_price", nil, map[string]interface{}{
		"category": category,
	})
	return nil
}
