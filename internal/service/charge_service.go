package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

// ChargeService records the operating expenses of the school.
type ChargeService interface {
	Create(ctx context.Context, payload dto.ChargeCreateRequest, actor ActivityActor) (dto.ChargeResponse, error)
	List(ctx context.Context, category string) (dto.ChargeListResponse, error)
}

type chargeService struct {
	repo      repository.ChargeRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewChargeService constructs the charge service.
func NewChargeService(repo repository.ChargeRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ChargeService {
	return &chargeService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "charge_service").Logger(),
		now:       time.Now,
	}
}

func (s *chargeService) Create(ctx context.Context, payload dto.ChargeCreateRequest, actor ActivityActor) (dto.ChargeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChargeResponse{}, err
	}

	date, err := parseDate(payload.Date, today(s.now()))
	if err != nil {
		return dto.ChargeResponse{}, err
	}

	charge := models.Charge{
		Category:    payload.Category,
		Amount:      roundCents(payload.Amount),
		Beneficiary: strings.TrimSpace(payload.Beneficiary),
		Date:        date,
		InvoiceURL:  strings.TrimSpace(payload.InvoiceURL),
	}
	if err := s.repo.Create(ctx, &charge); err != nil {
		return dto.ChargeResponse{}, fmt.Errorf("create charge: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, actor, "charge.created", "charge", &charge.ID, map[string]interface{}{
		"category": charge.Category,
		"amount":   charge.Amount,
	})

	return dto.NewChargeResponse(charge), nil
}

func (s *chargeService) List(ctx context.Context, category string) (dto.ChargeListResponse, error) {
	charges, err := s.repo.List(ctx, strings.ToLower(strings.TrimSpace(category)))
	if err != nil {
		return dto.ChargeListResponse{}, fmt.Errorf("list charges: %w", err)
	}

	response := dto.ChargeListResponse{
		Items:      make([]dto.ChargeResponse, 0, len(charges)),
		ByCategory: make(map[string]float64),
	}
	for _, charge := range charges {
		response.Items = append(response.Items, dto.NewChargeResponse(charge))
		response.Total += charge.Amount
		response.ByCategory[charge.Category] += charge.Amount
	}
	response.Total = roundCents(response.Total)
	for key, value := range response.ByCategory {
		response.ByCategory[key] = roundCents(value)
	}

	return response, nil
}

func roundCents(value float64) float64 {
	return math.Round(value*100) / 100
}
