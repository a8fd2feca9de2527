package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

var (
	// ErrVehicleNotFound indicates the vehicle does not exist.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrLicensePlateTaken indicates another vehicle already uses the plate.
	ErrLicensePlateTaken = errors.New("license plate already registered")
)

// FleetService manages training vehicles and their service history.
type FleetService interface {
	CreateVehicle(ctx context.Context, payload dto.VehicleCreateRequest, actor ActivityActor) (dto.VehicleResponse, error)
	ListVehicles(ctx context.Context, req dto.VehicleListRequest) ([]dto.VehicleResponse, error)
	GetVehicle(ctx context.Context, id uint) (dto.VehicleResponse, error)
	AddMaintenance(ctx context.Context, vehicleID uint, payload dto.MaintenanceCreateRequest, actor ActivityActor) (dto.MaintenanceResponse, error)
	ListMaintenance(ctx context.Context, vehicleID uint) ([]dto.MaintenanceResponse, error)
	AddInspection(ctx context.Context, vehicleID uint, payload dto.InspectionCreateRequest, actor ActivityActor) (dto.InspectionResponse, error)
	ListInspections(ctx context.Context, vehicleID uint) ([]dto.InspectionResponse, error)
}

type fleetService struct {
	repo      repository.FleetRepository
	validator *validator.Validate
	activity  ActivityRecorder
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewFleetService constructs the fleet service.
func NewFleetService(repo repository.FleetRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) FleetService {
	return &fleetService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "fleet_service").Logger(),
		now:       time.Now,
	}
}

func (s *fleetService) CreateVehicle(ctx context.Context, payload dto.VehicleCreateRequest, actor ActivityActor) (dto.VehicleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VehicleResponse{}, err
	}

	status := models.VehicleStatusAvailable
	if payload.Status != "" {
		status = models.VehicleStatus(payload.Status)
	}

	vehicle := models.Vehicle{
		Kind:         models.VehicleKind(payload.Kind),
		Make:         strings.TrimSpace(payload.Make),
		Model:        strings.TrimSpace(payload.Model),
		Year:         payload.Year,
		LicensePlate: strings.ToUpper(strings.TrimSpace(payload.LicensePlate)),
		Status:       status,
	}

	switch vehicle.Kind {
	case models.VehicleKindTruck:
		vehicle.TruckType = payload.TruckType
		if vehicle.TruckType == "" {
			vehicle.TruckType = "normal"
		}
	case models.VehicleKindBus:
		vehicle.Capacity = payload.Capacity
	case models.VehicleKindMotorcycle:
		vehicle.EngineDisplacement = payload.EngineDisplacement
	}

	if err := s.repo.CreateVehicle(ctx, &vehicle); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.VehicleResponse{}, ErrLicensePlateTaken
		}
		return dto.VehicleResponse{}, fmt.Errorf("create vehicle: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, actor, "vehicle.created", "vehicle", &vehicle.ID, map[string]interface{}{
		"kind":  vehicle.Kind,
		"plate": vehicle.LicensePlate,
	})

	return dto.NewVehicleResponse(vehicle), nil
}

func (s *fleetService) ListVehicles(ctx context.Context, req dto.VehicleListRequest) ([]dto.VehicleResponse, error) {
	vehicles, err := s.repo.ListVehicles(ctx, repository.VehicleFilter{
		Kind:   strings.ToLower(strings.TrimSpace(req.Kind)),
		Status: strings.ToLower(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		out = append(out, dto.NewVehicleResponse(vehicle))
	}
	return out, nil
}

func (s *fleetService) GetVehicle(ctx context.Context, id uint) (dto.VehicleResponse, error) {
	vehicle, err := s.vehicle(ctx, id)
	if err != nil {
		return dto.VehicleResponse{}, err
	}
	return dto.NewVehicleResponse(vehicle), nil
}

// AddMaintenance records the entry; the vehicle status follows the maintenance state.
func (s *fleetService) AddMaintenance(ctx context.Context, vehicleID uint, payload dto.MaintenanceCreateRequest, actor ActivityActor) (dto.MaintenanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MaintenanceResponse{}, err
	}

	date, err := parseDate(payload.Date, today(s.now()))
	if err != nil {
		return dto.MaintenanceResponse{}, err
	}

	entry := models.Maintenance{
		VehicleID:   vehicleID,
		Date:        date,
		Description: plainText(s.sanitizer, payload.Description),
		Cost:        payload.Cost,
		Status:      payload.Status,
	}

	vehicle, err := s.repo.AddMaintenance(ctx, &entry)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaintenanceResponse{}, ErrVehicleNotFound
		}
		return dto.MaintenanceResponse{}, fmt.Errorf("add maintenance: %w", err)
	}

	s.logger.Debug().
		Uint("vehicle_id", vehicle.ID).
		Str("maintenance_status", entry.Status).
		Str("vehicle_status", string(vehicle.Status)).
		Msg("maintenance recorded")

	recordActivity(ctx, s.activity, s.logger, actor, "vehicle.maintenance_added", "vehicle", &vehicle.ID, map[string]interface{}{
		"status": entry.Status,
		"cost":   entry.Cost,
	})

	return dto.NewMaintenanceResponse(entry), nil
}

func (s *fleetService) ListMaintenance(ctx context.Context, vehicleID uint) ([]dto.MaintenanceResponse, error) {
	if _, err := s.vehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListMaintenance(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}

	out := make([]dto.MaintenanceResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.NewMaintenanceResponse(entry))
	}
	return out, nil
}

func (s *fleetService) AddInspection(ctx context.Context, vehicleID uint, payload dto.InspectionCreateRequest, actor ActivityActor) (dto.InspectionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InspectionResponse{}, err
	}
	if _, err := s.vehicle(ctx, vehicleID); err != nil {
		return dto.InspectionResponse{}, err
	}

	date, err := parseDate(payload.Date, today(s.now()))
	if err != nil {
		return dto.InspectionResponse{}, err
	}

	entry := models.Inspection{
		VehicleID:     vehicleID,
		Date:          date,
		InspectorName: strings.TrimSpace(payload.InspectorName),
		Result:        payload.Result,
		Notes:         plainText(s.sanitizer, payload.Notes),
	}
	if err := s.repo.AddInspection(ctx, &entry); err != nil {
		return dto.InspectionResponse{}, fmt.Errorf("add inspection: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, actor, "vehicle.inspection_added", "vehicle", &vehicleID, map[string]interface{}{
		"result": entry.Result,
	})

	return dto.NewInspectionResponse(entry), nil
}

func (s *fleetService) ListInspections(ctx context.Context, vehicleID uint) ([]dto.InspectionResponse, error) {
	if _, err := s.vehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListInspections(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}

	out := make([]dto.InspectionResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.NewInspectionResponse(entry))
	}
	return out, nil
}

func (s *fleetService) vehicle(ctx context.Context, id uint) (models.Vehicle, error) {
	vehicle, err := s.repo.GetVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Vehicle{}, ErrVehicleNotFound
		}
		return models.Vehicle{}, fmt.Errorf("load vehicle %d: %w", id, err)
	}
	return vehicle, nil
}
