package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// VehicleFilter narrows fleet queries.
type VehicleFilter struct {
	Kind   string
	Status string
}

// FleetRepository persists vehicles together with their maintenance and inspection history.
type FleetRepository interface {
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	GetVehicle(ctx context.Context, id uint) (models.Vehicle, error)
	ListVehicles(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, error)
	AddMaintenance(ctx context.Context, entry *models.Maintenance) (models.Vehicle, error)
	ListMaintenance(ctx context.Context, vehicleID uint) ([]models.Maintenance, error)
	AddInspection(ctx context.Context, entry *models.Inspection) error
	ListInspections(ctx context.Context, vehicleID uint) ([]models.Inspection, error)
}

type fleetRepository struct {
	db *gorm.DB
}

// NewFleetRepository constructs the fleet repository.
func NewFleetRepository(db *gorm.DB) FleetRepository {
	return &fleetRepository{db: db}
}

func (r *fleetRepository) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *fleetRepository) GetVehicle(ctx context.Context, id uint) (models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		return models.Vehicle{}, err
	}
	return vehicle, nil
}

func (r *fleetRepository) ListVehicles(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, error) {
	query := r.db.WithContext(ctx).Model(&models.Vehicle{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var vehicles []models.Vehicle
	err := query.Order("kind ASC").Order("id ASC").Find(&vehicles).Error
	return vehicles, err
}

// AddMaintenance stores the entry and applies its effect on the vehicle status in one transaction.
func (r *fleetRepository) AddMaintenance(ctx context.Context, entry *models.Maintenance) (models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vehicle, entry.VehicleID).Error; err != nil {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		next := vehicle.Status
		switch entry.Status {
		case models.MaintenanceScheduled:
			next = models.VehicleStatusMaintenance
		case models.MaintenanceCompleted:
			var pending int64
			if err := tx.Model(&models.Maintenance{}).
				Where("vehicle_id = ? AND status = ?", entry.VehicleID, models.MaintenanceScheduled).
				Count(&pending).Error; err != nil {
				return err
			}
			if pending == 0 {
				next = models.VehicleStatusAvailable
			}
		}

		if next == vehicle.Status {
			return nil
		}
		if err := tx.Model(&vehicle).Update("status", next).Error; err != nil {
			return err
		}
		vehicle.Status = next
		return nil
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	return vehicle, nil
}

func (r *fleetRepository) ListMaintenance(ctx context.Context, vehicleID uint) ([]models.Maintenance, error) {
	var entries []models.Maintenance
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("date DESC").
		Order("id DESC").
		Find(&entries).Error
	return entries, err
}

func (r *fleetRepository) AddInspection(ctx context.Context, entry *models.Inspection) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *fleetRepository) ListInspections(ctx context.Context, vehicleID uint) ([]models.Inspection, error) {
	var entries []models.Inspection
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("date DESC").
		Order("id DESC").
		Find(&entries).Error
	return entries, err
}
