package dto

import (
	"time"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// VehicleListRequest defines filters for listing the fleet.
type VehicleListRequest struct {
	Kind   string
	Status string
}

// VehicleCreateRequest registers a vehicle.
type VehicleCreateRequest struct {
	Kind               string `json:"kind" validate:"required,oneof=car truck bus motorcycle"`
	Make               string `json:"make" validate:"required,max=128"`
	Model              string `json:"model" validate:"required,max=128"`
	Year               int    `json:"year" validate:"required,gte=1950,lte=2100"`
	LicensePlate       string `json:"license_plate" validate:"required,max=32"`
	Status             string `json:"status" validate:"omitempty,oneof=available in_use maintenance"`
	TruckType          string `json:"truck_type" validate:"omitempty,oneof=normal long_haul"`
	Capacity           int    `json:"capacity" validate:"omitempty,gt=0"`
	EngineDisplacement int    `json:"engine_displacement" validate:"omitempty,gt=0"`
}

// VehicleResponse serializes a vehicle.
type VehicleResponse struct {
	ID                 uint   `json:"id"`
	Kind               string `json:"kind"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
	LicensePlate       string `json:"license_plate"`
	Status             string `json:"status"`
	TruckType          string `json:"truck_type,omitempty"`
	Capacity           int    `json:"capacity,omitempty"`
	EngineDisplacement int    `json:"engine_displacement,omitempty"`
}

// NewVehicleResponse converts a vehicle model into a DTO.
func NewVehicleResponse(model models.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 model.ID,
		Kind:               string(model.Kind),
		Make:               model.Make,
		Model:              model.Model,
		Year:               model.Year,
		LicensePlate:       model.LicensePlate,
		Status:             string(model.Status),
		TruckType:          model.TruckType,
		Capacity:           model.Capacity,
		EngineDisplacement: model.EngineDisplacement,
	}
}

// MaintenanceCreateRequest records a maintenance operation.
type MaintenanceCreateRequest struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description" validate:"required,max=512"`
	Cost        float64 `json:"cost" validate:"gte=0"`
	Status      string  `json:"status" validate:"required,oneof=scheduled completed"`
}

// MaintenanceResponse serializes a maintenance entry.
type MaintenanceResponse struct {
	ID          uint      `json:"id"`
	VehicleID   uint      `json:"vehicle_id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	Status      string    `json:"status"`
}

// NewMaintenanceResponse converts a maintenance model into a DTO.
func NewMaintenanceResponse(model models.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:          model.ID,
		VehicleID:   model.VehicleID,
		Date:        model.Date,
		Description: model.Description,
		Cost:        model.Cost,
		Status:      model.Status,
	}
}

// InspectionCreateRequest records a technical inspection.
type InspectionCreateRequest struct {
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	InspectorName string `json:"inspector_name" validate:"required,max=255"`
	Result        string `json:"result" validate:"required,oneof=passed failed pending"`
	Notes         string `json:"notes" validate:"omitempty,max=2000"`
}

// InspectionResponse serializes an inspection entry.
type InspectionResponse struct {
	ID            uint      `json:"id"`
	VehicleID     uint      `json:"vehicle_id"`
	Date          time.Time `json:"date"`
	InspectorName string    `json:"inspector_name"`
	Result        string    `json:"result"`
	Notes         string    `json:"notes"`
}

// NewInspectionResponse converts an inspection model into a DTO.
func NewInspectionResponse(model models.Inspection) InspectionResponse {
	return InspectionResponse{
		ID:            model.ID,
		VehicleID:     model.VehicleID,
		Date:          model.Date,
		InspectorName: model.InspectorName,
		Result:        model.Result,
		Notes:         model.Notes,
	}
}
