package models

import "time"

// VehicleKind distinguishes the vehicle families used for lessons.
type VehicleKind string

// VehicleStatus tracks vehicle availability.
type VehicleStatus string

const (
	VehicleKindCar        VehicleKind = "car"
	VehicleKindTruck      VehicleKind = "truck"
	VehicleKindBus        VehicleKind = "bus"
	VehicleKindMotorcycle VehicleKind = "motorcycle"
)

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusInUse       VehicleStatus = "in_use"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

// Maintenance statuses.
const (
	MaintenanceScheduled = "scheduled"
	MaintenanceCompleted = "completed"
)

// Vehicle is a training vehicle. Kind-specific attributes are zero for other kinds.
type Vehicle struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	Kind               VehicleKind   `gorm:"size:16;not null;index" json:"kind"`
	Make               string        `gorm:"size:128;not null" json:"make"`
	Model              string        `gorm:"size:128;not null" json:"model"`
	Year               int           `json:"year"`
	LicensePlate       string        `gorm:"size:32;uniqueIndex;not null" json:"license_plate"`
	Status             VehicleStatus `gorm:"size:16;not null;default:available" json:"status"`
	TruckType          string        `gorm:"size:16" json:"truck_type,omitempty"`
	Capacity           int           `json:"capacity,omitempty"`
	EngineDisplacement int           `json:"engine_displacement,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// DisplayName renders the vehicle the way lesson lists show it.
func (v Vehicle) DisplayName() string {
	return v.Make + " " + v.Model
}

// Maintenance is a service operation on a vehicle.
type Maintenance struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VehicleID   uint      `gorm:"index;not null" json:"vehicle_id"`
	Date        time.Time `gorm:"index" json:"date"`
	Description string    `gorm:"size:512" json:"description"`
	Cost        float64   `json:"cost"`
	Status      string    `gorm:"size:16;not null" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Inspection is a technical inspection result for a vehicle.
type Inspection struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	VehicleID     uint      `gorm:"index;not null" json:"vehicle_id"`
	Date          time.Time `gorm:"index" json:"date"`
	InspectorName string    `gorm:"size:255" json:"inspector_name"`
	Result        string    `gorm:"size:16;not null" json:"result"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}
