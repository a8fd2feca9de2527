package models

import (
	"time"

	"gorm.io/datatypes"
)

// Salary types for staff members.
const (
	SalaryMonthly   = "monthly"
	SalaryHourly    = "hourly"
	SalaryTaskBased = "task_based"
)

// Presence values shared by staff status and attendance records.
const (
	PresencePresent = "present"
	PresenceAbsent  = "absent"
)

// Trainer is an instructor qualified for one or more licence categories.
type Trainer struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	Name         string                      `gorm:"size:255;not null" json:"name"`
	Email        string                      `gorm:"size:255" json:"email"`
	Phone        string                      `gorm:"size:64" json:"phone"`
	Specialty    string                      `gorm:"size:128" json:"specialty"`
	HireDate     time.Time                   `json:"hire_date"`
	LicenseDate  *time.Time                  `json:"license_date,omitempty"`
	CIN          string                      `gorm:"size:32" json:"cin"`
	LicenseTypes datatypes.JSONSlice[string] `json:"license_types"`
	PictureURL   string                      `gorm:"size:512" json:"picture_url"`
	DiplomaURL   string                      `gorm:"size:512" json:"diploma_url"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// Staff is a non-teaching employee of the school.
type Staff struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Role         string    `gorm:"size:128" json:"role"`
	Email        string    `gorm:"size:255" json:"email"`
	Phone        string    `gorm:"size:64" json:"phone"`
	HireDate     time.Time `json:"hire_date"`
	CIN          string    `gorm:"size:32" json:"cin"`
	Address      string    `gorm:"size:255" json:"address"`
	WhatsApp     string    `gorm:"size:64" json:"whatsapp"`
	SalaryType   string    `gorm:"size:32;not null;default:monthly" json:"salary_type"`
	SalaryAmount float64   `json:"salary_amount"`
	PictureURL   string    `gorm:"size:512" json:"picture_url"`
	Status       string    `gorm:"size:16;not null;default:present" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
