package dto

import (
	"time"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// TrainerCreateRequest registers a trainer.
type TrainerCreateRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=255"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Phone        string   `json:"phone" validate:"omitempty,max=64"`
	Specialty    string   `json:"specialty" validate:"omitempty,max=128"`
	HireDate     string   `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	LicenseDate  string   `json:"license_date" validate:"omitempty,datetime=2006-01-02"`
	CIN          string   `json:"cin" validate:"omitempty,max=32"`
	LicenseTypes []string `json:"license_types" validate:"omitempty,dive,required,max=16"`
	PictureURL   string   `json:"picture_url" validate:"omitempty,url"`
	DiplomaURL   string   `json:"diploma_url" validate:"omitempty,url"`
}

// TrainerResponse serializes a trainer.
type TrainerResponse struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Specialty    string     `json:"specialty"`
	HireDate     time.Time  `json:"hire_date"`
	LicenseDate  *time.Time `json:"license_date,omitempty"`
	CIN          string     `json:"cin"`
	LicenseTypes []string   `json:"license_types"`
	PictureURL   string     `json:"picture_url,omitempty"`
	DiplomaURL   string     `json:"diploma_url,omitempty"`
}

// NewTrainerResponse converts a trainer model into a DTO.
func NewTrainerResponse(model models.Trainer) TrainerResponse {
	types := make([]string, 0, len(model.LicenseTypes))
	types = append(types, model.LicenseTypes...)
	return TrainerResponse{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		Phone:        model.Phone,
		Specialty:    model.Specialty,
		HireDate:     model.HireDate,
		LicenseDate:  model.LicenseDate,
		CIN:          model.CIN,
		LicenseTypes: types,
		PictureURL:   model.PictureURL,
		DiplomaURL:   model.DiplomaURL,
	}
}

// StaffCreateRequest registers a staff member.
type StaffCreateRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=255"`
	Role         string  `json:"role" validate:"required,max=128"`
	Email        string  `json:"email" validate:"omitempty,email"`
	Phone        string  `json:"phone" validate:"omitempty,max=64"`
	HireDate     string  `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	CIN          string  `json:"cin" validate:"omitempty,max=32"`
	Address      string  `json:"address" validate:"omitempty,max=255"`
	WhatsApp     string  `json:"whatsapp" validate:"omitempty,max=64"`
	SalaryType   string  `json:"salary_type" validate:"omitempty,oneof=monthly hourly task_based"`
	SalaryAmount float64 `json:"salary_amount" validate:"gte=0"`
	PictureURL   string  `json:"picture_url" validate:"omitempty,url"`
	Status       string  `json:"status" validate:"omitempty,oneof=present absent"`
}

// StaffResponse serializes a staff member.
type StaffResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	HireDate     time.Time `json:"hire_date"`
	CIN          string    `json:"cin"`
	Address      string    `json:"address"`
	WhatsApp     string    `json:"whatsapp"`
	SalaryType   string    `json:"salary_type"`
	SalaryAmount float64   `json:"salary_amount"`
	PictureURL   string    `json:"picture_url,omitempty"`
	Status       string    `json:"status"`
}

// NewStaffResponse converts a staff model into a DTO.
func NewStaffResponse(model models.Staff) StaffResponse {
	return StaffResponse{
		ID:           model.ID,
		Name:         model.Name,
		Role:         model.Role,
		Email:        model.Email,
		Phone:        model.Phone,
		HireDate:     model.HireDate,
		CIN:          model.CIN,
		Address:      model.Address,
		WhatsApp:     model.WhatsApp,
		SalaryType:   model.SalaryType,
		SalaryAmount: model.SalaryAmount,
		PictureURL:   model.PictureURL,
		Status:       model.Status,
	}
}
