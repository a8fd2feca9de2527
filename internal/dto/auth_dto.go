package dto

import "github.com/noah-isme/drivedesk-api/internal/models"

// LoginRequest carries dashboard credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// LoginResponse returns the issued bearer token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// SchoolProfileRequest updates the school branding.
type SchoolProfileRequest struct {
	Logo       string `json:"logo" validate:"omitempty,max=512"`
	Name       string `json:"name" validate:"required,max=255"`
	TargetLine string `json:"target_line" validate:"omitempty,max=255"`
	Phone      string `json:"phone" validate:"omitempty,max=64"`
	Email      string `json:"email" validate:"omitempty,email"`
	Website    string `json:"website" validate:"omitempty,max=255"`
	Address    string `json:"address" validate:"omitempty,max=255"`
	Country    string `json:"country" validate:"omitempty,max=64"`
	AdminName  string `json:"admin_name" validate:"omitempty,max=255"`
}

// SchoolProfileResponse serializes the school branding.
type SchoolProfileResponse struct {
	Logo       string `json:"logo"`
	Name       string `json:"name"`
	TargetLine string `json:"target_line"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Website    string `json:"website"`
	Address    string `json:"address"`
	Country    string `json:"country"`
	AdminName  string `json:"admin_name"`
}

// NewSchoolProfileResponse converts the profile model into a DTO.
func NewSchoolProfileResponse(model models.SchoolProfile) SchoolProfileResponse {
	return SchoolProfileResponse{
		Logo:       model.Logo,
		Name:       model.Name,
		TargetLine: model.TargetLine,
		Phone:      model.Phone,
		Email:      model.Email,
		Website:    model.Website,
		Address:    model.Address,
		Country:    model.Country,
		AdminName:  model.AdminName,
	}
}
