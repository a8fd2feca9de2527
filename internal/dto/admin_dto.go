package dto

import (
	"time"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// OfficeCreateRequest captures the payload to open a school office.
type OfficeCreateRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=255"`
	Address          string `json:"address" validate:"omitempty,max=255"`
	Phone            string `json:"phone" validate:"omitempty,max=64"`
	SubscriptionPlan string `json:"subscription_plan" validate:"omitempty,oneof=basic business enterprise"`
}

// OfficeResponse serializes an office.
type OfficeResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	Phone            string    `json:"phone"`
	SubscriptionPlan string    `json:"subscription_plan"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewOfficeResponse converts an office model into a DTO.
func NewOfficeResponse(model models.Office) OfficeResponse {
	return OfficeResponse{
		ID:               model.ID,
		Name:             model.Name,
		Address:          model.Address,
		Phone:            model.Phone,
		SubscriptionPlan: model.SubscriptionPlan,
		CreatedAt:        model.CreatedAt,
	}
}

// SecretaryCreateRequest captures the payload to create a secretary account.
type SecretaryCreateRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	OfficeID uint   `json:"office_id" validate:"required,gt=0"`
}

// UserResponse serializes a dashboard account without its credentials.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	OfficeID  *uint     `json:"office_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a user model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Role:      model.Role,
		OfficeID:  model.OfficeID,
		CreatedAt: model.CreatedAt,
	}
}

// SubscriptionUpdateRequest patches a subscription plan.
type SubscriptionUpdateRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration *string  `json:"duration" validate:"omitempty,oneof=monthly yearly"`
	Features []string `json:"features" validate:"omitempty,dive,required,max=255"`
}

// SubscriptionResponse serializes a subscription plan.
type SubscriptionResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Duration string   `json:"duration"`
	Features []string `json:"features"`
}

// NewSubscriptionResponse converts a subscription model into a DTO.
func NewSubscriptionResponse(model models.Subscription) SubscriptionResponse {
	features := make([]string, 0, len(model.Features))
	features = append(features, model.Features...)
	return SubscriptionResponse{
		ID:       model.Code,
		Name:     model.Name,
		Price:    model.Price,
		Duration: model.Duration,
		Features: features,
	}
}

// AdminActivityListRequest defines filters for retrieving activity logs.
type AdminActivityListRequest struct {
	Page       int
	PageSize   int
	ActorID    uint
	OfficeID   *uint
	Action     string
	EntityType string
}

// AdminActivityResponse serializes activity log entries.
type AdminActivityResponse struct {
	ID         uint                   `json:"id"`
	ActorID    uint                   `json:"actor_id"`
	ActorRole  string                 `json:"actor_role"`
	OfficeID   *uint                  `json:"office_id,omitempty"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

// AdminActivityListResponse wraps paginated activity logs.
type AdminActivityListResponse struct {
	Items      []AdminActivityResponse `json:"items"`
	Pagination PaginationMeta          `json:"pagination"`
}

// NewAdminActivityResponse converts a log entry into a DTO.
func NewAdminActivityResponse(model models.ActivityLog) AdminActivityResponse {
	metadata := make(map[string]interface{}, len(model.Metadata))
	for key, value := range model.Metadata {
		metadata[key] = value
	}
	return AdminActivityResponse{
		ID:         model.ID,
		ActorID:    model.ActorID,
		ActorRole:  model.ActorRole,
		OfficeID:   model.OfficeID,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Metadata:   metadata,
		CreatedAt:  model.CreatedAt,
	}
}

// NewPaginationMeta computes pagination metadata for a page of results.
func NewPaginationMeta(page, pageSize int, total int64) PaginationMeta {
	if page <= 0 {
		page = 1
	}
	meta := PaginationMeta{Page: page, PageSize: pageSize, TotalItems: total, TotalPages: 1}
	if pageSize > 0 {
		meta.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return meta
}
