package dto

import (
	"time"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// NotificationCreateRequest describes a notification raised about a student.
type NotificationCreateRequest struct {
	StudentID   uint   `json:"student_id" validate:"required,gt=0"`
	StudentName string `json:"student_name" validate:"required,max=255"`
	OfficeID    uint   `json:"office_id"`
	Type        string `json:"type" validate:"required,oneof=completion payment_due"`
	Message     string `json:"message" validate:"required,min=1,max=2000"`
}

// NotificationListRequest narrows the notification feed.
type NotificationListRequest struct {
	OfficeID   *uint
	UnreadOnly bool
	Limit      int
	Offset     int
}

// NotificationResponse represents notification data returned to clients.
type NotificationResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name"`
	OfficeID    uint      `json:"office_id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewNotificationResponse converts a notification model to DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          model.ID,
		StudentID:   model.StudentID,
		StudentName: model.StudentName,
		OfficeID:    model.OfficeID,
		Type:        string(model.Type),
		Message:     model.Message,
		Read:        model.Read,
		CreatedAt:   model.CreatedAt,
	}
}

// NewNotificationResponseSlice converts a slice to DTOs.
func NewNotificationResponseSlice(items []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewNotificationResponse(item))
	}
	return out
}
