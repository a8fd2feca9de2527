package models

import "time"

// NotificationType classifies advisory messages shown to office staff.
type NotificationType string

const (
	NotificationTypeCompletion NotificationType = "completion"
	NotificationTypePaymentDue NotificationType = "payment_due"
)

// Notification is an append-only status message about a student. Only Read changes after creation.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	StudentID   uint             `gorm:"index;not null" json:"student_id"`
	StudentName string           `gorm:"size:255" json:"student_name"`
	OfficeID    uint             `gorm:"index" json:"office_id"`
	Type        NotificationType `gorm:"size:32;not null" json:"type"`
	Message     string           `gorm:"type:text;not null" json:"message"`
	Read        bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
