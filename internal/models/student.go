package models

import "time"

// Student status values.
const (
	StudentStatusActive    = "active"
	StudentStatusInactive  = "inactive"
	StudentStatusCompleted = "completed"
)

// Student represents a learner enrolled for a licence category at one office.
type Student struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Email           string     `gorm:"size:255;index" json:"email"`
	Phone           string     `gorm:"size:64" json:"phone"`
	JoinDate        time.Time  `json:"join_date"`
	Status          string     `gorm:"size:32;not null;default:active" json:"status"`
	LicenseCategory string     `gorm:"size:16;index;not null" json:"license_category"`
	OfficeID        uint       `gorm:"index;not null" json:"office_id"`
	Archived        bool       `gorm:"not null;default:false;index" json:"archived"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
